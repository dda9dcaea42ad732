package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/prprint/pkg/locale"
	"github.com/rpgo/prprint/pkg/prprint"
)

// ErrUnknownProfile is returned when a profile name is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a named formatting policy plus the locale it groups with.
type Profile struct {
	Precision int              `yaml:"precision"`
	Trim      bool             `yaml:"trim"`
	Round     prprint.Rounding `yaml:"round"`
	ShowPos   bool             `yaml:"show_pos"`
	ShowPoint bool             `yaml:"show_point"`
	Uppercase bool             `yaml:"uppercase"`
	Locale    string           `yaml:"locale"`
}

// Policy converts the profile's formatting fields.
func (p Profile) Policy() prprint.Policy {
	var f prprint.Flags
	if p.ShowPos {
		f |= prprint.ShowPos
	}
	if p.ShowPoint {
		f |= prprint.ShowPoint
	}
	if p.Uppercase {
		f |= prprint.Uppercase
	}
	return prprint.NewPolicy(p.Precision, p.Trim, p.Round).WithFlags(f)
}

// Configuration is the top-level profiles file.
type Configuration struct {
	DefaultProfile string             `yaml:"default_profile"`
	LocaleFiles    []string           `yaml:"locale_files,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile returns the named profile, or the default profile for "".
func (c *Configuration) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q. Try one of: %v", ErrUnknownProfile, name, c.ProfileNames())
	}
	return p, nil
}

// ProfileNames returns the defined profile names, sorted.
func (c *Configuration) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for k := range c.Profiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ProfileLoader handles parsing of profiles files
type ProfileLoader struct {
	registry *locale.Registry
	logger   Logger
}

// NewProfileLoader creates a loader resolving locales in registry.
// A nil registry means locale.Default, a nil logger means NopLogger.
func NewProfileLoader(registry *locale.Registry, logger Logger) *ProfileLoader {
	if registry == nil {
		registry = locale.Default
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &ProfileLoader{registry: registry, logger: logger}
}

// Registry returns the locale registry profiles are resolved against.
func (pl *ProfileLoader) Registry() *locale.Registry { return pl.registry }

// LoadFromFile loads a profiles file, registers the locale data files it lists
// (relative paths are taken from the profiles file's directory) and validates it.
func (pl *ProfileLoader) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	pl.logger.Debugf("loaded %d profiles from %s", len(config.Profiles), filename)

	dir := filepath.Dir(filename)
	for _, lf := range config.LocaleFiles {
		if !filepath.IsAbs(lf) {
			lf = filepath.Join(dir, lf)
		}
		locales, err := pl.registry.LoadFile(lf)
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", lf, err)
		}
		pl.logger.Infof("registered %d locales from %s", len(locales), lf)
	}

	if err := pl.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (pl *ProfileLoader) ValidateConfiguration(config *Configuration) error {
	if len(config.Profiles) == 0 {
		return fmt.Errorf("no profiles provided")
	}
	if config.DefaultProfile == "" {
		return fmt.Errorf("default profile is required")
	}
	if _, ok := config.Profiles[config.DefaultProfile]; !ok {
		return fmt.Errorf("default profile %q is not defined", config.DefaultProfile)
	}

	for _, name := range config.ProfileNames() {
		if err := pl.validateProfile(config.Profiles[name]); err != nil {
			return fmt.Errorf("profile %s validation failed: %w", name, err)
		}
	}
	return nil
}

func (pl *ProfileLoader) validateProfile(p Profile) error {
	if err := p.Policy().Validate(); err != nil {
		return err
	}
	if _, err := pl.registry.Lookup(p.Locale); err != nil {
		return err
	}
	return nil
}

// Resolve returns the policy and locale rule of the named profile.
func (pl *ProfileLoader) Resolve(config *Configuration, name string) (prprint.Policy, prprint.Grouping, error) {
	p, err := config.Profile(name)
	if err != nil {
		return prprint.Policy{}, prprint.Grouping{}, err
	}
	g, err := pl.registry.Lookup(p.Locale)
	if err != nil {
		return prprint.Policy{}, prprint.Grouping{}, fmt.Errorf("profile %s: %w", name, err)
	}
	return p.Policy(), g, nil
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// CreateExampleConfiguration creates an example profiles configuration
func CreateExampleConfiguration() *Configuration {
	return &Configuration{
		DefaultProfile: "plain",
		Profiles: map[string]Profile{
			"plain": {
				Precision: 2,
				Locale:    "C",
			},
			"report": {
				Precision: 2,
				Trim:      true,
				Round:     prprint.ToNearest,
				Locale:    "en-US",
			},
			"ledger-de": {
				Precision: 2,
				Round:     prprint.TowardZero,
				ShowPos:   true,
				Locale:    "de-DE",
			},
			"lakh": {
				Precision: 0,
				Round:     prprint.ToNearest,
				Locale:    "hi-IN",
			},
		},
	}
}
