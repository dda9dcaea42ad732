package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rpgo/prprint/internal/config"
	"github.com/rpgo/prprint/pkg/locale"
	"github.com/rpgo/prprint/pkg/prprint"
)

// defaultPrecision matches the default precision of C++ and C streams.
const defaultPrecision = 6

// Version info injected via ldflags at build time
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app holds the state shared by one command tree.
type app struct {
	v        *viper.Viper
	registry *locale.Registry
	cfgFile  string
}

// formatFlags are bound into viper under the same name with '_' for '-'.
var formatFlags = []string{
	"verbose", "log-level", "log-format",
	"profiles", "profile", "locale",
	"precision", "trim", "round", "show-pos", "show-point", "uppercase",
}

// NewRootCommand builds the prprint command tree with its own viper instance
// and locale registry.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), registry: locale.NewBuiltinRegistry()}

	root := &cobra.Command{
		Use:   "prprint",
		Short: "Fixed-precision number formatting with locale grouping",
		Long: `prprint formats floating-point numbers with a fixed number of decimals.

It supports:
- Pre-rounding (keep, upward, downward, toNearest, towardZero)
- Trimming of trailing fractional zeros
- Locale thousands separators and decimal points
- Named format profiles loaded from YAML`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initConfig()
			setupLogging(a.v, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./prprint.config.yaml or ~/.prprint/prprint.config.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("profiles", "", "YAML file with named format profiles")
	pf.String("profile", "", "profile to use (default: the file's default_profile)")
	pf.String("locale", "", "locale for grouping and decimal point, e.g. de-DE or de_DE.UTF-8 (default: C)")
	pf.IntP("precision", "p", defaultPrecision, "digits after the decimal point")
	pf.Bool("trim", false, "remove trailing fractional zeros")
	pf.String("round", "keep", "rounding before formatting: "+strings.Join(prprint.RoundingNames(), ", "))
	pf.Bool("show-pos", false, "prefix non-negative values with '+'")
	pf.Bool("show-point", false, "always write the decimal point")
	pf.Bool("uppercase", false, "write INF and NAN in upper case")

	for _, name := range formatFlags {
		_ = a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name))
	}

	root.AddCommand(
		a.newFormatCmd(),
		a.newBatchCmd(),
		a.newLocalesCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) initConfig() {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home + "/.prprint")
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName("prprint.config")
		a.v.SetConfigType("yaml")
	}

	// Environment variables with PRPRINT_ prefix
	a.v.SetEnvPrefix("PRPRINT")
	a.v.AutomaticEnv()

	// Read config (ignore errors - file may not exist)
	_ = a.v.ReadInConfig()
}

func setupLogging(v *viper.Viper, out io.Writer) {
	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to stderr so stdout only carries formatted numbers.
	if v.GetString("log_format") == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).
			With().
			Timestamp().
			Logger()
	}

	if v.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// resolve builds the policy and locale rule from the selected profile, then
// applies any explicitly set flag, environment variable or config key on top.
func (a *app) resolve() (prprint.Policy, prprint.Grouping, error) {
	policy := prprint.NewPolicy(defaultPrecision, false, prprint.Keep)
	localeName := ""

	if path := a.v.GetString("profiles"); path != "" {
		pl := config.NewProfileLoader(a.registry, zerologAdapter{log.Logger})
		cfg, err := pl.LoadFromFile(path)
		if err != nil {
			return prprint.Policy{}, prprint.Grouping{}, err
		}
		prof, err := cfg.Profile(a.v.GetString("profile"))
		if err != nil {
			return prprint.Policy{}, prprint.Grouping{}, err
		}
		policy, localeName = prof.Policy(), prof.Locale
	} else if a.v.GetString("profile") != "" {
		return prprint.Policy{}, prprint.Grouping{}, fmt.Errorf("--profile requires --profiles")
	}

	if a.v.IsSet("precision") {
		policy.Precision = a.v.GetInt("precision")
	}
	if a.v.IsSet("trim") {
		policy.Trim = a.v.GetBool("trim")
	}
	if a.v.IsSet("round") {
		r, err := prprint.ParseRounding(a.v.GetString("round"))
		if err != nil {
			return prprint.Policy{}, prprint.Grouping{}, err
		}
		policy.Round = r
	}
	policy.Flags = a.flag(policy.Flags, prprint.ShowPos, "show_pos")
	policy.Flags = a.flag(policy.Flags, prprint.ShowPoint, "show_point")
	policy.Flags = a.flag(policy.Flags, prprint.Uppercase, "uppercase")
	if a.v.IsSet("locale") {
		localeName = a.v.GetString("locale")
	}

	if err := policy.Validate(); err != nil {
		return prprint.Policy{}, prprint.Grouping{}, err
	}
	g, err := a.registry.Lookup(localeName)
	if err != nil {
		return prprint.Policy{}, prprint.Grouping{}, err
	}

	log.Debug().
		Int("precision", policy.Precision).
		Bool("trim", policy.Trim).
		Str("round", policy.Round.String()).
		Str("flags", policy.Flags.String()).
		Str("locale", localeName).
		Msg("resolved format settings")
	return policy, g, nil
}

func (a *app) flag(f, bit prprint.Flags, key string) prprint.Flags {
	if !a.v.IsSet(key) {
		return f
	}
	if a.v.GetBool(key) {
		return f | bit
	}
	return f &^ bit
}

// zerologAdapter lets the profile loader log through zerolog.
type zerologAdapter struct{ l zerolog.Logger }

func (z zerologAdapter) Debugf(format string, args ...any) { z.l.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.l.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.l.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.l.Error().Msgf(format, args...) }

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
