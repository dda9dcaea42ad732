package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/prprint/pkg/locale"
	"github.com/rpgo/prprint/pkg/prprint"
)

type recordingLogger struct {
	NopLogger
	infos []string
}

func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewProfileLoaderDefaults(t *testing.T) {
	pl := NewProfileLoader(nil, nil)
	assert.NotNil(t, pl)
	assert.Same(t, locale.Default, pl.Registry())
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "default_profile: report\n" +
		"profiles:\n" +
		"  report:\n" +
		"    precision: 2\n" +
		"    trim: true\n" +
		"    round: to-nearest\n" +
		"    locale: en_US.UTF-8\n" +
		"  raw:\n" +
		"    precision: 6\n" +
		"    uppercase: true\n"

	path := writeTemp(t, t.TempDir(), "profiles.yaml", testConfig)
	pl := NewProfileLoader(nil, nil)
	config, err := pl.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw", "report"}, config.ProfileNames())

	p, g, err := pl.Resolve(config, "")
	require.NoError(t, err)
	assert.Equal(t, prprint.NewPolicy(2, true, prprint.ToNearest), p)
	assert.Equal(t, "1,234.5", prprint.Format(1234.499, p, g))

	p, g, err = pl.Resolve(config, "raw")
	require.NoError(t, err)
	assert.Equal(t, prprint.Uppercase, p.Flags)
	assert.Equal(t, prprint.Classic, g)
}

func TestLoadFromFile_LocaleFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "nl.yaml", "locales:\n  - tag: nl-NL\n    grouping: [3]\n    thousands_sep: \".\"\n    decimal_point: \",\"\n")
	path := writeTemp(t, dir, "profiles.yaml", "default_profile: dutch\n"+
		"locale_files: [nl.yaml]\n"+
		"profiles:\n"+
		"  dutch:\n"+
		"    precision: 1\n"+
		"    show_pos: true\n"+
		"    locale: nl-NL\n")

	log := &recordingLogger{}
	pl := NewProfileLoader(locale.NewRegistry(), log)
	config, err := pl.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "registered 1 locales")

	p, g, err := pl.Resolve(config, "dutch")
	require.NoError(t, err)
	assert.Equal(t, "+9.876.543,2", prprint.Format(9876543.21, p, g))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	config, err := NewProfileLoader(nil, nil).LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "bad.yaml", "profiles:\n\treport:\n\t\tprecision: two\n")
	config, err := NewProfileLoader(nil, nil).LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_BadRounding(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "bad.yaml", "default_profile: a\nprofiles:\n  a:\n    round: bankers\n")
	_, err := NewProfileLoader(nil, nil).LoadFromFile(path)
	assert.ErrorIs(t, err, prprint.ErrUnknownRounding)
}

func TestLoadFromFile_MissingLocaleFile(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "profiles.yaml", "default_profile: a\nlocale_files: [missing.yaml]\nprofiles:\n  a: {}\n")
	_, err := NewProfileLoader(locale.NewRegistry(), nil).LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to read file")
}

func TestValidateConfiguration(t *testing.T) {
	pl := NewProfileLoader(nil, nil)
	assert.NoError(t, pl.ValidateConfiguration(CreateExampleConfiguration()))

	cases := []struct {
		name   string
		mutate func(c *Configuration)
		want   string
		is     error
	}{
		{"no profiles", func(c *Configuration) { c.Profiles = nil }, "no profiles provided", nil},
		{"no default", func(c *Configuration) { c.DefaultProfile = "" }, "default profile is required", nil},
		{"undefined default", func(c *Configuration) { c.DefaultProfile = "nope" }, "is not defined", nil},
		{"negative precision", func(c *Configuration) {
			p := c.Profiles["report"]
			p.Precision = -1
			c.Profiles["report"] = p
		}, "profile report validation failed", prprint.ErrPrecisionRange},
		{"unknown locale", func(c *Configuration) {
			p := c.Profiles["lakh"]
			p.Locale = "tlh"
			c.Profiles["lakh"] = p
		}, "profile lakh validation failed", locale.ErrUnknownLocale},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			config := CreateExampleConfiguration()
			c.mutate(config)
			err := pl.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
		})
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	_, _, err := NewProfileLoader(nil, nil).Resolve(CreateExampleConfiguration(), "missing")
	assert.ErrorIs(t, err, ErrUnknownProfile)
	assert.Contains(t, err.Error(), "ledger-de")
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, SaveConfiguration(CreateExampleConfiguration(), path))

	config, err := NewProfileLoader(nil, nil).LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, CreateExampleConfiguration(), config)
}
