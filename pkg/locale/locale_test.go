package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rpgo/prprint/pkg/prprint"
)

func TestLookupBuiltins(t *testing.T) {
	cases := []struct {
		name  string
		sizes []int
		sep   rune
		point rune
	}{
		{"en-US", []int{3}, ',', '.'},
		{"en_US.UTF-8", []int{3}, ',', '.'},
		{"de_DE.UTF-8@euro", []int{3}, '.', ','},
		{"hi-IN", []int{3, 2}, ',', '.'},
		{"fr-FR", []int{3}, '\u202f', ','},
		{"de-CH", []int{3}, '’', '.'},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := Lookup(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.sizes, g.Sizes)
			assert.Equal(t, c.sep, g.Sep)
			assert.Equal(t, c.point, g.Point)
		})
	}
}

func TestLookupClassic(t *testing.T) {
	for _, name := range []string{"", "C", "POSIX", "C.UTF-8"} {
		g, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, prprint.Classic, g, name)
	}
}

func TestLookupClosestMatch(t *testing.T) {
	g, err := Lookup("pt-PT")
	require.NoError(t, err)
	assert.Equal(t, ',', g.Point)

	g, err = Lookup("en-AU")
	require.NoError(t, err)
	assert.Equal(t, '.', g.Point)
	assert.Equal(t, ',', g.Sep)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("tlh-KX")
	assert.ErrorIs(t, err, ErrUnknownLocale)

	_, err = Lookup("not a locale!")
	assert.ErrorIs(t, err, ErrUnknownLocale)

	_, err = NewRegistry().Lookup("en-US")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestRegisterValidates(t *testing.T) {
	r := NewRegistry()
	err := r.Register(Locale{Tag: language.MustParse("nl-NL"), Grouping: prprint.Grouping{Sizes: []int{0}, Sep: '.', Point: ','}})
	assert.ErrorIs(t, err, prprint.ErrInvalidGrouping)

	err = r.Register(Locale{Tag: language.Und, Grouping: prprint.Classic})
	assert.ErrorIs(t, err, ErrUnknownLocale)
	assert.Empty(t, r.Names())
}

func TestRegisterReplaces(t *testing.T) {
	r := NewBuiltinRegistry()
	before := len(r.Names())
	require.NoError(t, r.Register(Locale{Tag: language.MustParse("en-US"), Grouping: prprint.Grouping{Sizes: []int{4}, Sep: '_', Point: '.'}}))
	assert.Len(t, r.Names(), before)

	g, err := r.Lookup("en-US")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, g.Sizes)
	assert.Equal(t, "1_2345.5", prprint.ApplyGrouping("12345.5", g))
}

func TestLoadFile(t *testing.T) {
	data := "locales:\n" +
		"  - tag: nl_NL\n" +
		"    grouping: [3]\n" +
		"    thousands_sep: \".\"\n" +
		"    decimal_point: \",\"\n" +
		"  - tag: de-LI\n" +
		"    grouping: [3]\n" +
		"    thousands_sep: \"’\"\n"

	path := filepath.Join(t.TempDir(), "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r := NewRegistry()
	locales, err := r.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, locales, 2)
	assert.Equal(t, []string{"de-LI", "nl-NL"}, r.Names())

	g, err := r.Lookup("nl-NL")
	require.NoError(t, err)
	assert.Equal(t, "-1.234.567,5", prprint.ApplyGrouping("-1234567.5", g))

	g, err = r.Lookup("de-LI")
	require.NoError(t, err)
	assert.Equal(t, '.', g.Point, "decimal_point defaults to '.'")
}

func TestLoadFileErrors(t *testing.T) {
	r := NewRegistry()

	_, err := r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, err = r.LoadYAML([]byte("locales: [\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = r.LoadYAML([]byte("locales: []\n"))
	assert.ErrorContains(t, err, "no locales provided")

	_, err = r.LoadYAML([]byte("locales:\n  - tag: nl-NL\n    thousands_sep: \"..\"\n"))
	assert.ErrorContains(t, err, "thousands_sep must be a single character")

	_, err = r.LoadYAML([]byte("locales:\n  - tag: nl-NL\n    grouping: [3]\n  - tag: fy-NL\n    grouping: [0]\n"))
	assert.ErrorIs(t, err, prprint.ErrInvalidGrouping)
	assert.Empty(t, r.Names(), "nothing registered when one entry fails")
}
