package locale

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/prprint/pkg/prprint"
)

// Entry is one locale in a YAML locale data file:
//
//	locales:
//	  - tag: nl-NL
//	    grouping: [3]
//	    thousands_sep: "."
//	    decimal_point: ","
type Entry struct {
	Tag          string `yaml:"tag"`
	Grouping     []int  `yaml:"grouping"`
	ThousandsSep string `yaml:"thousands_sep"`
	DecimalPoint string `yaml:"decimal_point"`
}

// File is the top-level document of a locale data file.
type File struct {
	Locales []Entry `yaml:"locales"`
}

// Locale converts the entry, checking the tag and that each glyph is a single rune.
func (e Entry) Locale() (Locale, error) {
	tag, err := language.Parse(posixToBCP47(e.Tag))
	if err != nil {
		return Locale{}, fmt.Errorf("invalid tag %q: %w", e.Tag, err)
	}
	point, err := singleRune("decimal_point", e.DecimalPoint, '.')
	if err != nil {
		return Locale{}, err
	}
	sep, err := singleRune("thousands_sep", e.ThousandsSep, ',')
	if err != nil {
		return Locale{}, err
	}
	g, err := prprint.NewGrouping(e.Grouping, sep, point)
	if err != nil {
		return Locale{}, fmt.Errorf("locale %s: %w", e.Tag, err)
	}
	return Locale{Tag: tag, Grouping: g}, nil
}

func singleRune(field, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	return r, nil
}

// LoadFile reads a YAML locale data file and registers every entry. Nothing is
// registered when any entry is invalid.
func (r *Registry) LoadFile(filename string) ([]Locale, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return r.LoadYAML(data)
}

// LoadYAML is LoadFile for data already in memory.
func (r *Registry) LoadYAML(data []byte) ([]Locale, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Locales) == 0 {
		return nil, fmt.Errorf("no locales provided")
	}

	locales := make([]Locale, 0, len(f.Locales))
	for i, e := range f.Locales {
		l, err := e.Locale()
		if err != nil {
			return nil, fmt.Errorf("locale %d validation failed: %w", i, err)
		}
		locales = append(locales, l)
	}
	for _, l := range locales {
		if err := r.Register(l); err != nil {
			return nil, err
		}
	}
	return locales, nil
}
