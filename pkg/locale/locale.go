// Package locale resolves locale names to the grouping descriptors consumed by
// prprint. It owns the locale data; the formatting core never looks anything up.
package locale

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/rpgo/prprint/pkg/prprint"
)

// ErrUnknownLocale is returned when a name matches no registered locale.
var ErrUnknownLocale = errors.New("unknown locale")

// Locale pairs a language tag with its number punctuation.
type Locale struct {
	Tag      language.Tag
	Grouping prprint.Grouping
}

func (l Locale) String() string { return l.Tag.String() }

// Registry maps language tags to locales. It is safe for concurrent use;
// lookups take a read lock only.
type Registry struct {
	mu      sync.RWMutex
	byTag   map[string]Locale
	tags    []language.Tag
	matcher language.Matcher
}

// NewRegistry creates an empty registry. Lookups of "C" and "POSIX" always
// succeed with prprint.Classic.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[string]Locale)}
}

// NewBuiltinRegistry creates a registry preloaded with the built-in locales.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, l := range builtins() {
		if err := r.Register(l); err != nil {
			panic(fmt.Sprintf("locale: bad built-in %s: %v", l.Tag, err))
		}
	}
	return r
}

// Register adds or replaces the locale for l.Tag.
func (r *Registry) Register(l Locale) error {
	if l.Tag == language.Und {
		return fmt.Errorf("%w: empty tag", ErrUnknownLocale)
	}
	if err := l.Grouping.Validate(); err != nil {
		return fmt.Errorf("locale %s: %w", l.Tag, err)
	}
	l.Grouping.Sizes = append([]int(nil), l.Grouping.Sizes...)

	r.mu.Lock()
	defer r.mu.Unlock()
	key := l.Tag.String()
	if _, exists := r.byTag[key]; !exists {
		r.tags = append(r.tags, l.Tag)
	}
	r.byTag[key] = l
	r.matcher = language.NewMatcher(r.tags)
	return nil
}

// Lookup resolves a BCP 47 tag ("de-CH") or a POSIX locale name
// ("de_CH.UTF-8@euro"). An exact tag wins; otherwise the closest registered
// tag is used when x/text considers it a usable match.
func (r *Registry) Lookup(name string) (prprint.Grouping, error) {
	l, err := r.Resolve(name)
	if err != nil {
		return prprint.Grouping{}, err
	}
	return l.Grouping, nil
}

// Resolve is Lookup returning the matched Locale.
func (r *Registry) Resolve(name string) (Locale, error) {
	n := posixToBCP47(name)
	if n == "" || n == "C" || n == "POSIX" {
		return Locale{Tag: language.Und, Grouping: prprint.Classic}, nil
	}
	tag, err := language.Parse(n)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrUnknownLocale, name, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.byTag[tag.String()]; ok {
		return l, nil
	}
	if r.matcher == nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	_, idx, conf := r.matcher.Match(tag)
	if conf == language.No {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	return r.byTag[r.tags[idx].String()], nil
}

// Names returns the registered tags, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byTag))
	for k := range r.byTag {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// posixToBCP47 drops the codeset and modifier of a POSIX name and swaps '_'
// for '-': "pt_BR.UTF-8@euro" becomes "pt-BR".
func posixToBCP47(name string) string {
	n := strings.TrimSpace(name)
	if i := strings.IndexAny(n, ".@"); i >= 0 {
		n = n[:i]
	}
	return strings.ReplaceAll(n, "_", "-")
}

// Default is the process-wide registry with the built-in locales.
var Default = NewBuiltinRegistry()

// Lookup resolves name in Default.
func Lookup(name string) (prprint.Grouping, error) { return Default.Lookup(name) }
