package locale

import (
	"golang.org/x/text/language"

	"github.com/rpgo/prprint/pkg/prprint"
)

const (
	nbsp       = '\u00a0'
	narrowNBSP = '\u202f'
	apostrophe = '\u2019'
)

func builtin(tag string, sizes []int, sep, point rune) Locale {
	return Locale{
		Tag:      language.MustParse(tag),
		Grouping: prprint.Grouping{Sizes: sizes, Sep: sep, Point: point},
	}
}

// builtins mirrors the LC_NUMERIC data of common glibc locales.
func builtins() []Locale {
	thousands := []int{3}
	indian := []int{3, 2}
	return []Locale{
		builtin("en-US", thousands, ',', '.'),
		builtin("en-GB", thousands, ',', '.'),
		builtin("en-IN", indian, ',', '.'),
		builtin("hi-IN", indian, ',', '.'),
		builtin("de-DE", thousands, '.', ','),
		builtin("de-CH", thousands, apostrophe, '.'),
		builtin("fr-FR", thousands, narrowNBSP, ','),
		builtin("es-ES", thousands, '.', ','),
		builtin("it-IT", thousands, '.', ','),
		builtin("pt-BR", thousands, '.', ','),
		builtin("ru-RU", thousands, nbsp, ','),
		builtin("sv-SE", thousands, nbsp, ','),
		builtin("pl-PL", thousands, nbsp, ','),
		builtin("ja-JP", thousands, ',', '.'),
		builtin("zh-CN", thousands, ',', '.'),
	}
}
