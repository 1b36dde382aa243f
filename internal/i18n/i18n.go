// Package i18n provides the UI string catalogs and locale-aware collation for
// the two supported display languages.
package i18n

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Default is the language for fresh installs and unknown codes.
const Default = "en"

// Languages lists the supported language codes in menu order.
var Languages = []string{"en", "tr"}

// Supported reports whether the code names a supported language.
func Supported(code string) bool {
	for _, l := range Languages {
		if l == code {
			return true
		}
	}
	return false
}

// T returns the catalog string for key in the given language. Unknown
// languages fall back to English; unknown keys come back verbatim so a missing
// entry is visible in the page instead of blank.
func T(lang, key string) string {
	if catalog, ok := catalogs[lang]; ok {
		if s, ok := catalog[key]; ok {
			return s
		}
	}
	if s, ok := catalogs[Default][key]; ok {
		return s
	}
	return key
}

// Func binds a language, yielding the single-argument lookup templates use.
func Func(lang string) func(string) string {
	return func(key string) string { return T(lang, key) }
}

var collatorTags = map[string]language.Tag{
	"en": language.English,
	"tr": language.Turkish,
}

// Collator returns a locale-aware string comparison for sorting names.
// Turkish needs this: dotted and dotless i do not sort in byte order.
func Collator(lang string) func(a, b string) int {
	tag, ok := collatorTags[lang]
	if !ok {
		tag = language.English
	}
	c := collate.New(tag)
	return func(a, b string) int { return c.CompareString(a, b) }
}
