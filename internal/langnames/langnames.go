// Package langnames resolves human-readable names for locale codes. It is
// display-only glue for the picker UI; the negotiation core never depends
// on it.
package langnames

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"langswitch/internal/acceptlang"
)

// Name returns the English display name for a locale code, e.g.
// "de-AT" -> "Austrian German". Falls back to the normalized code when the
// tag is unknown.
func Name(code string) string {
	tag, err := language.Parse(acceptlang.Normalize(code))
	if err != nil {
		return acceptlang.Normalize(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return acceptlang.Normalize(code)
}

// NativeName returns the name of a locale in that locale's own language,
// e.g. "de" -> "Deutsch". Falls back to the English name.
func NativeName(code string) string {
	tag, err := language.Parse(acceptlang.Normalize(code))
	if err != nil {
		return acceptlang.Normalize(code)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return Name(code)
}
