// Package acceptlang parses the HTTP Accept-Language header into a ranked
// list of locale preferences and answers matching queries against a site's
// offered languages. Everything here is a pure function of its input: the
// header is always passed in explicitly and nothing is cached between calls.
package acceptlang

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pref is one parsed header entry: a normalized locale tag ("en-US", "de")
// and its quality weight in [0, 1].
type Pref struct {
	Tag     string  `json:"tag"`
	Quality float64 `json:"quality"`
}

// Prefs is an ordered preference list: unique normalized tags sorted by
// descending quality. Equal qualities keep the order in which the tags first
// appeared in the header.
type Prefs []Pref

// rtlLanguages is the set of base languages written right-to-left.
var rtlLanguages = map[string]bool{
	"ar": true, "he": true, "fa": true, "ur": true, "yi": true,
	"ps": true, "sd": true, "ug": true, "ku": true, "dv": true,
}

// qualityPattern matches a q parameter value: digits with at most one
// decimal point. Anything else falls back to the 1.0 default.
var qualityPattern = regexp.MustCompile(`q=([0-9]*\.?[0-9]+)`)

// Parse parses a raw Accept-Language header value. A missing or malformed
// header degrades to an empty list, never an error. Formatting variants that
// normalize to the same tag are coalesced: the last entry wins the quality,
// the first fixes the position used for tie-breaking.
func Parse(header string) Prefs {
	var prefs Prefs
	index := map[string]int{}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		tagPart, params, hasParams := strings.Cut(part, ";")
		if hasParams {
			if m := qualityPattern.FindStringSubmatch(params); m != nil {
				if q, err := strconv.ParseFloat(m[1], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		tag := Normalize(tagPart)
		if tag == "" {
			continue
		}

		if i, ok := index[tag]; ok {
			prefs[i].Quality = quality
			continue
		}
		index[tag] = len(prefs)
		prefs = append(prefs, Pref{Tag: tag, Quality: quality})
	}

	slices.SortStableFunc(prefs, func(a, b Pref) int {
		return cmp.Compare(b.Quality, a.Quality)
	})
	return prefs
}

// Primary returns the most preferred tag, or "" for an empty list.
func (p Prefs) Primary() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].Tag
}

// PrimaryLanguage returns the base language of the primary tag.
func (p Prefs) PrimaryLanguage() string {
	return Language(p.Primary())
}

// PrimaryRegion returns the region of the primary tag, or "" if the primary
// has no region.
func (p Prefs) PrimaryRegion() string {
	region, _ := Region(p.Primary())
	return region
}

// Tags returns all tags in preference order.
func (p Prefs) Tags() []string {
	tags := make([]string, len(p))
	for i, pref := range p {
		tags[i] = pref.Tag
	}
	return tags
}

// Languages returns the unique base languages in first-occurrence order.
func (p Prefs) Languages() []string {
	var langs []string
	seen := map[string]bool{}
	for _, pref := range p {
		lang := Language(pref.Tag)
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs
}

// Accepts reports whether the client accepts lang, counting a shared base
// language as a match ("de" is accepted when the header lists "de-DE").
func (p Prefs) Accepts(lang string) bool {
	return p.accepts(lang, false)
}

// AcceptsExact reports whether lang matches a parsed tag exactly after
// normalization.
func (p Prefs) AcceptsExact(lang string) bool {
	return p.accepts(lang, true)
}

func (p Prefs) accepts(lang string, exact bool) bool {
	tag := Normalize(lang)
	if tag == "" {
		return false
	}
	base := Language(tag)
	for _, pref := range p {
		if pref.Tag == tag {
			return true
		}
		if !exact && Language(pref.Tag) == base {
			return true
		}
	}
	return false
}

// Quality returns the quality for an exact tag match. Unlike Accepts it
// never falls back to the base language.
func (p Prefs) Quality(lang string) (float64, bool) {
	tag := Normalize(lang)
	if tag == "" {
		return 0, false
	}
	for _, pref := range p {
		if pref.Tag == tag {
			return pref.Quality, true
		}
	}
	return 0, false
}

// BestMatch selects the best candidate from available, returning the
// caller's original spelling. Exact matches are tried for every preference
// before any base-language fallback, so an exact match always beats a
// base-language match even when the fallback tag carries a higher quality.
// Returns def when nothing matches.
func (p Prefs) BestMatch(available []string, def string) string {
	if len(p) == 0 || len(available) == 0 {
		return def
	}

	// Normalized form -> original spelling. On collision the later entry
	// overwrites the value but the first keeps its scan position.
	byTag := map[string]string{}
	var order []string
	for _, candidate := range available {
		tag := Normalize(candidate)
		if tag == "" {
			continue
		}
		if _, ok := byTag[tag]; !ok {
			order = append(order, tag)
		}
		byTag[tag] = candidate
	}

	for _, pref := range p {
		if original, ok := byTag[pref.Tag]; ok {
			return original
		}
	}

	for _, pref := range p {
		base := Language(pref.Tag)
		for _, tag := range order {
			if Language(tag) == base {
				return byTag[tag]
			}
		}
	}

	return def
}

// IsRTL reports whether the primary preferred language is written
// right-to-left. False when the list is empty.
func (p Prefs) IsRTL() bool {
	return RTL(p.PrimaryLanguage())
}

// RTL reports whether the base language of locale is right-to-left.
func RTL(locale string) bool {
	return rtlLanguages[Language(locale)]
}

// Normalize canonicalizes a locale code: trims whitespace, accepts
// underscore separators, lowercases the language and uppercases the region.
// Everything after the first separator is treated as one opaque region
// remainder. Empty input normalizes to "".
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	code = strings.ReplaceAll(code, "_", "-")
	lang, region, ok := strings.Cut(code, "-")
	if !ok {
		return strings.ToLower(code)
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(region)
}

// Language returns the lowercased base language of a locale code.
func Language(locale string) string {
	locale = strings.ReplaceAll(locale, "_", "-")
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(lang)
}

// Region returns the uppercased region of a locale code. Only the second
// hyphen-delimited segment counts: "zh-Hans-CN" yields "HANS".
func Region(locale string) (string, bool) {
	locale = strings.ReplaceAll(locale, "_", "-")
	parts := strings.Split(locale, "-")
	if len(parts) < 2 {
		return "", false
	}
	return strings.ToUpper(parts[1]), true
}
