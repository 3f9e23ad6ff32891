package acceptlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Prefs
	}{
		{
			name:   "typical browser header",
			header: "en-US,en;q=0.9,de;q=0.8",
			want: Prefs{
				{Tag: "en-US", Quality: 1.0},
				{Tag: "en", Quality: 0.9},
				{Tag: "de", Quality: 0.8},
			},
		},
		{
			name:   "empty header",
			header: "",
			want:   nil,
		},
		{
			name:   "whitespace only",
			header: "   ",
			want:   nil,
		},
		{
			name:   "commas only",
			header: ",,,",
			want:   nil,
		},
		{
			name:   "single tag no quality",
			header: "fr-CA",
			want:   Prefs{{Tag: "fr-CA", Quality: 1.0}},
		},
		{
			name:   "quality reorders entries",
			header: "de;q=0.5,fr;q=0.9",
			want: Prefs{
				{Tag: "fr", Quality: 0.9},
				{Tag: "de", Quality: 0.5},
			},
		},
		{
			name:   "malformed quality defaults to 1.0",
			header: "de;q=abc,fr;q=0.5",
			want: Prefs{
				{Tag: "de", Quality: 1.0},
				{Tag: "fr", Quality: 0.5},
			},
		},
		{
			name:   "out of range quality defaults to 1.0",
			header: "de;q=1.5,fr;q=0.5",
			want: Prefs{
				{Tag: "de", Quality: 1.0},
				{Tag: "fr", Quality: 0.5},
			},
		},
		{
			name:   "missing q parameter defaults to 1.0",
			header: "de;level=1",
			want:   Prefs{{Tag: "de", Quality: 1.0}},
		},
		{
			name:   "underscore and case variants normalize",
			header: "EN_us;q=0.7",
			want:   Prefs{{Tag: "en-US", Quality: 0.7}},
		},
		{
			name:   "coalesced variants take the last quality",
			header: "en-US;q=0.9,EN_us;q=0.3",
			want:   Prefs{{Tag: "en-US", Quality: 0.3}},
		},
		{
			name:   "surrounding whitespace is trimmed",
			header: " en-US , de ;q=0.4 ",
			want: Prefs{
				{Tag: "en-US", Quality: 1.0},
				{Tag: "de", Quality: 0.4},
			},
		},
		{
			name:   "zero quality is kept",
			header: "en,de;q=0",
			want: Prefs{
				{Tag: "en", Quality: 1.0},
				{Tag: "de", Quality: 0.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.header))
		})
	}
}

func TestParseInvariants(t *testing.T) {
	headers := []string{
		"en-US,en;q=0.9,de;q=0.8",
		"zh_cn;q=0.3,AR,he;q=0.99,ar;q=0.5",
		"fr;q=.5, fr-CA ;q=0.75,de;q=2.0,;q=0.1",
		"*;q=0.1,en",
	}

	for _, header := range headers {
		prefs := Parse(header)

		seen := map[string]bool{}
		for i, pref := range prefs {
			assert.GreaterOrEqual(t, pref.Quality, 0.0, "header %q", header)
			assert.LessOrEqual(t, pref.Quality, 1.0, "header %q", header)
			assert.False(t, seen[pref.Tag], "duplicate tag %q in header %q", pref.Tag, header)
			seen[pref.Tag] = true
			assert.Equal(t, Normalize(pref.Tag), pref.Tag, "tag %q not normalized", pref.Tag)
			if i > 0 {
				assert.GreaterOrEqual(t, prefs[i-1].Quality, pref.Quality,
					"header %q not sorted by descending quality", header)
			}
		}
	}
}

func TestParseTieBreakKeepsHeaderOrder(t *testing.T) {
	// Equal qualities keep first-occurrence order, even when a later
	// duplicate rewrites the quality of an earlier tag.
	prefs := Parse("de;q=0.5,fr;q=0.5,en;q=0.5")
	assert.Equal(t, []string{"de", "fr", "en"}, prefs.Tags())

	prefs = Parse("de;q=0.9,fr;q=0.5,DE;q=0.5")
	assert.Equal(t, Prefs{
		{Tag: "de", Quality: 0.5},
		{Tag: "fr", Quality: 0.5},
	}, prefs)
}

func TestPrimary(t *testing.T) {
	prefs := Parse("en-US,en;q=0.9,de;q=0.8")
	assert.Equal(t, "en-US", prefs.Primary())
	assert.Equal(t, "en", prefs.PrimaryLanguage())
	assert.Equal(t, "US", prefs.PrimaryRegion())

	empty := Parse("")
	assert.Equal(t, "", empty.Primary())
	assert.Equal(t, "", empty.PrimaryLanguage())
	assert.Equal(t, "", empty.PrimaryRegion())

	noRegion := Parse("de;q=0.9")
	assert.Equal(t, "de", noRegion.Primary())
	assert.Equal(t, "", noRegion.PrimaryRegion())
}

func TestTagsAndLanguages(t *testing.T) {
	prefs := Parse("en-US,en;q=0.9,de;q=0.8")
	assert.Equal(t, []string{"en-US", "en", "de"}, prefs.Tags())
	assert.Equal(t, []string{"en", "de"}, prefs.Languages())

	assert.Empty(t, Parse("").Tags())
	assert.Empty(t, Parse("").Languages())
}

func TestAccepts(t *testing.T) {
	prefs := Parse("de-DE;q=0.9")

	assert.True(t, prefs.Accepts("de"), "base-language match")
	assert.False(t, prefs.AcceptsExact("de"), "no exact de entry")
	assert.True(t, prefs.AcceptsExact("de-DE"))
	assert.True(t, prefs.AcceptsExact("DE_de"), "candidate is normalized first")
	assert.False(t, prefs.Accepts("fr"))
	assert.False(t, prefs.Accepts(""))
	assert.False(t, prefs.Accepts("   "))
	assert.False(t, Parse("").Accepts("de"))
}

func TestQuality(t *testing.T) {
	prefs := Parse("en-US,en;q=0.9,de-DE;q=0.8")

	q, ok := prefs.Quality("en")
	require.True(t, ok)
	assert.Equal(t, 0.9, q)

	q, ok = prefs.Quality("EN_us")
	require.True(t, ok)
	assert.Equal(t, 1.0, q)

	// Exact lookup only: "de" does not fall back to "de-DE".
	_, ok = prefs.Quality("de")
	assert.False(t, ok)

	_, ok = prefs.Quality("")
	assert.False(t, ok)
}

func TestBestMatch(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		available []string
		def       string
		want      string
	}{
		{
			name:      "base-language fallback beats default",
			header:    "en-US,en;q=0.9,de;q=0.8",
			available: []string{"de", "fr"},
			def:       "en",
			want:      "de",
		},
		{
			name:      "exact match wins immediately",
			header:    "en-US,en;q=0.9,de;q=0.8",
			available: []string{"de", "en-US"},
			def:       "fr",
			want:      "en-US",
		},
		{
			name:      "regional preference falls back to base",
			header:    "fr-CA;q=0.5",
			available: []string{"fr"},
			def:       "en",
			want:      "fr",
		},
		{
			name:      "exactness dominates quality",
			header:    "fr;q=0.2,de;q=1.0",
			available: []string{"fr", "xx"},
			def:       "",
			want:      "fr",
		},
		{
			name:      "original spelling is returned",
			header:    "pt-br",
			available: []string{"PT_BR"},
			def:       "",
			want:      "PT_BR",
		},
		{
			name:      "empty available returns default",
			header:    "en",
			available: nil,
			def:       "en",
			want:      "en",
		},
		{
			name:      "empty header returns default",
			header:    "",
			available: []string{"en", "de"},
			def:       "de",
			want:      "de",
		},
		{
			name:      "no match and no default",
			header:    "ja",
			available: []string{"en", "de"},
			def:       "",
			want:      "",
		},
		{
			name:      "blank candidates are ignored",
			header:    "de",
			available: []string{"", "   ", "de-AT"},
			def:       "en",
			want:      "de-AT",
		},
		{
			name:      "fallback scans available in insertion order",
			header:    "en;q=0.9",
			available: []string{"en-GB", "en-US"},
			def:       "",
			want:      "en-GB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := Parse(tt.header)
			assert.Equal(t, tt.want, prefs.BestMatch(tt.available, tt.def))
		})
	}
}

func TestBestMatchExactPassRunsFirstForAllPrefs(t *testing.T) {
	// A low-quality exact candidate must win over a higher-quality
	// preference that only base-matches: the exact pass covers the whole
	// preference list before any fallback is considered.
	prefs := Parse("de-DE;q=1.0,fr;q=0.2")
	assert.Equal(t, "fr", prefs.BestMatch([]string{"fr", "de-AT"}, ""))
}

func TestIsRTL(t *testing.T) {
	assert.True(t, Parse("ar").IsRTL())
	assert.True(t, Parse("he-IL;q=0.9").IsRTL())
	assert.True(t, Parse("fa").IsRTL())
	assert.False(t, Parse("en-US,ar;q=0.9").IsRTL(), "only the primary counts")
	assert.False(t, Parse("").IsRTL())

	assert.True(t, RTL("ur-PK"))
	assert.False(t, RTL("de"))
	assert.False(t, RTL(""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"EN-us", "en-US"},
		{"DE_at", "de-AT"},
		{"", ""},
		{"  ", ""},
		{"FR", "fr"},
		{" pt_BR ", "pt-BR"},
		{"zh-hans-cn", "zh-HANS-CN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"EN-us", "DE_at", "", "fr", "zh-Hans-CN", " sv_SE ", "*", "x-"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestLanguageAndRegion(t *testing.T) {
	assert.Equal(t, "en", Language("en-US"))
	assert.Equal(t, "en", Language("EN_us"))
	assert.Equal(t, "de", Language("de"))
	assert.Equal(t, "", Language(""))

	region, ok := Region("en-US")
	require.True(t, ok)
	assert.Equal(t, "US", region)

	region, ok = Region("de_at")
	require.True(t, ok)
	assert.Equal(t, "AT", region)

	_, ok = Region("de")
	assert.False(t, ok)

	// Extended tags: only the second segment counts.
	region, ok = Region("zh-Hans-CN")
	require.True(t, ok)
	assert.Equal(t, "HANS", region)
}
