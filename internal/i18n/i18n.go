package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

//go:embed locales/*.json
var localesFS embed.FS

// FallbackLang is the catalog every deployment ships; T falls back to it
// before giving up on a key.
const FallbackLang = "en"

type contextKey struct{}

// translations maps lang -> key -> translated string.
var translations map[string]map[string]string

// defaultLang is the locale GetLocale reports when the context carries none.
var defaultLang = FallbackLang

// Load reads every embedded JSON locale file and sets the default locale.
// Call once at startup.
func Load(def string) {
	if def != "" {
		defaultLang = def
	}

	translations = make(map[string]map[string]string)
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		log.Fatalf("i18n: cannot list locales: %v", err)
	}
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		data, err := localesFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			log.Fatalf("i18n: cannot read %s: %v", entry.Name(), err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Fatalf("i18n: cannot parse %s: %v", entry.Name(), err)
		}
		flat := make(map[string]string)
		flatten("", raw, flat)
		translations[lang] = flat
	}
	log.Printf("i18n: loaded %d locales, default %q", len(translations), defaultLang)
}

// Locales returns the languages with an embedded catalog.
func Locales() []string {
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	return langs
}

// flatten recursively flattens nested JSON into dot-notation keys.
func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// WithLocale stores the locale in the context.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// GetLocale returns the locale from the context, or the configured default.
func GetLocale(ctx context.Context) string {
	if lang, ok := ctx.Value(contextKey{}).(string); ok && lang != "" {
		return lang
	}
	return defaultLang
}

// T translates a key using the locale from ctx.
// Optional args are used with fmt.Sprintf if the translated string contains %s/%d etc.
// Fallback chain: current lang -> default -> en -> return key itself.
func T(ctx context.Context, key string, args ...any) string {
	lang := GetLocale(ctx)

	for _, candidate := range []string{lang, defaultLang, FallbackLang} {
		if m, ok := translations[candidate]; ok {
			if s, ok := m[key]; ok {
				return format(s, args)
			}
		}
	}
	return key
}

func format(s string, args []any) string {
	if len(args) == 0 || !strings.Contains(s, "%") {
		return s
	}
	return fmt.Sprintf(s, args...)
}
