package i18n

import (
	"net/http"

	"langswitch/internal/acceptlang"
)

// CookieName holds the visitor's explicit locale choice. The cookie always
// wins over header negotiation.
const CookieName = "lang"

// Middleware resolves the request locale and stores it in the context.
// Resolution order: lang cookie (if it names an offered locale), then the
// best Accept-Language match against the offered set, then the default.
// available is called per request so admin changes take effect immediately.
func Middleware(defaultLang string, available func() []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := Resolve(r, defaultLang, available())
			ctx := WithLocale(r.Context(), lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Resolve picks the locale for a single request without touching the
// context. Exposed separately so handlers can report the negotiation result.
func Resolve(r *http.Request, defaultLang string, available []string) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if lang := MatchOffered(c.Value, available); lang != "" {
			return lang
		}
	}

	prefs := acceptlang.Parse(r.Header.Get("Accept-Language"))
	return prefs.BestMatch(available, defaultLang)
}

// MatchOffered validates a claimed locale against the offered set, returning
// the offered spelling or "".
func MatchOffered(claimed string, available []string) string {
	tag := acceptlang.Normalize(claimed)
	if tag == "" {
		return ""
	}
	for _, candidate := range available {
		if acceptlang.Normalize(candidate) == tag {
			return candidate
		}
	}
	return ""
}
