package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func available() []string { return []string{"en", "de", "ar"} }

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie wins over header", cookie: "de", header: "ar,en;q=0.9", want: "de"},
		{name: "cookie variant matches offered spelling", cookie: "DE", header: "ar", want: "de"},
		{name: "cookie outside offered set is ignored", cookie: "fr", header: "de", want: "de"},
		{name: "header negotiation", cookie: "", header: "fr,de;q=0.8", want: "de"},
		{name: "header base-language fallback", cookie: "", header: "de-AT", want: "de"},
		{name: "no signal falls back to default", cookie: "", header: "", want: "en"},
		{name: "unmatchable header falls back to default", cookie: "", header: "ja,ko;q=0.9", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Accept-Language", tt.header)
			}

			assert.Equal(t, tt.want, Resolve(r, "en", available()))
		})
	}
}

func TestMiddlewareStoresLocaleInContext(t *testing.T) {
	var got string
	h := Middleware("en", available)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLocale(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "ar-EG,ar;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "ar", got)
}
