package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"langswitch/internal/acceptlang"
	"langswitch/internal/i18n"
	"langswitch/internal/langnames"
	"langswitch/internal/middleware"
	"langswitch/internal/models"
	"langswitch/internal/repository"
	"langswitch/templates"
)

// SettingsStore is the slice of the settings repository the language
// handlers need. *repository.SettingsRepository satisfies it.
type SettingsStore interface {
	GetList(key string, defaultVal []string) []string
	GetString(key, defaultVal string) string
	Set(key, value string) error
	SetList(key string, values []string) error
}

// LocaleStore persists per-user locale choices.
// *repository.UserLocaleRepository satisfies it.
type LocaleStore interface {
	Get(userID int64) (string, error)
	Set(userID int64, locale, source string) error
}

type LangHandler struct {
	settingsRepo SettingsStore
	localeRepo   LocaleStore
	defaultLang  string
	defaultLangs []string
}

func NewLangHandler(settingsRepo SettingsStore, localeRepo LocaleStore, defaultLang string, defaultLangs []string) *LangHandler {
	return &LangHandler{
		settingsRepo: settingsRepo,
		localeRepo:   localeRepo,
		defaultLang:  defaultLang,
		defaultLangs: defaultLangs,
	}
}

// Offered returns the currently offered locales (admin settings override the
// configured defaults).
func (h *LangHandler) Offered() []string {
	return h.settingsRepo.GetList(repository.KeySiteLangs, h.defaultLangs)
}

// Fallback returns the locale used when negotiation finds nothing.
func (h *LangHandler) Fallback() string {
	return h.settingsRepo.GetString(repository.KeyDefaultLang, h.defaultLang)
}

// Picker renders the public language picker with the negotiated locale
// highlighted.
func (h *LangHandler) Picker(w http.ResponseWriter, r *http.Request) {
	current := i18n.GetLocale(r.Context())
	data := templates.PickerData{
		Current:     current,
		CurrentName: langnames.NativeName(current),
		Options:     h.options(r, current),
	}
	templates.PickerPage(data).Render(r.Context(), w)
}

// SetLang sets the language cookie and redirects back to the referring page.
func (h *LangHandler) SetLang(w http.ResponseWriter, r *http.Request) {
	lang := i18n.MatchOffered(r.URL.Query().Get("lang"), h.Offered())
	if lang == "" {
		lang = h.Fallback()
	}

	setLangCookie(w, lang)

	referer := r.Header.Get("Referer")
	if referer == "" {
		referer = "/"
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}

// SaveLocale persists the authenticated user's locale and refreshes the
// cookie. Mounted inside the auth group.
func (h *LangHandler) SaveLocale(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	lang := i18n.MatchOffered(r.FormValue("locale"), h.Offered())
	if lang == "" {
		http.Error(w, "Unknown locale", http.StatusUnprocessableEntity)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.localeRepo.Set(userID, acceptlang.Normalize(lang), "picker"); err != nil {
		log.Printf("save locale for user %d: %v", userID, err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setLangCookie(w, lang)
	w.WriteHeader(http.StatusNoContent)
}

// Options returns the language options as JSON, annotated with the quality
// the client sent for each locale, if any.
func (h *LangHandler) Options(w http.ResponseWriter, r *http.Request) {
	current := i18n.GetLocale(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.options(r, current))
}

// detectResponse is the negotiation report for /api/language/detect.
type detectResponse struct {
	Header          string           `json:"header"`
	Preferences     acceptlang.Prefs `json:"preferences"`
	Primary         string           `json:"primary,omitempty"`
	PrimaryLanguage string           `json:"primary_language,omitempty"`
	PrimaryRegion   string           `json:"primary_region,omitempty"`
	Languages       []string         `json:"languages,omitempty"`
	RTL             bool             `json:"rtl"`
	BestMatch       string           `json:"best_match,omitempty"`
	Resolved        string           `json:"resolved"`
}

// Detect reports how the client's Accept-Language header was parsed and
// which offered locale won. Handy for debugging negotiation issues.
func (h *LangHandler) Detect(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Accept-Language")
	prefs := acceptlang.Parse(header)

	resp := detectResponse{
		Header:          header,
		Preferences:     prefs,
		Primary:         prefs.Primary(),
		PrimaryLanguage: prefs.PrimaryLanguage(),
		PrimaryRegion:   prefs.PrimaryRegion(),
		Languages:       prefs.Languages(),
		RTL:             prefs.IsRTL(),
		BestMatch:       prefs.BestMatch(h.Offered(), h.Fallback()),
		Resolved:        i18n.GetLocale(r.Context()),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *LangHandler) options(r *http.Request, current string) []models.LanguageOption {
	prefs := acceptlang.Parse(r.Header.Get("Accept-Language"))

	var opts []models.LanguageOption
	for _, code := range h.Offered() {
		opt := models.LanguageOption{
			Code:       code,
			Name:       langnames.Name(code),
			NativeName: langnames.NativeName(code),
			RTL:        acceptlang.RTL(code),
			Current:    acceptlang.Normalize(code) == acceptlang.Normalize(current),
		}
		if q, ok := prefs.Quality(code); ok {
			opt.Quality = &q
		}
		opts = append(opts, opt)
	}
	return opts
}

func setLangCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
}
