package handlers

import (
	"net/http"
	"strings"

	"langswitch/internal/acceptlang"
	"langswitch/internal/repository"
	"langswitch/templates"
)

type SettingsHandler struct {
	settingsRepo SettingsStore
	lang         *LangHandler
}

func NewSettingsHandler(settingsRepo SettingsStore, lang *LangHandler) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo, lang: lang}
}

func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := templates.SettingsData{
		Offered: h.lang.Offered(),
		Default: h.lang.Fallback(),
	}
	templates.SettingsPage(data).Render(r.Context(), w)
}

// SaveLanguages replaces the offered language set. Input is a comma list;
// entries are normalized and blanks dropped. An empty result is rejected so
// negotiation always has candidates.
func (h *SettingsHandler) SaveLanguages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var langs []string
	seen := map[string]bool{}
	for _, part := range strings.Split(r.FormValue("languages"), ",") {
		tag := acceptlang.Normalize(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		langs = append(langs, tag)
	}
	if len(langs) == 0 {
		http.Error(w, "At least one language is required", http.StatusUnprocessableEntity)
		return
	}

	if err := h.settingsRepo.SetList(repository.KeySiteLangs, langs); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	templates.SettingsSaved().Render(r.Context(), w)
}

// SaveDefault sets the fallback locale. It must be one of the offered
// languages, base-language matches included.
func (h *SettingsHandler) SaveDefault(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	tag := acceptlang.Normalize(r.FormValue("default"))
	if tag == "" {
		http.Error(w, "Default language is required", http.StatusUnprocessableEntity)
		return
	}
	if !acceptlang.Parse(strings.Join(h.lang.Offered(), ",")).Accepts(tag) {
		http.Error(w, "Default must be an offered language", http.StatusUnprocessableEntity)
		return
	}

	if err := h.settingsRepo.Set(repository.KeyDefaultLang, tag); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	templates.SettingsSaved().Render(r.Context(), w)
}
