// Package templates holds the HTML views. The components are written
// directly against the templ runtime so the locale comes from the render
// context like everywhere else in the app.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"langswitch/internal/acceptlang"
	"langswitch/internal/i18n"
	"langswitch/internal/models"
)

// page wraps body in the shared layout. The html element carries the
// resolved locale and its text direction so RTL languages render correctly.
func page(titleKey string, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := i18n.GetLocale(ctx)
		dir := "ltr"
		if acceptlang.RTL(lang) {
			dir = "rtl"
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="%s" dir="%s"><head><meta charset="utf-8"><title>%s</title><link rel="stylesheet" href="/static/style.css"></head><body>`,
			templ.EscapeString(lang), dir, templ.EscapeString(i18n.T(ctx, titleKey))); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// PickerData drives the public language picker page.
type PickerData struct {
	Current     string
	CurrentName string
	Options     []models.LanguageOption
}

func PickerPage(data PickerData) templ.Component {
	return page("app.title", func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p><p class="hint">%s</p><ul class="languages">`,
			templ.EscapeString(i18n.T(ctx, "picker.heading")),
			templ.EscapeString(i18n.T(ctx, "picker.current", data.CurrentName)),
			templ.EscapeString(i18n.T(ctx, "picker.hint"))); err != nil {
			return err
		}
		for _, opt := range data.Options {
			class := ""
			if opt.Current {
				class = ` class="current"`
			}
			if _, err := fmt.Fprintf(w, `<li%s><a href="/lang?lang=%s">%s (%s)</a></li>`,
				class,
				templ.EscapeString(opt.Code),
				templ.EscapeString(opt.NativeName),
				templ.EscapeString(opt.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

func LoginPage(errMsg string) templ.Component {
	return page("login.title", func(ctx context.Context, w io.Writer) error {
		if errMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errMsg)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<h1>%s</h1><form method="post" action="/login"><label>%s<input name="username"></label><label>%s<input type="password" name="password"></label><button type="submit">%s</button></form>`,
			templ.EscapeString(i18n.T(ctx, "login.title")),
			templ.EscapeString(i18n.T(ctx, "login.username")),
			templ.EscapeString(i18n.T(ctx, "login.password")),
			templ.EscapeString(i18n.T(ctx, "login.submit")))
		return err
	})
}

func SetupPage(errMsg string) templ.Component {
	return page("setup.title", func(ctx context.Context, w io.Writer) error {
		if errMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errMsg)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<h1>%s</h1><form method="post" action="/setup"><input name="username" placeholder="username"><input name="email" placeholder="email"><input type="password" name="password"><input type="password" name="confirm_password"><button type="submit">%s</button></form>`,
			templ.EscapeString(i18n.T(ctx, "setup.title")),
			templ.EscapeString(i18n.T(ctx, "setup.submit")))
		return err
	})
}

// SettingsData drives the admin language settings page.
type SettingsData struct {
	Offered []string
	Default string
}

func SettingsPage(data SettingsData) templ.Component {
	return page("settings.title", func(ctx context.Context, w io.Writer) error {
		offered := strings.Join(data.Offered, ",")
		_, err := fmt.Fprintf(w,
			`<h1>%s</h1><form id="languages"><label>%s<input name="languages" value="%s"></label><label>%s<input name="default" value="%s"></label></form><form method="post" action="/logout"><button type="submit">Logout</button></form>`,
			templ.EscapeString(i18n.T(ctx, "settings.title")),
			templ.EscapeString(i18n.T(ctx, "settings.offered")),
			templ.EscapeString(offered),
			templ.EscapeString(i18n.T(ctx, "settings.default")),
			templ.EscapeString(data.Default))
		return err
	})
}

// SettingsSaved is the fragment returned by the settings PUT endpoints.
func SettingsSaved() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<span class="saved">%s</span>`,
			templ.EscapeString(i18n.T(ctx, "settings.saved")))
		return err
	})
}
