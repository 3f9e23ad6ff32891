package repository

import (
	"database/sql"
	"strings"
)

// Setting keys used by the language configuration.
const (
	KeySiteLangs   = "site_languages"
	KeyDefaultLang = "default_language"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = NOW()`,
		key, value,
	)
	return err
}

func (r *SettingsRepository) GetString(key, defaultVal string) string {
	val, err := r.Get(key)
	if err != nil {
		return defaultVal
	}
	return val
}

// GetList reads a comma-separated setting. Missing or blank values return
// the fallback list.
func (r *SettingsRepository) GetList(key string, defaultVal []string) []string {
	val, err := r.Get(key)
	if err != nil || strings.TrimSpace(val) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func (r *SettingsRepository) SetList(key string, values []string) error {
	return r.Set(key, strings.Join(values, ","))
}
