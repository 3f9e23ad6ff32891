package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// LanguageOption is one entry of the language picker / options API.
type LanguageOption struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"native_name"`
	RTL        bool     `json:"rtl"`
	Quality    *float64 `json:"quality,omitempty"`
	Current    bool     `json:"current"`
}
