package repository

import "database/sql"

// UserLocaleRepository stores each user's saved locale so the choice
// follows them across devices. The lang cookie stays the fast path; this is
// re-seeded into the cookie at login.
type UserLocaleRepository struct {
	db *sql.DB
}

func NewUserLocaleRepository(db *sql.DB) *UserLocaleRepository {
	return &UserLocaleRepository{db: db}
}

func (r *UserLocaleRepository) Get(userID int64) (string, error) {
	var locale string
	err := r.db.QueryRow(`SELECT locale FROM user_locales WHERE user_id = $1`, userID).Scan(&locale)
	if err != nil {
		return "", err
	}
	return locale, nil
}

func (r *UserLocaleRepository) Set(userID int64, locale, source string) error {
	_, err := r.db.Exec(`
		INSERT INTO user_locales (user_id, locale, source, updated_at) VALUES ($1, $2, $3, NOW())
		ON CONFLICT(user_id) DO UPDATE SET locale = excluded.locale, source = excluded.source, updated_at = NOW()`,
		userID, locale, source,
	)
	return err
}

func (r *UserLocaleRepository) Delete(userID int64) error {
	_, err := r.db.Exec(`DELETE FROM user_locales WHERE user_id = $1`, userID)
	return err
}
