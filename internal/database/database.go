package database

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Open(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}

	// Conditional migration: add source column to user_locales if missing
	// (records whether the preference came from the picker or from header
	// negotiation at first login).
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM information_schema.columns
		WHERE table_name = 'user_locales' AND column_name = 'source'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check source column: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE user_locales ADD COLUMN source TEXT NOT NULL DEFAULT 'picker'`); err != nil {
			return fmt.Errorf("add source column: %w", err)
		}
	}

	return nil
}
