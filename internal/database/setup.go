package database

import (
	"database/sql"
	"fmt"

	"github.com/erhancapar/kuzgun-backend/internal/models"
)

func setPragmaValues(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	// these next 2 extremely speed up performance of sqlite
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA synchronous = normal"); err != nil {
		return err
	}

	return nil
}

func Setup(cfg *models.ConfigFile) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if cfg.SelfContained {
		db, err = sql.Open("sqlite", "./database.db")
		if err != nil {
			return db, err
		}

		// there can be sqlite busy errors if this is not set to 1
		db.SetMaxOpenConns(1)

		err = setPragmaValues(db)
		if err != nil {
			return db, err
		}
	} else {
		db, err = sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&timeout=10s", cfg.DbUser, cfg.DbPassword, cfg.DbAddress, cfg.DbPort, cfg.DbDatabase))
		if err != nil {
			return db, err
		}

		db.SetMaxOpenConns(10)
	}

	err = SetupTables(db)
	if err != nil {
		return db, err
	}

	return db, nil
}

// SetupTables is exported so the handler tests can build the schema on an
// in-memory sqlite database.
func SetupTables(db *sql.DB) error {
	var err error

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS users (
				id BIGINT PRIMARY KEY,
				email VARCHAR(64) NOT NULL UNIQUE,
				username VARCHAR(32) NOT NULL UNIQUE,
				password BLOB NOT NULL,
				display_name VARCHAR(32) NOT NULL DEFAULT '',
				about_me VARCHAR(256) NOT NULL DEFAULT '',
				avatar_url VARCHAR(255) NOT NULL DEFAULT '',
				banner_url VARCHAR(255) NOT NULL DEFAULT '',
				banner_hex VARCHAR(7) NOT NULL DEFAULT '',
				online_status INT NOT NULL DEFAULT 0,
				status_emoji VARCHAR(100) NOT NULL DEFAULT '',
				status_text VARCHAR(128) NOT NULL DEFAULT '',
				status_timeout BIGINT NOT NULL DEFAULT 0,
				is_2fa_enabled BOOLEAN NOT NULL DEFAULT 0,
				accept_messages_from INT NOT NULL DEFAULT 0,
				created_at BIGINT NOT NULL
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS guilds (
				id BIGINT PRIMARY KEY,
				owner_id BIGINT NOT NULL,
				name VARCHAR(100) NOT NULL,
				description VARCHAR(256) NOT NULL DEFAULT '',
				icon_url VARCHAR(255) NOT NULL DEFAULT '',
				banner_url VARCHAR(255) NOT NULL DEFAULT '',
				splash_url VARCHAR(255) NOT NULL DEFAULT '',
				afk_channel_id BIGINT NOT NULL DEFAULT 0,
				afk_timeout INT NOT NULL DEFAULT 300,
				system_channel_id BIGINT NOT NULL DEFAULT 0,
				is_system_welcome_notification_enabled BOOLEAN NOT NULL DEFAULT 1,
				is_system_boost_notification_enabled BOOLEAN NOT NULL DEFAULT 1,
				boost_level INT NOT NULL DEFAULT 0,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL,
				FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS channels (
				id BIGINT PRIMARY KEY,
				guild_id BIGINT NOT NULL,
				name VARCHAR(100) NOT NULL,
				created_at BIGINT NOT NULL,
				FOREIGN KEY (guild_id) REFERENCES guilds(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS messages (
				id BIGINT PRIMARY KEY,
				channel_id BIGINT NOT NULL,
				author_id BIGINT NOT NULL,
				content TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL,
				FOREIGN KEY (channel_id) REFERENCES channels(id) ON DELETE CASCADE,
				FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
			);
		`)
	if err != nil {
		return err
	}

	return nil
}
