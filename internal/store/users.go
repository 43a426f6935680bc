package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/erhancapar/kuzgun-backend/internal/models"
)

var ErrDuplicateEmail = errors.New("email already in use")
var ErrDuplicateUsername = errors.New("username already in use")

// duplicateError maps a unique-constraint violation to the column sentinel.
// sqlite reports "UNIQUE constraint failed: users.email", mysql reports
// "Duplicate entry ... for key ...email...".
func duplicateError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") && !strings.Contains(msg, "Duplicate entry") {
		return nil
	}
	if strings.Contains(msg, "email") {
		return ErrDuplicateEmail
	}
	if strings.Contains(msg, "username") {
		return ErrDuplicateUsername
	}
	return nil
}

const userColumns = `id, email, username, password, display_name, about_me, avatar_url, banner_url, banner_hex,
	online_status, status_emoji, status_text, status_timeout, is_2fa_enabled, accept_messages_from, created_at`

type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	var createdAt int64

	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.DisplayName, &u.AboutMe, &u.AvatarURL,
		&u.BannerURL, &u.BannerHex, &u.OnlineStatus, &u.StatusEmoji, &u.StatusText, &u.StatusTimeout,
		&u.Is2faEnabled, &u.AcceptMessagesFrom, &createdAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	} else if err != nil {
		return u, err
	}

	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func (s *Users) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	u.CreatedAt = now()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, username, password, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Username, u.Password, toMillis(u.CreatedAt))
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return err
	}
	return nil
}

func (s *Users) FindByID(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (s *Users) FindByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

func (s *Users) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var found bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id).Scan(&found)
	return found, err
}

// UserPatch carries the optional profile fields of a partial update. Nil
// fields are left untouched in the database.
type UserPatch struct {
	DisplayName        *string
	AboutMe            *string
	AvatarURL          *string
	BannerURL          *string
	BannerHex          *string
	OnlineStatus       *int
	StatusEmoji        *string
	StatusText         *string
	StatusTimeout      *int64
	Is2faEnabled       *bool
	AcceptMessagesFrom *int
}

func (p UserPatch) assignments() ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if p.DisplayName != nil {
		add("display_name", *p.DisplayName)
	}
	if p.AboutMe != nil {
		add("about_me", *p.AboutMe)
	}
	if p.AvatarURL != nil {
		add("avatar_url", *p.AvatarURL)
	}
	if p.BannerURL != nil {
		add("banner_url", *p.BannerURL)
	}
	if p.BannerHex != nil {
		add("banner_hex", *p.BannerHex)
	}
	if p.OnlineStatus != nil {
		add("online_status", *p.OnlineStatus)
	}
	if p.StatusEmoji != nil {
		add("status_emoji", *p.StatusEmoji)
	}
	if p.StatusText != nil {
		add("status_text", *p.StatusText)
	}
	if p.StatusTimeout != nil {
		add("status_timeout", *p.StatusTimeout)
	}
	if p.Is2faEnabled != nil {
		add("is_2fa_enabled", *p.Is2faEnabled)
	}
	if p.AcceptMessagesFrom != nil {
		add("accept_messages_from", *p.AcceptMessagesFrom)
	}

	return sets, args
}

func (p UserPatch) IsEmpty() bool {
	sets, _ := p.assignments()
	return len(sets) == 0
}

func (s *Users) UpdateByID(ctx context.Context, id int64, patch UserPatch) (models.User, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return models.User{}, ErrNoFields
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()

	args = append(args, id)
	_, err := s.db.ExecContext(execCtx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.User{}, err
	}

	return s.FindByID(ctx, id)
}

func (s *Users) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
