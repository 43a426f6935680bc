package store

import (
	"context"
	"database/sql"

	"github.com/erhancapar/kuzgun-backend/internal/models"
)

type Messages struct {
	db *sql.DB
}

func NewMessages(db *sql.DB) *Messages {
	return &Messages{db: db}
}

func scanMessage(row scanner) (models.Message, error) {
	var m models.Message
	var createdAt, updatedAt int64

	err := row.Scan(&m.ID, &m.ChannelID, &m.AuthorID, &m.Content, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	} else if err != nil {
		return m, err
	}

	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}

func (s *Messages) Create(ctx context.Context, m *models.Message) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, channel_id, author_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.ChannelID, m.AuthorID, m.Content, toMillis(m.CreatedAt), toMillis(m.UpdatedAt))
	return err
}

func (s *Messages) FindByID(ctx context.Context, id int64) (models.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, channel_id, author_id, content, created_at, updated_at FROM messages WHERE id = ?", id)
	return scanMessage(row)
}

// FindByChannel returns the channel's messages in ascending creation order,
// snowflake id breaking ties within the same millisecond.
func (s *Messages) FindByChannel(ctx context.Context, channelID int64) ([]models.Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, channel_id, author_id, content, created_at, updated_at FROM messages WHERE channel_id = ? ORDER BY created_at ASC, id ASC",
		channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// UpdateContent replaces the message body and refreshes updated_at.
func (s *Messages) UpdateContent(ctx context.Context, id int64, content string) (models.Message, error) {
	execCtx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(execCtx, "UPDATE messages SET content = ?, updated_at = ? WHERE id = ?",
		content, toMillis(now()), id)
	if err != nil {
		return models.Message{}, err
	}

	return s.FindByID(ctx, id)
}

func (s *Messages) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
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
