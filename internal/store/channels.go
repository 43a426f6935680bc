package store

import (
	"context"
	"database/sql"

	"github.com/erhancapar/kuzgun-backend/internal/models"
)

type Channels struct {
	db *sql.DB
}

func NewChannels(db *sql.DB) *Channels {
	return &Channels{db: db}
}

func scanChannel(row scanner) (models.Channel, error) {
	var c models.Channel
	var createdAt int64

	err := row.Scan(&c.ID, &c.GuildID, &c.Name, &createdAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	} else if err != nil {
		return c, err
	}

	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}

func (s *Channels) Create(ctx context.Context, c *models.Channel) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c.CreatedAt = now()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO channels (id, guild_id, name, created_at) VALUES (?, ?, ?, ?)",
		c.ID, c.GuildID, c.Name, toMillis(c.CreatedAt))
	return err
}

func (s *Channels) FindByID(ctx context.Context, id int64) (models.Channel, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT id, guild_id, name, created_at FROM channels WHERE id = ?", id)
	return scanChannel(row)
}

func (s *Channels) FindByGuild(ctx context.Context, guildID int64) ([]models.Channel, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, guild_id, name, created_at FROM channels WHERE guild_id = ?", guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}

	return channels, rows.Err()
}
