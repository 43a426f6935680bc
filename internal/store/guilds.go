package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/erhancapar/kuzgun-backend/internal/models"
)

const guildColumns = `id, owner_id, name, description, icon_url, banner_url, splash_url, afk_channel_id, afk_timeout,
	system_channel_id, is_system_welcome_notification_enabled, is_system_boost_notification_enabled, boost_level,
	created_at, updated_at`

type Guilds struct {
	db *sql.DB
}

func NewGuilds(db *sql.DB) *Guilds {
	return &Guilds{db: db}
}

func scanGuild(row scanner) (models.Guild, error) {
	var g models.Guild
	var createdAt, updatedAt int64

	err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Description, &g.IconURL, &g.BannerURL, &g.SplashURL,
		&g.AfkChannelID, &g.AfkTimeout, &g.SystemChannelID, &g.IsSystemWelcomeNotificationEnabled,
		&g.IsSystemBoostNotificationEnabled, &g.BoostLevel, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return g, ErrNotFound
	} else if err != nil {
		return g, err
	}

	g.CreatedAt = fromMillis(createdAt)
	g.UpdatedAt = fromMillis(updatedAt)
	return g, nil
}

func (s *Guilds) Create(ctx context.Context, g *models.Guild) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	g.CreatedAt = now()
	g.UpdatedAt = g.CreatedAt
	if g.AfkTimeout == 0 {
		g.AfkTimeout = 300
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO guilds (id, owner_id, name, afk_timeout, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		g.ID, g.OwnerID, g.Name, g.AfkTimeout, toMillis(g.CreatedAt), toMillis(g.UpdatedAt))
	return err
}

func (s *Guilds) FindByID(ctx context.Context, id int64) (models.Guild, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+guildColumns+" FROM guilds WHERE id = ?", id)
	return scanGuild(row)
}

func (s *Guilds) FindByOwner(ctx context.Context, ownerID int64) ([]models.Guild, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+guildColumns+" FROM guilds WHERE owner_id = ?", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guilds := []models.Guild{}
	for rows.Next() {
		g, err := scanGuild(rows)
		if err != nil {
			return nil, err
		}
		guilds = append(guilds, g)
	}

	return guilds, rows.Err()
}

// GuildPatch carries the optional fields of a partial guild update. owner_id
// is immutable and deliberately has no field here.
type GuildPatch struct {
	Name                               *string
	Description                        *string
	IconURL                            *string
	BannerURL                          *string
	SplashURL                          *string
	AfkChannelID                       *int64
	AfkTimeout                         *int
	SystemChannelID                    *int64
	IsSystemWelcomeNotificationEnabled *bool
	IsSystemBoostNotificationEnabled   *bool
	BoostLevel                         *int
}

func (p GuildPatch) assignments() ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.IconURL != nil {
		add("icon_url", *p.IconURL)
	}
	if p.BannerURL != nil {
		add("banner_url", *p.BannerURL)
	}
	if p.SplashURL != nil {
		add("splash_url", *p.SplashURL)
	}
	if p.AfkChannelID != nil {
		add("afk_channel_id", *p.AfkChannelID)
	}
	if p.AfkTimeout != nil {
		add("afk_timeout", *p.AfkTimeout)
	}
	if p.SystemChannelID != nil {
		add("system_channel_id", *p.SystemChannelID)
	}
	if p.IsSystemWelcomeNotificationEnabled != nil {
		add("is_system_welcome_notification_enabled", *p.IsSystemWelcomeNotificationEnabled)
	}
	if p.IsSystemBoostNotificationEnabled != nil {
		add("is_system_boost_notification_enabled", *p.IsSystemBoostNotificationEnabled)
	}
	if p.BoostLevel != nil {
		add("boost_level", *p.BoostLevel)
	}

	return sets, args
}

func (p GuildPatch) IsEmpty() bool {
	sets, _ := p.assignments()
	return len(sets) == 0
}

func (s *Guilds) UpdateByID(ctx context.Context, id int64, patch GuildPatch) (models.Guild, error) {
	sets, args := patch.assignments()
	if len(sets) == 0 {
		return models.Guild{}, ErrNoFields
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, toMillis(now()), id)

	execCtx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(execCtx, "UPDATE guilds SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.Guild{}, err
	}

	return s.FindByID(ctx, id)
}

func (s *Guilds) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM guilds WHERE id = ?", id)
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
