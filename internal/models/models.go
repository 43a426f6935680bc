package models

import "time"

type User struct {
	ID                 int64     `json:"id,string"`
	Email              string    `json:"email,omitempty"`
	Username           string    `json:"username"`
	Password           []byte    `json:"-"`
	DisplayName        string    `json:"display_name,omitempty"`
	AboutMe            string    `json:"about_me,omitempty"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	BannerURL          string    `json:"banner_url,omitempty"`
	BannerHex          string    `json:"banner_hex,omitempty"`
	OnlineStatus       int       `json:"online_status"`
	StatusEmoji        string    `json:"status_emoji,omitempty"`
	StatusText         string    `json:"status_text,omitempty"`
	StatusTimeout      int64     `json:"status_timeout,omitempty"`
	Is2faEnabled       bool      `json:"is_2fa_enabled"`
	AcceptMessagesFrom int       `json:"accept_messages_from"`
	CreatedAt          time.Time `json:"created_at"`
}

type Guild struct {
	ID                                 int64     `json:"id,string"`
	OwnerID                            int64     `json:"owner_id,string"`
	Name                               string    `json:"name"`
	Description                        string    `json:"description,omitempty"`
	IconURL                            string    `json:"icon_url,omitempty"`
	BannerURL                          string    `json:"banner_url,omitempty"`
	SplashURL                          string    `json:"splash_url,omitempty"`
	AfkChannelID                       int64     `json:"afk_channel_id,string,omitempty"`
	AfkTimeout                         int       `json:"afk_timeout"`
	SystemChannelID                    int64     `json:"system_channel_id,string,omitempty"`
	IsSystemWelcomeNotificationEnabled bool      `json:"is_system_welcome_notification_enabled"`
	IsSystemBoostNotificationEnabled   bool      `json:"is_system_boost_notification_enabled"`
	BoostLevel                         int       `json:"boost_level"`
	CreatedAt                          time.Time `json:"created_at"`
	UpdatedAt                          time.Time `json:"updated_at"`
}

type Channel struct {
	ID        int64     `json:"id,string"`
	GuildID   int64     `json:"guild_id,string"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        int64     `json:"id,string"`
	ChannelID int64     `json:"channel_id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConfigFile struct {
	Address            string
	Port               string
	TlsCert            string
	TlsKey             string
	PrintHttpRequests  bool
	JwtSecret          string
	TokenLifetimeHours int
	BcryptCost         int
	SnowflakeWorkerID  int64
	SelfContained      bool
	DbUser             string
	DbPassword         string
	DbAddress          string
	DbPort             string
	DbDatabase         string
	RedisAddress       string
	RedisPassword      string
}
