// Package validator holds the canonical field rules for every resource. All
// bounds live on a single Policy value so the limits are configuration, not
// per-handler constants.
package validator

import (
	"fmt"
	"regexp"
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._+-]*[a-zA-Z0-9])?@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)
	usernameRegex    = regexp.MustCompile(`^[a-z0-9]+$`)
	displayNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	bannerHexRegex   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	passwordLetter = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit  = regexp.MustCompile(`\d`)
	passwordSymbol = regexp.MustCompile(`\W`)
)

type Policy struct {
	EmailMaxLength       int
	UsernameMinLength    int
	UsernameMaxLength    int
	PasswordMinLength    int
	NameMaxLength        int
	DescriptionMaxLength int
	DisplayNameMaxLength int
	AboutMeMaxLength     int
	StatusEmojiMaxLength int
	StatusTextMaxLength  int
	AfkTimeoutMin        int
	AfkTimeoutMax        int
	BoostLevelMax        int
}

func Default() Policy {
	return Policy{
		EmailMaxLength:       64,
		UsernameMinLength:    3,
		UsernameMaxLength:    16,
		PasswordMinLength:    8,
		NameMaxLength:        100,
		DescriptionMaxLength: 256,
		DisplayNameMaxLength: 32,
		AboutMeMaxLength:     256,
		StatusEmojiMaxLength: 100,
		StatusTextMaxLength:  128,
		AfkTimeoutMin:        60,
		AfkTimeoutMax:        3600,
		BoostLevelMax:        3,
	}
}

func (p Policy) Email(email string) error {
	if len(email) > p.EmailMaxLength || !emailRegex.MatchString(email) {
		return fmt.Errorf("email_invalid")
	}
	return nil
}

func (p Policy) Username(username string) error {
	if len(username) < p.UsernameMinLength || len(username) > p.UsernameMaxLength {
		return fmt.Errorf("username_invalid")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username_invalid")
	}
	return nil
}

// Password requires at least one letter, one digit and one non-word symbol.
func (p Policy) Password(password string) error {
	if len(password) < p.PasswordMinLength {
		return fmt.Errorf("password_invalid")
	}
	if !passwordLetter.MatchString(password) || !passwordDigit.MatchString(password) || !passwordSymbol.MatchString(password) {
		return fmt.Errorf("password_invalid")
	}
	return nil
}

func (p Policy) GuildName(name string) error {
	if name == "" || len(name) > p.NameMaxLength {
		return fmt.Errorf("invalid_guild_name")
	}
	return nil
}

func (p Policy) ChannelName(name string) error {
	if name == "" || len(name) > p.NameMaxLength {
		return fmt.Errorf("invalid_channel_name")
	}
	return nil
}

func (p Policy) Description(description string) error {
	if len(description) > p.DescriptionMaxLength {
		return fmt.Errorf("description_too_long")
	}
	return nil
}

func (p Policy) DisplayName(displayName string) error {
	if len(displayName) > p.DisplayNameMaxLength || !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("invalid_display_name")
	}
	return nil
}

func (p Policy) AboutMe(aboutMe string) error {
	if len(aboutMe) > p.AboutMeMaxLength {
		return fmt.Errorf("about_me_too_long")
	}
	return nil
}

func (p Policy) StatusEmoji(statusEmoji string) error {
	if len(statusEmoji) > p.StatusEmojiMaxLength {
		return fmt.Errorf("status_emoji_too_long")
	}
	return nil
}

func (p Policy) StatusText(statusText string) error {
	if len(statusText) > p.StatusTextMaxLength {
		return fmt.Errorf("status_text_too_long")
	}
	return nil
}

func (p Policy) AfkTimeout(seconds int) error {
	if seconds < p.AfkTimeoutMin || seconds > p.AfkTimeoutMax {
		return fmt.Errorf("invalid_afk_timeout")
	}
	return nil
}

func (p Policy) BoostLevel(level int) error {
	if level < 0 || level > p.BoostLevelMax {
		return fmt.Errorf("invalid_boost_level")
	}
	return nil
}

func (p Policy) BannerHex(hex string) error {
	if !bannerHexRegex.MatchString(hex) {
		return fmt.Errorf("invalid_banner_hex")
	}
	return nil
}

// StatusSetting covers online_status and accept_messages_from, both 0..3 enums.
func (p Policy) StatusSetting(value int) error {
	if value < 0 || value > 3 {
		return fmt.Errorf("invalid_status_setting")
	}
	return nil
}

func (p Policy) MessageContent(content string) error {
	if content == "" {
		return fmt.Errorf("invalid_data")
	}
	return nil
}
