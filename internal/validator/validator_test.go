package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/erhancapar/kuzgun-backend/internal/validator"
)

var policy = validator.Default()

func TestEmail(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		expectedError error
	}{
		{
			name:          "Valid: Standard email",
			email:         "user@gmail.com",
			expectedError: nil,
		},
		{
			name:          "Valid: Email with plus sign in local part",
			email:         "user+tag@yahoo.co.uk",
			expectedError: nil,
		},
		{
			name:          "Valid: Email with underscore and dot in local part",
			email:         "first.last_name@yahoo.co.uk",
			expectedError: nil,
		},
		{
			name:          "Valid: Maximum length (64 chars)",
			email:         strings.Repeat("a", 49) + "@protonmail.com",
			expectedError: nil,
		},
		{
			name:          "Error: Too long (65 characters)",
			email:         strings.Repeat("a", 50) + "@protonmail.com",
			expectedError: fmt.Errorf("email_invalid"),
		},
		{
			name:          "Error: Missing @ sign",
			email:         "userexample.com",
			expectedError: fmt.Errorf("email_invalid"),
		},
		{
			name:          "Error: Missing domain part",
			email:         "user@",
			expectedError: fmt.Errorf("email_invalid"),
		},
		{
			name:          "Error: Missing TLD",
			email:         "user@example",
			expectedError: fmt.Errorf("email_invalid"),
		},
		{
			name:          "Error: Contains whitespace",
			email:         "user name@example.com",
			expectedError: fmt.Errorf("email_invalid"),
		},
		{
			name:          "Error: Empty string",
			email:         "",
			expectedError: fmt.Errorf("email_invalid"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Email(tt.email)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		expectedError error
	}{
		{
			name:          "Valid: Lowercase letters",
			username:      "erhan",
			expectedError: nil,
		},
		{
			name:          "Valid: Letters and digits",
			username:      "erhan99",
			expectedError: nil,
		},
		{
			name:          "Valid: Minimum length (3)",
			username:      "abc",
			expectedError: nil,
		},
		{
			name:          "Valid: Maximum length (16)",
			username:      strings.Repeat("a", 16),
			expectedError: nil,
		},
		{
			name:          "Error: Too short (2)",
			username:      "ab",
			expectedError: fmt.Errorf("username_invalid"),
		},
		{
			name:          "Error: Too long (17)",
			username:      strings.Repeat("a", 17),
			expectedError: fmt.Errorf("username_invalid"),
		},
		{
			name:          "Error: Uppercase letters",
			username:      "Erhan",
			expectedError: fmt.Errorf("username_invalid"),
		},
		{
			name:          "Error: Special characters",
			username:      "erhan_99",
			expectedError: fmt.Errorf("username_invalid"),
		},
		{
			name:          "Error: Empty string",
			username:      "",
			expectedError: fmt.Errorf("username_invalid"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Username(tt.username)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{
			name:          "Valid: Letter, digit and symbol",
			password:      "hunter42!",
			expectedError: nil,
		},
		{
			name:          "Valid: Exactly 8 characters",
			password:      "abc123!x",
			expectedError: nil,
		},
		{
			name:          "Error: Too short (7)",
			password:      "abc12!x",
			expectedError: fmt.Errorf("password_invalid"),
		},
		{
			name:          "Error: No digit",
			password:      "abcdefg!",
			expectedError: fmt.Errorf("password_invalid"),
		},
		{
			name:          "Error: No letter",
			password:      "12345678!",
			expectedError: fmt.Errorf("password_invalid"),
		},
		{
			name:          "Error: No symbol",
			password:      "abcd1234",
			expectedError: fmt.Errorf("password_invalid"),
		},
		{
			name:          "Error: Empty string",
			password:      "",
			expectedError: fmt.Errorf("password_invalid"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Password(tt.password)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestGuildName(t *testing.T) {
	tests := []struct {
		name          string
		guildName     string
		expectedError error
	}{
		{
			name:          "Valid: Normal name",
			guildName:     "My Guild",
			expectedError: nil,
		},
		{
			name:          "Valid: Exactly 100 characters",
			guildName:     strings.Repeat("a", 100),
			expectedError: nil,
		},
		{
			name:          "Error: 101 characters",
			guildName:     strings.Repeat("a", 101),
			expectedError: fmt.Errorf("invalid_guild_name"),
		},
		{
			name:          "Error: Empty string",
			guildName:     "",
			expectedError: fmt.Errorf("invalid_guild_name"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.GuildName(tt.guildName)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestChannelName(t *testing.T) {
	if err := policy.ChannelName("general"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := policy.ChannelName(strings.Repeat("a", 100)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := policy.ChannelName(""); err == nil {
		t.Error("expected invalid_channel_name for empty name")
	}
	if err := policy.ChannelName(strings.Repeat("a", 101)); err == nil {
		t.Error("expected invalid_channel_name for 101 characters")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name          string
		displayName   string
		expectedError error
	}{
		{
			name:          "Valid: Letters and spaces",
			displayName:   "Erhan Capar",
			expectedError: nil,
		},
		{
			name:          "Valid: Empty (clears the field)",
			displayName:   "",
			expectedError: nil,
		},
		{
			name:          "Error: Too long (33)",
			displayName:   strings.Repeat("a", 33),
			expectedError: fmt.Errorf("invalid_display_name"),
		},
		{
			name:          "Error: Special characters",
			displayName:   "Erhan!",
			expectedError: fmt.Errorf("invalid_display_name"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.DisplayName(tt.displayName)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestAfkTimeout(t *testing.T) {
	tests := []struct {
		name          string
		seconds       int
		expectedError error
	}{
		{"Valid: Lower bound", 60, nil},
		{"Valid: Upper bound", 3600, nil},
		{"Error: Below lower bound", 59, fmt.Errorf("invalid_afk_timeout")},
		{"Error: Above upper bound", 3601, fmt.Errorf("invalid_afk_timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.AfkTimeout(tt.seconds)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestBoostLevel(t *testing.T) {
	for level := 0; level < 4; level++ {
		if err := policy.BoostLevel(level); err != nil {
			t.Errorf("expected level %d to be valid, got %v", level, err)
		}
	}
	if err := policy.BoostLevel(4); err == nil {
		t.Error("expected invalid_boost_level for 4")
	}
	if err := policy.BoostLevel(-1); err == nil {
		t.Error("expected invalid_boost_level for -1")
	}
}

func TestBannerHex(t *testing.T) {
	tests := []struct {
		name          string
		hex           string
		expectedError error
	}{
		{"Valid: Lowercase", "#aabbcc", nil},
		{"Valid: Uppercase", "#AABBCC", nil},
		{"Error: Missing hash", "aabbcc", fmt.Errorf("invalid_banner_hex")},
		{"Error: Too short", "#abc", fmt.Errorf("invalid_banner_hex")},
		{"Error: Non-hex characters", "#gghhii", fmt.Errorf("invalid_banner_hex")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.BannerHex(tt.hex)
			checkError(t, err, tt.expectedError)
		})
	}
}

func TestStatusSetting(t *testing.T) {
	for value := 0; value < 4; value++ {
		if err := policy.StatusSetting(value); err != nil {
			t.Errorf("expected value %d to be valid, got %v", value, err)
		}
	}
	if err := policy.StatusSetting(4); err == nil {
		t.Error("expected invalid_status_setting for 4")
	}
}

func TestMessageContent(t *testing.T) {
	if err := policy.MessageContent("hello"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := policy.MessageContent(""); err == nil {
		t.Error("expected invalid_data for empty content")
	}
}

func checkError(t *testing.T, got error, want error) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
		return
	}
	if got == nil {
		t.Errorf("expected %v, got nil", want)
		return
	}
	if got.Error() != want.Error() {
		t.Errorf("expected %v, got %v", want, got)
	}
}
