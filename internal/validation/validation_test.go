package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"Valid password", "Str0ngPassw0rd!", false},
		{"Too short", "Sh0rt!", true},
		{"Too long", strings.Repeat("Aa1!", 40), true},
		{"No uppercase", "weakpassw0rd!", true},
		{"No lowercase", "WEAKPASSW0RD!", true},
		{"No digit", "WeakPassword!", true},
		{"No special character", "WeakPassword1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
	}{
		{"Valid username", "alice_42", false},
		{"Valid with hyphen", "team-alice", false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 31), true},
		{"Illegal characters", "alice!", true},
		{"Leading underscore", "_alice", true},
		{"Trailing hyphen", "alice-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		expectError bool
	}{
		{"Valid email", "alice@example.com", false},
		{"Valid with plus tag", "alice+tag@example.co.uk", false},
		{"Missing domain", "alice@", true},
		{"Missing at", "alice.example.com", true},
		{"Spaces", "alice @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmoji(t *testing.T) {
	assert.NoError(t, ValidateEmoji("👍"))
	assert.NoError(t, ValidateEmoji("❤️"))
	assert.Error(t, ValidateEmoji(""))
	assert.Error(t, ValidateEmoji(strings.Repeat("👍", 10)))
}
