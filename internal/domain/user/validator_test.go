package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	v := NewCredentialsValidator()

	tests := []struct {
		name    string
		login   string
		wantErr bool
	}{
		{"valid simple", "alice", false},
		{"valid with separators", "alice.b_c-d", false},
		{"valid digits", "user42", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", MaxLoginLen+1), true},
		{"space", "al ice", true},
		{"at sign", "alice@example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	v := NewCredentialsValidator()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "passw0rd123", false},
		{"too short", "pw1", true},
		{"letters only", "password", true},
		{"digits only", "12345678", true},
		{"mixed with symbols", "p4ss!word", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
