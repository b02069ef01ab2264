package auth

import (
	"errors"
	"time"

	"github.com/taskhive/taskhive/internal/access"
)

// ErrInvalidCredentials indicates login failure. Deliberately the same
// error for unknown email, wrong password and deactivated accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User represents an authenticated user account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         access.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session records an issued refresh token. The token value itself is
// the session ID; validity is governed by the Redis store, this row is
// the durable record.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
