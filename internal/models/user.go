package models

import (
	"database/sql"
	"time"
)

// User represents a user row. ProviderUserID is only set for accounts created
// through an external identity provider.
type User struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Role           string         `db:"role"`
	PasswordHash   string         `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	EmailVerified  bool           `db:"email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// RefreshToken stores the SHA-256 hash of an issued refresh token.
type RefreshToken struct {
	TokenHash string       `db:"token_hash"`
	UserID    string       `db:"user_id"`
	ExpiresAt time.Time    `db:"expires_at"`
	CreatedAt time.Time    `db:"created_at"`
	RevokedAt sql.NullTime `db:"revoked_at"`
}
