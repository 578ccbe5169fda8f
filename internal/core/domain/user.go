package domain

import "time"

// Role is an organizational role. The five stage roles double as workflow
// authorization: a transition decision is only accepted from a user whose
// role matches the workflow's current stage.
type Role string

const (
	RoleFieldOfficer Role = "field_officer"
	RoleManager      Role = "manager"
	RoleDirector     Role = "director"
	RoleChairperson  Role = "chairperson"
	RoleCEO          Role = "ceo"
	RoleAdmin        Role = "admin"
)

// StageFor maps a role to the workflow stage it may decide, when it has one.
func (r Role) StageFor() (Stage, bool) {
	stage := Stage(r)
	if stage.IsValid() {
		return stage, true
	}
	return "", false
}

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (e.g., UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           Role         `json:"role"`
	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"`
	EmailVerified  bool         `json:"emailVerified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// RefreshToken stores the SHA-256 hash of an issued refresh token. The raw
// token never touches the database.
type RefreshToken struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"userID"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	RevokedAt *time.Time
}
