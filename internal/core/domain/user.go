package domain

// AuthProvider identifies how a user account was established.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a spender/reader identity. Identity itself is established externally
// (password login or Google OAuth); the ledger only ever references the UserID.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Username       string       `json:"username"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	AvatarURL      string       `json:"avatarURL"`
	Bio            string       `json:"bio"`
	PasswordHash   string       `json:"-"` // Empty for OAuth-only users
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // External subject ID for OAuth users
	AuditFields
}
