package models

// User maps to the users table.
type User struct {
	UserID         string `json:"userID"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatarURL"`
	Bio            string `json:"bio"`
	PasswordHash   string `json:"-"`
	AuthProvider   string `json:"authProvider"`
	ProviderUserID string `json:"-"`
	AuditFields
}
