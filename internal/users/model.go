package users

import "time"

// User is an account in the system. PasswordHash is empty for accounts
// created via Google sign-in that never set a password.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	GeminiAPIKey string
	CreatedAt    time.Time
}

// HasGeminiKey reports whether the user stored an API credential for
// external analysis.
func (u User) HasGeminiKey() bool {
	return u.GeminiAPIKey != ""
}
