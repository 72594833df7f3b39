package model

import "time"

// User is a persisted account. Password holds an encoded Argon2id hash.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Completion records the single finished assessment for an email.
type Completion struct {
	Completed bool      `json:"completed"`
	Score     int       `json:"score"`
	Date      time.Time `json:"date"`
}

// SignUpRequest represents an account creation request.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
}

// LoginResult is what the auth flow learns about a successfully identified user.
type LoginResult struct {
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Completion  *Completion `json:"completion,omitempty"`
}

// PasswordChange represents a profile password change.
type PasswordChange struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
	Confirm string `json:"confirm_password"`
}

// Profile is the editable account data shown on the profile screen.
type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Username string `json:"username,omitempty"`
}

// PendingCode is an issued one-time verification code awaiting use.
type PendingCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
