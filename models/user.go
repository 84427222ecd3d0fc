package models

// Credentials carries the email/password pair for signup and login requests.
// The password is never persisted on the client.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the authenticated user's account information as returned by the
// server. Fields beyond name and email are ignored.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
