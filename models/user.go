package models

// User is the identity consumed from the auth provider. The service only
// needs to know who the current owner is; token exchange and refresh happen
// upstream.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
