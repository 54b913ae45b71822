package models

// User identifies the account a transactional email is addressed to.
// Accounts themselves live in the auth core; this struct only carries what
// email composition needs.
type User struct {
	// ID is the auth core's user identifier.
	ID string `json:"id"`

	// Email is the address the message is delivered to.
	Email string `json:"email"`
}
