package user

import "time"

// User represents a registered account.
type User struct {
	ID        string    // ID is the opaque unique identifier assigned on creation
	Name      string    // Name is the full name of the user
	Email     string    // Email is the unique, lowercased email address
	Password  string    // Password holds only the bcrypt hash, never plaintext
	PhoneNo   string    // PhoneNo is the user's phone number
	CreatedAt time.Time // CreatedAt is set when the account is registered
}
