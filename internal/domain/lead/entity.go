package lead

import "time"

// StatusNew is the status assigned to a lead created without one.
const StatusNew = "New"

// Lead represents a sales lead owned by exactly one user.
// Every read, update, and delete is filtered by ID and UserID together,
// which is the sole authorization mechanism.
type Lead struct {
	ID        string    // ID is the opaque unique identifier
	Name      string    // Name is the lead's contact name
	Email     string    // Email is the lead's contact email
	Phone     string    // Phone is the lead's contact phone
	Status    string    // Status is a free-form pipeline stage, defaulting to "New"
	UserID    string    // UserID references the owning user
	CreatedAt time.Time // CreatedAt orders lead listings, newest first
}
