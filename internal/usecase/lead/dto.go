package lead

// CreateLeadRequest represents the payload for creating a lead.
type CreateLeadRequest struct {
	Name   string
	Email  string
	Phone  string
	Status string
}

// UpdateLeadRequest represents a partial update. Nil pointers mean the field
// was absent from the request and must be left untouched.
type UpdateLeadRequest struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *string
}
