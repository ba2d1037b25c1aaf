package auth

// RegisterRequest represents the request payload for registering a new user.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	PhoneNo  string `validate:"required"`
}

// RegisterResponse is the public-safe projection returned after registration.
// The password hash is never exposed.
type RegisterResponse struct {
	ID    string
	Name  string
	Email string
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResponse carries the issued token and a public profile projection.
type LoginResponse struct {
	Token string
	User  Profile
}

// Profile is the public projection of a user returned by login.
type Profile struct {
	ID      string
	Name    string
	Email   string
	PhoneNo string
}
