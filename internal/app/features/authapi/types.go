package authapi

// signUpRequest is the body for POST /api/auth/signup.
type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// signInRequest is the body for POST /api/auth/signin.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of an account.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// sessionResponse is the body for GET /api/auth/session.
type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
}
