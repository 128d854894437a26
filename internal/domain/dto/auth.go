package dto

// LoginRequest represents the JSON request body for the admin login endpoint.
//
// @Description Request to authenticate the store administrator
// @Example {"username": "admin", "password": "correct horse"}
type LoginRequest struct {
	// Username is the administrator name.
	Username string `json:"username" binding:"required" example:"admin"`
	// Password is the administrator password.
	Password string `json:"password" binding:"required" example:"correct horse"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with a JWT access token
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"28800"`
	// Subject is the authenticated administrator.
	Subject string `json:"subject" example:"admin"`
} // @name LoginResponse

// Claims are the application claims carried by an admin token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}
