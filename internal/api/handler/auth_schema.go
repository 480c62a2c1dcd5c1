package handler

// registerRequest is the payload for POST /api/v1/auth/register.
//
// Role is honoured as sent, matching the current schema: a client may
// register itself as vendor or admin. Whether registration should force
// customer and gate elevation behind an admin flow is an open product
// decision; until it is made, only unknown role values are rejected.
type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=customer vendor admin"`
	Phone    string `json:"phone"     validate:"omitempty,max=20"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// tokenResponse is returned by login and refresh.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
}
