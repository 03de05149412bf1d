package domain

// RoleAdmin is the only role the API issues tokens for.
const RoleAdmin = "admin"

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminGoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}
