package request

// LoginRequest arrives either as form fields or as a JSON body.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
