// File: internal/dto/signup_request.go
package dto

// swagger:model dto.SignupRequest
type SignupRequest struct {
	Name     string `json:"name" validate:"required" example:"Ana"`
	Email    string `json:"email" validate:"required" example:"ana@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"Secret123!"`
}
