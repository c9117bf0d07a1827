// File: internal/dto/google_login_request.go
package dto

// GoogleLoginRequest credential 為 Google Identity Services 取得的 ID token
// swagger:model dto.GoogleLoginRequest
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required" example:"eyJhbGciOiJSUzI1NiIs..."`
}
