// File: internal/service/google.go
package service

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var errGoogleNotConfigured = errors.New("GOOGLE_CLIENT_ID not set")

// Google ID token 合法的 iss
var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleIdentity 驗證後取出的身分資料；Email 可能為空
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// idtokenValidate 測試可替換
var idtokenValidate = idtoken.Validate

// IDTokenVerifier 以 Google 公開金鑰驗證簽章、audience 與效期
type IDTokenVerifier struct {
	audience string
}

func NewGoogleVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{audience: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	if v.audience == "" {
		return nil, errGoogleNotConfigured
	}
	payload, err := idtokenValidate(ctx, credential, v.audience)
	if err != nil {
		return nil, err
	}
	if !googleIssuers[payload.Issuer] {
		return nil, fmt.Errorf("unexpected issuer %q", payload.Issuer)
	}
	id := &GoogleIdentity{Subject: payload.Subject}
	if s, ok := payload.Claims["email"].(string); ok {
		id.Email = s
	}
	if s, ok := payload.Claims["name"].(string); ok {
		id.Name = s
	}
	id.EmailVerified = claimTrue(payload.Claims["email_verified"])
	return id, nil
}

// claimTrue email_verified 可能是 bool 或字串 "true"
func claimTrue(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}
