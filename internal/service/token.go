// File: internal/service/token.go
package service

import (
	"errors"
	"time"

	"mood-journal/internal/apperr"
	"mood-journal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims 定義 JWT 負載內容
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer 以 HS256 簽發與驗證 session token
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue 依使用者資訊產生 JWT，jti 隨機使同一秒內簽發的 token 也不同
func (t *TokenIssuer) Issue(u *model.User) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("jwt secret not set")
	}
	now := t.now()
	claims := Claims{
		ID:    u.ID,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify 驗證簽章與效期，失敗一律回傳 auth 錯誤
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, apperr.AuthWrap("Invalid token", err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, apperr.Auth("Invalid token")
	}
	return claims, nil
}
