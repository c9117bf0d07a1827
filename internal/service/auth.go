// File: internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mood-journal/internal/apperr"
	"mood-journal/internal/logging"
	"mood-journal/internal/model"
	"mood-journal/internal/store"

	"github.com/sirupsen/logrus"
)

const defaultGoogleName = "Google User"

var errEmailUnverified = errors.New("google email not verified")

const (
	msgMissingFields      = "Missing fields"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
	msgEmailUsed          = "Email already used"
	msgInvalidCredentials = "Invalid credentials"
	msgMissingIDToken     = "Missing idToken"
	msgGoogleFailed       = "Google authentication failed"
	msgInvalidGoogleToken = "Invalid Google token"
)

// UserStore 帳號儲存，Postgres 與 MongoDB 各有實作
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	LinkGoogleID(ctx context.Context, userID, googleID string) error
}

// AuthRecorder 記錄登入結果，*metrics.Metrics 實作
type AuthRecorder interface {
	RecordAuth(method, result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAuth(string, string) {}
func (nopRecorder) RecordCacheLookup(string) {}

type AuthConfig struct {
	Users      UserStore
	Tokens     *TokenIssuer
	Google     GoogleVerifier
	BcryptCost int
	Metrics    AuthRecorder
	Logger     logrus.FieldLogger
}

type AuthService struct {
	users      UserStore
	tokens     *TokenIssuer
	google     GoogleVerifier
	bcryptCost int
	metrics    AuthRecorder
	log        logrus.FieldLogger
}

func NewAuthService(cfg AuthConfig) *AuthService {
	s := &AuthService{
		users:      cfg.Users,
		tokens:     cfg.Tokens,
		google:     cfg.Google,
		bcryptCost: cfg.BcryptCost,
		metrics:    cfg.Metrics,
		log:        cfg.Logger,
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (s *AuthService) record(method string, err error) {
	result := "ok"
	if err != nil {
		result = apperr.KindOf(err).String()
	}
	s.metrics.RecordAuth(method, result)
}

// Signup 建立密碼帳號並回傳 token
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (token string, err error) {
	defer func() { s.record("signup", err) }()

	if isBlank(name) || isBlank(email) || isBlank(password) {
		return "", apperr.Validation(msgMissingFields)
	}
	if len(password) > MaxPasswordBytes {
		return "", apperr.Validation(msgPasswordTooLong)
	}
	email = normalizeEmail(email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", apperr.Conflict(msgEmailUsed)
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", apperr.Internal(fmt.Errorf("signup lookup: %w", err))
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	u := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// 併發註冊同一 email 時由 unique 約束擋下
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", apperr.Conflict(msgEmailUsed)
		}
		return "", apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	s.log.WithField("user_id", u.ID).Info("user signed up")
	return s.issue(u)
}

// Login 帳號不存在、僅 Google 帳號、密碼錯誤一律回傳相同錯誤
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, err error) {
	defer func() { s.record("login", err) }()

	if isBlank(email) || isBlank(password) {
		return "", apperr.Validation(msgMissingFields)
	}
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", apperr.Auth(msgInvalidCredentials)
	}
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("login lookup: %w", err))
	}
	if !u.HasPassword() {
		return "", apperr.Auth(msgInvalidCredentials)
	}
	if err := ComparePassword(*u.PasswordHash, password); err != nil {
		return "", apperr.Auth(msgInvalidCredentials)
	}
	return s.issue(u)
}

// GoogleLogin 驗證 Google ID token；新 email 建立帳號，既有帳號未綁定則綁定 googleId
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (token string, err error) {
	defer func() { s.record("google", err) }()

	if isBlank(credential) {
		return "", apperr.Validation(msgMissingIDToken)
	}
	if s.google == nil {
		return "", apperr.AuthWrap(msgGoogleFailed, errGoogleNotConfigured)
	}
	id, err := s.google.Verify(ctx, strings.TrimSpace(credential))
	if err != nil {
		s.log.WithError(err).Warn("google token rejected")
		return "", apperr.AuthWrap(msgGoogleFailed, err)
	}
	if isBlank(id.Email) {
		return "", apperr.Auth(msgInvalidGoogleToken)
	}
	email := normalizeEmail(id.Email)

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		u, err = s.createGoogleUser(ctx, email, id)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", apperr.Internal(fmt.Errorf("google lookup: %w", err))
	}
	// 未驗證的 email 只能登入已綁定同一 subject 的帳號
	if !id.EmailVerified && !u.HasGoogleSubject(id.Subject) {
		s.log.WithField("user_id", u.ID).Warn("google email not verified")
		return "", apperr.AuthWrap(msgGoogleFailed, errEmailUnverified)
	}

	if !u.HasGoogle() {
		if err := s.users.LinkGoogleID(ctx, u.ID, id.Subject); err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", apperr.Internal(fmt.Errorf("link google id: %w", err))
		}
		sub := id.Subject
		u.GoogleID = &sub
		s.log.WithField("user_id", u.ID).Info("google identity linked")
	}
	return s.issue(u)
}

func (s *AuthService) createGoogleUser(ctx context.Context, email string, id *GoogleIdentity) (*model.User, error) {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = defaultGoogleName
	}
	sub := id.Subject
	u := &model.User{Name: name, Email: email, GoogleID: &sub}
	err := s.users.CreateUser(ctx, u)
	if errors.Is(err, store.ErrDuplicateEmail) {
		// 同一 email 併發登入，改讀已建立的帳號
		existing, gerr := s.users.GetUserByEmail(ctx, email)
		if gerr != nil {
			return nil, apperr.Internal(fmt.Errorf("google reload: %w", gerr))
		}
		return existing, nil
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("create google user: %w", err))
	}
	s.log.WithField("user_id", u.ID).Info("user created from google")
	return u, nil
}

func (s *AuthService) issue(u *model.User) (string, error) {
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return tok, nil
}

// VerifyToken 解析 bearer token
func (s *AuthService) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
