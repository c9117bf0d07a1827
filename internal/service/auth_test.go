package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mood-journal/internal/apperr"
	"mood-journal/internal/model"
	"mood-journal/internal/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T, st *memStore, g GoogleVerifier) (*AuthService, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewAuthService(AuthConfig{
		Users:      st,
		Tokens:     NewTokenIssuer("test-secret", time.Hour),
		Google:     g,
		BcryptCost: bcrypt.MinCost,
		Metrics:    rec,
	}), rec
}

func TestSignupAndLogin(t *testing.T) {
	st := newMemStore()
	svc, rec := newAuth(t, st, nil)
	ctx := context.Background()

	signupTok, err := svc.Signup(ctx, "Ana", " Ana@X.com ", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, signupTok)

	u, err := st.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ana", u.Name)
	require.True(t, u.HasPassword())
	require.NotEqual(t, "pw1", *u.PasswordHash)

	loginTok, err := svc.Login(ctx, "ana@x.com", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, signupTok, loginTok)

	for _, tok := range []string{signupTok, loginTok} {
		claims, err := svc.VerifyToken(tok)
		require.NoError(t, err)
		require.Equal(t, u.ID, claims.ID)
		require.Equal(t, "ana@x.com", claims.Email)
	}
	require.Equal(t, []string{"signup:ok", "login:ok"}, rec.auth)
}

func TestSignupMissingFields(t *testing.T) {
	st := newMemStore()
	svc, _ := newAuth(t, st, nil)
	for _, c := range [][3]string{{"", "a@x.com", "pw"}, {"Ana", " ", "pw"}, {"Ana", "a@x.com", ""}} {
		_, err := svc.Signup(context.Background(), c[0], c[1], c[2])
		require.ErrorIs(t, err, apperr.ErrValidation)
		require.Equal(t, "Missing fields", apperr.PublicMessage(err))
	}
	require.Zero(t, st.createCalls)
}

func TestSignupPasswordTooLong(t *testing.T) {
	st := newMemStore()
	svc, rec := newAuth(t, st, nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ana", "ana@x.com", strings.Repeat("a", 73))
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, "Password must be at most 72 bytes", apperr.PublicMessage(err))
	require.Equal(t, 400, apperr.Status(err))

	// 36 個 2-byte 字元剛好 72 bytes；37 個超過
	_, err = svc.Signup(ctx, "Ana", "ana@x.com", strings.Repeat("é", 37))
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Zero(t, st.createCalls)

	_, err = svc.Signup(ctx, "Ana", "ana@x.com", strings.Repeat("é", 36))
	require.NoError(t, err)
	require.Equal(t, []string{"signup:validation", "signup:validation", "signup:ok"}, rec.auth)
}

func TestSignupDuplicate(t *testing.T) {
	st := newMemStore()
	svc, rec := newAuth(t, st, nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Other", "ANA@x.com", "pw2")
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, "Email already used", apperr.PublicMessage(err))
	require.Equal(t, 1, st.userCount())
	require.Equal(t, "signup:conflict", rec.auth[1])
}

func TestSignupRaceOnUniqueConstraint(t *testing.T) {
	st := newMemStore()
	st.createUserErr = store.ErrDuplicateEmail
	svc, _ := newAuth(t, st, nil)
	_, err := svc.Signup(context.Background(), "Ana", "ana@x.com", "pw")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSignupStoreFailure(t *testing.T) {
	st := newMemStore()
	st.createUserErr = errBoom
	svc, _ := newAuth(t, st, nil)
	_, err := svc.Signup(context.Background(), "Ana", "ana@x.com", "pw")
	require.ErrorIs(t, err, apperr.ErrInternal)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, "Server error", apperr.PublicMessage(err))
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	st := newMemStore()
	svc, _ := newAuth(t, st, nil)
	ctx := context.Background()
	_, err := svc.Signup(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)
	gid := "g-1"
	st.users["bo@x.com"] = &model.User{ID: "u99", Name: "Bo", Email: "bo@x.com", GoogleID: &gid}

	var msgs []string
	for _, c := range [][2]string{{"nobody@x.com", "pw1"}, {"bo@x.com", "pw1"}, {"ana@x.com", "wrong"}} {
		_, err := svc.Login(ctx, c[0], c[1])
		require.ErrorIs(t, err, apperr.ErrAuth)
		msgs = append(msgs, err.Error())
	}
	require.Equal(t, []string{"Invalid credentials", "Invalid credentials", "Invalid credentials"}, msgs)

	_, err = svc.Login(ctx, "", "pw1")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGoogleLoginValidation(t *testing.T) {
	st := newMemStore()
	svc, _ := newAuth(t, st, &fakeGoogle{err: errors.New("bad signature")})
	ctx := context.Background()

	_, err := svc.GoogleLogin(ctx, "  ")
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, "Missing idToken", apperr.PublicMessage(err))

	_, err = svc.GoogleLogin(ctx, "cred")
	require.ErrorIs(t, err, apperr.ErrAuth)
	require.Equal(t, "Google authentication failed", apperr.PublicMessage(err))

	unconfigured, _ := newAuth(t, st, nil)
	_, err = unconfigured.GoogleLogin(ctx, "cred")
	require.ErrorIs(t, err, apperr.ErrAuth)
	require.Zero(t, st.createCalls)
}

func TestGoogleLoginWithoutEmail(t *testing.T) {
	st := newMemStore()
	svc, _ := newAuth(t, st, &fakeGoogle{id: &GoogleIdentity{Subject: "s1"}})
	_, err := svc.GoogleLogin(context.Background(), "cred")
	require.ErrorIs(t, err, apperr.ErrAuth)
	require.Equal(t, "Invalid Google token", apperr.PublicMessage(err))
	require.Zero(t, st.userCount())
	require.Zero(t, st.createCalls)
}

func TestGoogleLoginCreatesUser(t *testing.T) {
	st := newMemStore()
	svc, _ := newAuth(t, st, &fakeGoogle{id: &GoogleIdentity{Subject: "s1", Email: "New@x.com"}})
	ctx := context.Background()

	tok, err := svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)
	u, err := st.GetUserByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	require.Equal(t, "Google User", u.Name)
	require.Equal(t, "s1", *u.GoogleID)
	require.False(t, u.HasPassword())

	claims, err := svc.VerifyToken(tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.ID)

	// 第二次登入不重複建立
	_, err = svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)
	require.Equal(t, 1, st.userCount())
}

func TestGoogleLoginLinksPasswordAccount(t *testing.T) {
	st := newMemStore()
	g := &fakeGoogle{id: &GoogleIdentity{Subject: "s1", Email: "ana@x.com", EmailVerified: true, Name: "Ana G"}}
	svc, _ := newAuth(t, st, g)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)
	before, _ := st.GetUserByEmail(ctx, "ana@x.com")

	tok, err := svc.GoogleLogin(ctx, "cred")
	require.NoError(t, err)

	after, err := st.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, "Ana", after.Name)
	require.Equal(t, "s1", *after.GoogleID)
	require.Equal(t, *before.PasswordHash, *after.PasswordHash)
	require.Equal(t, 1, st.userCount())

	claims, err := svc.VerifyToken(tok)
	require.NoError(t, err)
	require.Equal(t, before.ID, claims.ID)

	_, err = svc.Login(ctx, "ana@x.com", "pw1")
	require.NoError(t, err)
}

func TestGoogleLoginUnverifiedEmailDoesNotLink(t *testing.T) {
	st := newMemStore()
	svc, rec := newAuth(t, st, &fakeGoogle{id: &GoogleIdentity{Subject: "s1", Email: "ana@x.com"}})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.GoogleLogin(ctx, "cred")
	require.ErrorIs(t, err, apperr.ErrAuth)
	require.ErrorIs(t, err, errEmailUnverified)
	require.Equal(t, "Google authentication failed", apperr.PublicMessage(err))

	u, err := st.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.False(t, u.HasGoogle())
	require.Equal(t, "google:auth", rec.auth[len(rec.auth)-1])
}

func TestGoogleLoginUnverifiedOtherSubjectRejected(t *testing.T) {
	st := newMemStore()
	gid := "s1"
	st.users["ana@x.com"] = &model.User{ID: "u7", Name: "Ana", Email: "ana@x.com", GoogleID: &gid}
	svc, _ := newAuth(t, st, &fakeGoogle{id: &GoogleIdentity{Subject: "s2", Email: "ana@x.com"}})

	_, err := svc.GoogleLogin(context.Background(), "cred")
	require.ErrorIs(t, err, errEmailUnverified)
}

func TestGoogleLoginConcurrentCreate(t *testing.T) {
	st := newMemStore()
	gid := "s1"
	st.users["ana@x.com"] = &model.User{ID: "u7", Name: "Ana", Email: "ana@x.com", GoogleID: &gid}
	st.createUserErr = store.ErrDuplicateEmail

	svc, _ := newAuth(t, st, &fakeGoogle{id: &GoogleIdentity{Subject: "s1", Email: "ana@x.com"}})
	u, err := svc.createGoogleUser(context.Background(), "ana@x.com", &GoogleIdentity{Subject: "s1"})
	require.NoError(t, err)
	require.Equal(t, "u7", u.ID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuth(t, newMemStore(), nil)
	_, err := svc.VerifyToken("not-a-token")
	require.ErrorIs(t, err, apperr.ErrAuth)
}
