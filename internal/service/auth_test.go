package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookadmin/config"
	"bookadmin/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthServiceImpl, *fakeAuthRepo, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*domain.User{
		"admin@salon.example": {ID: 1, Email: "admin@salon.example", PasswordHash: string(hash), Role: domain.UserRoleAdmin, IsActive: true},
		"gone@salon.example":  {ID: 2, Email: "gone@salon.example", PasswordHash: string(hash), Role: domain.UserRoleManager},
	}}
	sessions := &fakeAuthRepo{sessions: map[string]domain.Session{}}

	svc := NewAuthService(sessions, users, config.JWTConfig{
		SigningKey:      "test-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	}, zap.NewNop())

	return svc, sessions, users
}

func TestAuthLoginAndParse(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{Email: " Admin@Salon.example ", Password: "s3cret-pass"}, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.Len(t, sessions.sessions, 1)

	userID, role, err := svc.ParseToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, domain.UserRoleAdmin, role)
}

func TestAuthLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "admin@salon.example", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@salon.example", Password: "s3cret-pass"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "gone@salon.example", Password: "s3cret-pass"}, "", "")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthParseTokenRejectsForeignKey(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	tokens, err := svc.Login(context.Background(), domain.LoginRequest{Email: "admin@salon.example", Password: "s3cret-pass"}, "", "")
	require.NoError(t, err)

	svc.jwtConfig.SigningKey = "other-key"
	_, _, err = svc.ParseToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthRefreshRotatesSession(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)
	tokens, err := svc.Login(context.Background(), domain.LoginRequest{Email: "admin@salon.example", Password: "s3cret-pass"}, "", "")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken, "", "")
	require.NoError(t, err)

	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)
	assert.Len(t, sessions.sessions, 1)
	_, err = svc.RefreshTokens(context.Background(), tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthRefreshExpired(t *testing.T) {
	svc, sessions, _ := newAuthFixture(t)
	tokens, err := svc.Login(context.Background(), domain.LoginRequest{Email: "admin@salon.example", Password: "s3cret-pass"}, "", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.RefreshTokens(context.Background(), tokens.RefreshToken, "", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, sessions.sessions)
}

func TestAuthLogoutUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	assert.NoError(t, svc.Logout(context.Background(), "missing"))
}

func TestUserCreateHashesPassword(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	svc := NewUserService(users, zap.NewNop())

	_, err := svc.Create(context.Background(), domain.CreateUserDTO{Name: "Desk", Email: "Desk@Salon.example", Password: "long-password", Role: domain.UserRoleManager})
	require.NoError(t, err)

	created := users.users["desk@salon.example"]
	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("long-password")))

	_, err = svc.Create(context.Background(), domain.CreateUserDTO{Name: "Desk", Email: "desk@salon.example", Password: "long-password", Role: domain.UserRoleManager})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
