package service

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/deskboard/internal/db/dbtest"
	"github.com/templui/deskboard/internal/repository"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	database := dbtest.Open(t)
	email := NewEmailService("", "noreply@example.com", "http://localhost", "Deskboard", true)
	return NewAuthService(repository.NewUserRepository(database), email, testSecret, time.Hour, false)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), " Ada ", " Ada@Example.com ", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)

	got, err := svc.Login("ADA@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login("ada@example.com", "wrong-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "ADA@example.com", "another-long-secret")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "ada@example.com", "correct-horse-battery"},
		{"bad email", "Ada", "not-an-email", "correct-horse-battery"},
		{"short password", "Ada", "ada@example.com", "short"},
		{"common password", "Ada", "ada@example.com", "mypassword1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			var invalid *InvalidInputError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct-horse-battery")
	require.NoError(t, err)

	token, expiry, err := svc.GenerateJWT(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(token + "x")
	assert.Error(t, err)
}

func TestAuthenticateRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := newAuthService(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.Authenticate(signed)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err = expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Authenticate(signed)
	assert.Error(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err = noUser.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Authenticate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTCookie(t *testing.T) {
	svc := newAuthService(t)

	rec := httptest.NewRecorder()
	svc.SetJWTCookie(rec, "token", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AuthCookieName, cookies[0].Name)
	assert.Equal(t, "token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	svc.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
