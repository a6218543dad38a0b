package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/campus_market/internal/models"
)

func newAuthEnv(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          newTestRepo(t),
		Events:        &eventRecorder{},
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, "")
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DefaultsNameToUsername(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	user, err := svc.Register(context.Background(), "alex", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "alex", user.Name)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken", "secret", "First")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "taken", "other", "Second")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "sam", "hunter2", "Sam")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "sam", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.RefreshExp.After(result.AccessExp))

	token, err := jwt.Parse(result.AccessToken, func(j *jwt.Token) (interface{}, error) {
		return svc.JWTSecret, nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.ID.String(), claims["sub"])
	assert.Equal(t, "user", claims["role"])

	// The refresh token was persisted for rotation.
	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.Where("token = ?", result.RefreshToken).First(&stored).Error)
	assert.Equal(t, registered.ID, stored.UserID)
	assert.False(t, stored.Revoked)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sam", "hunter2", "Sam")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "sam", "wrong")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Login(ctx, "nobody", "hunter2")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	t.Parallel()

	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sam", "hunter2", "Sam")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "sam", "hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RefreshToken))

	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.Where("token = ?", result.RefreshToken).First(&stored).Error)
	assert.True(t, stored.Revoked)

	// A revoked token no longer validates.
	_, err = ValidateRefresh(ctx, result.RefreshToken, svc.RefreshSecret, svc.Repo)
	require.Error(t, err)
}
