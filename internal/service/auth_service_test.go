package service

import (
	"fmt"
	"testing"
	"time"

	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(h *serviceHarness) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-0123456789abcdefghijklm",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(h.userRepo, h.contentRepo, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newServiceHarness(t)
	auth := newAuthService(h)
	grade := h.createGradeLevel(t)

	email := fmt.Sprintf("karim%d@example.com", grade.ID)
	user, err := auth.Register(&RegisterRequest{
		Name:         "Karim",
		Email:        email,
		Password:     "secret123",
		GradeLevelID: grade.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, 0, user.XPPoints)
	assert.Equal(t, 1, user.CurrentLevel)
	assert.Equal(t, "fr", user.Language)
	assert.NotEqual(t, "secret123", user.Password)
	assert.False(t, user.LastLogin.IsZero())

	token, logged, err := auth.Login(email, "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret-0123456789abcdefghijklm")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, grade.ID, claims.GradeLevelID)

	_, _, err = auth.Login(email, "wrong-password")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newServiceHarness(t)
	auth := newAuthService(h)
	grade := h.createGradeLevel(t)
	existing := h.createStudent(t, grade.ID, 0)

	_, err := auth.Register(&RegisterRequest{
		Name:         "Autre",
		Email:        existing.Email,
		Password:     "secret123",
		GradeLevelID: grade.ID,
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterUnknownGradeLevel(t *testing.T) {
	h := newServiceHarness(t)
	auth := newAuthService(h)

	_, err := auth.Register(&RegisterRequest{
		Name:         "Sans Niveau",
		Email:        "sans.niveau@example.com",
		Password:     "secret123",
		GradeLevelID: 9999,
	})
	assert.ErrorIs(t, err, util.ErrGradeLevelUnknown)
}

func TestGetProfileUnknownUser(t *testing.T) {
	h := newServiceHarness(t)
	auth := newAuthService(h)

	_, err := auth.GetProfile(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
