package service

import (
	"testing"
	"time"

	"eduscore_backend/internal/config"
	"eduscore_backend/internal/model"
	"eduscore_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authFixture(t *testing.T) (*fixture, *AuthService) {
	f := newFixture(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	return f, NewAuthService(f.users, cfg)
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	_, svc := authFixture(t)

	user, err := svc.Register(RegisterReq{
		FirstName: "Ada",
		Email:     "Ada@Example.com",
		Password:  "secret1",
		Role:      "admin", // cannot self-assign
	})
	require.NoError(t, err)

	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)
}

func TestRegisterTeacherRole(t *testing.T) {
	_, svc := authFixture(t)

	user, err := svc.Register(RegisterReq{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "secret1",
		Role:      "teacher",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f, svc := authFixture(t)

	_, err := svc.Register(RegisterReq{
		FirstName: "Copy",
		Email:     f.student.Email,
		Password:  "secret1",
	})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestLogin(t *testing.T) {
	_, svc := authFixture(t)

	_, err := svc.Register(RegisterReq{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "secret1",
	})
	require.NoError(t, err)

	token, err := svc.Login("ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, model.Student, claims.Role)

	_, err = svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
