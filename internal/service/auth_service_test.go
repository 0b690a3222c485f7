package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *mockAccountRepo) {
	t.Helper()
	repo := newMockAccountRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.accounts["a1"] = &models.Account{ID: "a1", Username: "jdoe", PasswordHash: string(hash), StudentID: strPtr("s1")}
	svc := NewAuthService(repo, nil, nil, AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "eschool-test"})
	return svc, repo
}

func TestAuthServiceLoginIssuesStudentToken(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "JDOE", Password: "secret1"}, models.Actor{IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.Account.Role)
	assert.Equal(t, "s1", resp.Account.ProfileID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.AccountID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "s1", claims.ProfileID)
	require.Len(t, repo.audits, 1)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jdoe", Password: "wrong"}, models.Actor{})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "secret1"}, models.Actor{})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceValidateTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newAuthFixture(t)
	other := NewAuthService(newMockAccountRepo(), nil, nil, AuthConfig{AccessTokenSecret: "other"})
	otherRepo := other.repo.(*mockAccountRepo)
	otherRepo.accounts["x"] = &models.Account{ID: "x", Username: "x"}
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	otherRepo.accounts["x"].PasswordHash = string(hash)

	resp, err := other.Login(context.Background(), models.LoginRequest{Username: "x", Password: "pw"}, models.Actor{})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
