package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearguard/maintenance-service/internal/auth"
	"github.com/gearguard/maintenance-service/internal/config"
	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/repository"
	"github.com/gearguard/maintenance-service/internal/service"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

type fakeSessionRepo struct {
	sessions map[string]int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]int64)}
}

func (f *fakeSessionRepo) Set(_ context.Context, sessionID string, userID int64, _ time.Duration) error {
	f.sessions[sessionID] = userID
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, sessionID string) (int64, error) {
	userID, ok := f.sessions[sessionID]
	if !ok {
		return 0, repository.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionRepo) Clear(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newAuthFixture(t *testing.T) (*service.AuthService, *fakeSessionRepo) {
	t.Helper()
	hash, err := auth.HashPassword("correct horse", 4)
	require.NoError(t, err)

	users := newFakeUserRepo()
	users.add(domain.User{ID: 7, Name: "Max Manager", Email: "manager@example.com", PasswordHash: hash, Role: domain.RoleManager})

	sessions := newFakeSessionRepo()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	return service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, SessionRepo: sessions}), sessions
}

func TestLoginIssuesTokenBackedBySession(t *testing.T) {
	svc, sessions := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "manager@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(7), result.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	userID, err := sessions.Get(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "manager@example.com", "wrong password")
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	// Unknown accounts get the same answer as bad passwords.
	_, err = svc.Login(ctx, "ghost@example.com", "correct horse")
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, sessions := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "manager@example.com", "correct horse")
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.SessionID))
	_, err = sessions.Get(ctx, claims.SessionID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
