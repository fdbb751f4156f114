package services

import (
	"context"
	"testing"
	"time"

	"culinary-calc/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	env := newTestEnv(t)

	h1, err := env.auth.HashPassword("pa55word")
	require.NoError(t, err)
	h2, err := env.auth.HashPassword("pa55word")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salt should make hashes differ")
	assert.True(t, env.auth.VerifyPassword("pa55word", h1))
	assert.True(t, env.auth.VerifyPassword("pa55word", h2))
	assert.False(t, env.auth.VerifyPassword("wrong", h1))
	assert.False(t, env.auth.VerifyPassword("pa55word", "not-a-bcrypt-hash"))
	assert.False(t, env.auth.VerifyPassword("pa55word", ""))
}

func TestNewAuthServiceRejectsBadCost(t *testing.T) {
	_, err := NewAuthService(nil, nil, nil, AuthOptions{BcryptCost: 99})
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.auth.CreateUser(ctx, NewUser{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role, "role defaults to user")
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	var stored models.User
	require.NoError(t, env.db.Where("id = ?", u.ID).Take(&stored).Error)
	assert.True(t, env.auth.VerifyPassword("secret123", stored.PasswordHash))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustUser(t, "dup@example.com", "")
	_, err := env.auth.CreateUser(ctx, NewUser{Name: "Other", Email: "dup@example.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := env.auth.AuthenticateUser(ctx, "dup@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Name, got.Name)
}

func TestCreateUserEmailIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	env.mustUser(t, "Chef@example.com", "")

	_, err := env.auth.CreateUser(context.Background(), NewUser{Name: "x", Email: "chef@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestCreateUserInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.CreateUser(context.Background(), NewUser{Name: "x", Email: "x@example.com", Password: "secret123", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, models.ErrInvalidRole)
}

func TestAuthenticateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "bruno@example.com", "")

	got, err := env.auth.AuthenticateUser(ctx, "bruno@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = env.auth.AuthenticateUser(ctx, "bruno@example.com", "wrong-password")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.auth.AuthenticateUser(ctx, "nobody@example.com", "secret123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "carla@example.com", "")

	token, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := env.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)

	var sess models.Session
	require.NoError(t, env.db.Where("token = ?", token).Take(&sess).Error)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), sess.ExpiresAt, time.Minute)

	require.NoError(t, env.auth.DeleteSession(ctx, token))
	got, err = env.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, env.auth.DeleteSession(ctx, token), "second delete is a no-op")
	assert.NoError(t, env.auth.DeleteSession(ctx, ""))
}

func TestValidateSessionExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "dora@example.com", "")

	token, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, env.db.Model(&models.Session{}).Where("token = ?", token).Update("expires_at", past).Error)

	got, err := env.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidateSessionUnknownToken(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.auth.ValidateSession(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.auth.ValidateSession(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateSessionPurgesOnlyExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "eva@example.com", "")
	other := env.mustUser(t, "fabio@example.com", "")

	stale, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)
	live, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)
	otherStale, err := env.auth.CreateSession(ctx, other.ID)
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, env.db.Model(&models.Session{}).Where("token IN ?", []string{stale, otherStale}).Update("expires_at", past).Error)

	fresh, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)

	var tokens []string
	require.NoError(t, env.db.Model(&models.Session{}).Where("user_id = ?", u.ID).Pluck("token", &tokens).Error)
	assert.ElementsMatch(t, []string{live, fresh}, tokens)

	var otherCount int64
	require.NoError(t, env.db.Model(&models.Session{}).Where("user_id = ?", other.ID).Count(&otherCount).Error)
	assert.Equal(t, int64(1), otherCount, "another user's expired rows are untouched")
}

func TestMultipleSessionsPerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "gil@example.com", "")

	a, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)
	b, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	for _, tok := range []string{a, b} {
		got, err := env.auth.ValidateSession(ctx, tok)
		require.NoError(t, err)
		assert.NotNil(t, got)
	}
}

func TestDeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "hugo@example.com", "")
	token, err := env.auth.CreateSession(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, env.admin.SetUserStatus(ctx, u.ID, false))

	got, err := env.auth.AuthenticateUser(ctx, "hugo@example.com", "secret123")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.auth.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var rows int64
	require.NoError(t, env.db.Model(&models.Session{}).Where("token = ?", token).Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "session row is left in place")

	require.NoError(t, env.admin.SetUserStatus(ctx, u.ID, true))
	got, err = env.auth.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, got, "reactivation makes the unexpired session usable again")
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "ines@example.com", "")

	got, err := env.auth.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)

	got, err = env.auth.GetUserByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpass"))
	require.NoError(t, env.auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpass"), "second call is a no-op")
	require.NoError(t, env.auth.EnsureAdmin(ctx, "Root", "", ""), "missing credentials skip seeding")

	u, err := env.auth.AuthenticateUser(ctx, "root@example.com", "rootpass")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
