package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/infrastructure/persistence"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func fileStore(t *testing.T) *persistence.FileStore {
	t.Helper()
	return persistence.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    "u1",
		"email": "a@b.c",
		"role":  "customer",
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginThenCurrent(t *testing.T) {
	store := NewStore(fileStore(t), testLogger())

	require.NoError(t, store.Login(context.Background(), "tok", "admin", "u1", "a@b.c"))

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.True(t, sess.IsAdmin())

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestLogoutClearsEverythingAndRunsHooks(t *testing.T) {
	store := NewStore(fileStore(t), testLogger())
	hookRuns := 0
	store.OnLogout(func() { hookRuns++ })

	require.NoError(t, store.Login(context.Background(), "tok", "customer", "u1", "a@b.c"))
	store.Logout(context.Background())

	_, ok := store.Current()
	assert.False(t, ok)
	_, ok = store.Token()
	assert.False(t, ok)
	assert.Equal(t, 1, hookRuns)

	// Repeated logout (e.g. a burst of 401s) must not re-run hooks
	store.Logout(context.Background())
	assert.Equal(t, 1, hookRuns)
}

func TestSessionSurvivesRestart(t *testing.T) {
	persist := fileStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))

	first := NewStore(persist, testLogger())
	require.NoError(t, first.Login(context.Background(), token, "customer", "u1", "a@b.c"))

	second := NewStore(persist, testLogger())
	require.NoError(t, second.Restore(context.Background()))

	sess, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "a@b.c", sess.Email)
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	persist := fileStore(t)
	token := signedToken(t, time.Now().Add(-time.Hour))

	first := NewStore(persist, testLogger())
	require.NoError(t, first.Login(context.Background(), token, "customer", "u1", "a@b.c"))

	second := NewStore(persist, testLogger())
	require.NoError(t, second.Restore(context.Background()))

	_, ok := second.Current()
	assert.False(t, ok)

	// The expired record is wiped, not just skipped
	_, exists, err := persist.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRestoreWithNothingPersisted(t *testing.T) {
	store := NewStore(fileStore(t), testLogger())
	require.NoError(t, store.Restore(context.Background()))
	_, ok := store.Current()
	assert.False(t, ok)
}
