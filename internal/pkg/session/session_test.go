package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	repos := repository.NewRepositories(st)
	return NewService(repos.Session, repos.User), repos
}

func createTestUser(t *testing.T, repos *repository.Repositories) *models.User {
	t.Helper()
	user, err := models.CreateUser("Test", "test@entreprise.fr", "secret123", models.ROLE_USER)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(user))
	return user
}

func TestCreateAndResolve(t *testing.T) {
	svc, repos := newTestService(t)
	user := createTestUser(t, repos)

	token, err := svc.Create(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, ok := svc.ResolveUser(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestResolveEmptyToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, ok := svc.ResolveUser("")
	assert.False(t, ok)
}

func TestResolveUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, ok := svc.ResolveUser("not-a-token")
	assert.False(t, ok)
}

func TestResolveExpiredSession(t *testing.T) {
	svc, repos := newTestService(t)
	user := createTestUser(t, repos)

	require.NoError(t, repos.Session.Create(&models.Session{
		Token:     "expired-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, ok := svc.ResolveUser("expired-token")
	assert.False(t, ok)
}

func TestResolveDeletedUser(t *testing.T) {
	svc, repos := newTestService(t)
	user := createTestUser(t, repos)

	token, err := svc.Create(user.ID)
	require.NoError(t, err)
	require.NoError(t, repos.User.Delete(user.ID))

	_, ok := svc.ResolveUser(token)
	assert.False(t, ok)
}

func TestDestroyIsIdempotent(t *testing.T) {
	svc, repos := newTestService(t)
	user := createTestUser(t, repos)

	token, err := svc.Create(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(token))
	require.NoError(t, svc.Destroy(token))
	require.NoError(t, svc.Destroy("never-existed"))

	_, ok := svc.ResolveUser(token)
	assert.False(t, ok)
}

func TestPurgeExpiredKeepsLiveSessions(t *testing.T) {
	svc, repos := newTestService(t)
	user := createTestUser(t, repos)

	live, err := svc.Create(user.ID)
	require.NoError(t, err)
	require.NoError(t, repos.Session.Create(&models.Session{
		Token:     "stale",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	require.NoError(t, repos.Session.PurgeExpired())

	_, ok := svc.ResolveUser(live)
	assert.True(t, ok)
	_, err = repos.Session.GetByToken("stale")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
