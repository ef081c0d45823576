package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return repository.NewRepositories(st)
}

func TestEnsureSeededPopulatesEmptyStore(t *testing.T) {
	repos := newTestRepos(t)

	seeded, err := EnsureSeeded(repos)
	require.NoError(t, err)
	assert.True(t, seeded)

	admin, err := repos.User.GetByEmail("admin@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.ROLE_ADMIN, admin.Role)
	assert.True(t, admin.CheckPassword("admin123"))

	cats, err := repos.Category.List()
	require.NoError(t, err)
	assert.Len(t, cats, 5)

	docs, err := repos.Document.List()
	require.NoError(t, err)
	assert.Len(t, docs, 12)

	acts, err := repos.Activity.List()
	require.NoError(t, err)
	require.NotEmpty(t, acts)
	assert.Equal(t, "Connexion", acts[0].Action)

	notifs, err := repos.Notification.ListByUser(admin.ID)
	require.NoError(t, err)
	assert.Len(t, notifs, 5)

	sub, err := repos.Subscription.GetByUserID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.PlanStarter, sub.PlanID)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	repos := newTestRepos(t)

	seeded, err := EnsureSeeded(repos)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = EnsureSeeded(repos)
	require.NoError(t, err)
	assert.False(t, seeded)

	users, err := repos.User.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestEnsureSeededSkipsNonEmptyStore(t *testing.T) {
	repos := newTestRepos(t)
	user, err := models.CreateUser("Existant", "deja@entreprise.fr", "secret123", models.ROLE_USER)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(user))

	seeded, err := EnsureSeeded(repos)
	require.NoError(t, err)
	assert.False(t, seeded)

	_, err = repos.User.GetByEmail("admin@entreprise.fr")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
