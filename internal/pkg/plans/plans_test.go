package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

func TestGetPlanFallsBackToStarter(t *testing.T) {
	tests := []struct {
		planID string
		want   string
	}{
		{PlanStarter, PlanStarter},
		{PlanPro, PlanPro},
		{PlanEnterprise, PlanEnterprise},
		{"", PlanStarter},
		{"gold", PlanStarter},
	}
	for _, tt := range tests {
		t.Run(tt.planID, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlan(tt.planID).ID)
		})
	}
}

func TestIsPaid(t *testing.T) {
	assert.False(t, GetPlan(PlanStarter).IsPaid())
	assert.True(t, GetPlan(PlanPro).IsPaid())
	assert.True(t, GetPlan(PlanEnterprise).IsPaid())
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		limit int64
		want  int
	}{
		{"zero of fifty", 0, 50, 0},
		{"half", 25, 50, 50},
		{"full", 50, 50, 100},
		{"over limit not clamped", 75, 50, 150},
		{"rounded", 1, 3, 33},
		{"unlimited", 1000, Unlimited, 0},
		{"zero limit", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, percent(tt.used, tt.limit))
		})
	}
}

func TestComputeUsage(t *testing.T) {
	docs := []models.Document{
		{SizeBytes: 100 * 1024 * 1024},
		{SizeBytes: 150 * 1024 * 1024},
	}
	users := []models.User{{}, {}}

	usage := ComputeUsage(docs, users, GetPlan(PlanStarter))

	assert.Equal(t, int64(2), usage.Documents.Used)
	assert.Equal(t, 4, usage.Documents.Percent)
	assert.Equal(t, int64(250*1024*1024), usage.Storage.Used)
	assert.Equal(t, 50, usage.Storage.Percent)
	assert.Equal(t, 200, usage.Users.Percent)
	assert.Equal(t, "250 MB", usage.StorageFormatted)
}

func newTestChecker(t *testing.T) (*Checker, *repository.Repositories) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	repos := repository.NewRepositories(st)
	return NewChecker(repos.Subscription, repos.Document, repos.User), repos
}

func seedDocs(t *testing.T, repos *repository.Repositories, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repos.Document.Create(&models.Document{
			ID:       string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Title:    "doc",
			Category: "Rapports",
			Status:   models.DOCUMENT_STATUS_DRAFT,
		}))
	}
}

func TestCheckDocumentLimitWithoutSubscriptionUsesStarter(t *testing.T) {
	checker, repos := newTestChecker(t)
	seedDocs(t, repos, 49)

	check, err := checker.CheckDocumentLimit("user-1")
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, PlanStarter, check.PlanID)
}

func TestCheckDocumentLimitDeniesAtCap(t *testing.T) {
	checker, repos := newTestChecker(t)
	seedDocs(t, repos, 50)

	check, err := checker.CheckDocumentLimit("user-1")
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Contains(t, check.Reason, "Limite de 50 documents")
}

func TestCheckDocumentLimitUnlimitedPlan(t *testing.T) {
	checker, repos := newTestChecker(t)
	require.NoError(t, repos.Subscription.Create(&models.Subscription{
		ID:     "sub-1",
		UserID: "user-1",
		PlanID: PlanPro,
		Status: models.SubscriptionStatusActive,
	}))
	seedDocs(t, repos, 60)

	check, err := checker.CheckDocumentLimit("user-1")
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, PlanPro, check.PlanID)
}

func TestCheckStorageLimit(t *testing.T) {
	checker, repos := newTestChecker(t)
	require.NoError(t, repos.Document.Create(&models.Document{
		ID:        "d1",
		Title:     "gros fichier",
		Category:  "Rapports",
		Status:    models.DOCUMENT_STATUS_ARCHIVED,
		SizeBytes: 400 * 1024 * 1024,
	}))

	check, err := checker.CheckStorageLimit("user-1", 50*1024*1024)
	require.NoError(t, err)
	assert.True(t, check.Allowed)

	check, err = checker.CheckStorageLimit("user-1", 200*1024*1024)
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Contains(t, check.Reason, "Limite de stockage")
}

func TestCheckUserLimitStarterSingleSeat(t *testing.T) {
	checker, repos := newTestChecker(t)
	user, err := models.CreateUser("Solo", "solo@entreprise.fr", "secret123", models.ROLE_ADMIN)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(user))

	check, err := checker.CheckUserLimit(user.ID)
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Contains(t, check.Reason, "Limite de 1 utilisateur")
}
