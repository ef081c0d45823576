package statistics

import (
	"fmt"
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
	return NewService(repos.Document, repos.Category), repos
}

func TestDashboardEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	stats, err := svc.Dashboard()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)
	assert.Zero(t, stats.TotalCategories)
	assert.Equal(t, "0 B", stats.TotalStorageFormatted)
	assert.Empty(t, stats.RecentDocuments)
	assert.Equal(t, 0, stats.StatusCounts[models.DOCUMENT_STATUS_ARCHIVED])
}

func TestDashboardAggregates(t *testing.T) {
	svc, repos := newTestService(t)
	require.NoError(t, repos.Category.Create(&models.Category{ID: "c1", Name: "Rapports"}))
	require.NoError(t, repos.Category.Create(&models.Category{ID: "c2", Name: "Factures"}))

	base := time.Now()
	for i := 0; i < 7; i++ {
		status := models.DOCUMENT_STATUS_ARCHIVED
		category := "Rapports"
		if i%2 == 1 {
			status = models.DOCUMENT_STATUS_PROCESSING
			category = "Factures"
		}
		require.NoError(t, repos.Document.Create(&models.Document{
			ID:        fmt.Sprintf("d%d", i),
			Title:     fmt.Sprintf("Document %d", i),
			Category:  category,
			Status:    status,
			SizeBytes: 1024,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	stats, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalDocuments)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, int64(7*1024), stats.TotalStorageBytes)
	assert.Equal(t, "7 KB", stats.TotalStorageFormatted)
	assert.Equal(t, 4, stats.StatusCounts[models.DOCUMENT_STATUS_ARCHIVED])
	assert.Equal(t, 3, stats.StatusCounts[models.DOCUMENT_STATUS_PROCESSING])
	assert.Equal(t, 0, stats.StatusCounts[models.DOCUMENT_STATUS_DRAFT])

	require.Len(t, stats.RecentDocuments, 5)
	assert.Equal(t, "d6", stats.RecentDocuments[0].ID)

	counts := map[string]int{}
	for _, cc := range stats.CategoryCounts {
		counts[cc.Name] = cc.Count
	}
	assert.Equal(t, 4, counts["Rapports"])
	assert.Equal(t, 3, counts["Factures"])
}

func TestCategoriesWithStats(t *testing.T) {
	svc, repos := newTestService(t)
	require.NoError(t, repos.Category.Create(&models.Category{ID: "c1", Name: "Rapports"}))
	require.NoError(t, repos.Category.Create(&models.Category{ID: "c2", Name: "Juridique"}))

	require.NoError(t, repos.Document.Create(&models.Document{
		ID: "d1", Title: "A", Category: "Rapports", Status: models.DOCUMENT_STATUS_ARCHIVED,
	}))
	require.NoError(t, repos.Document.Create(&models.Document{
		ID: "d2", Title: "B", Category: "Rapports", Status: models.DOCUMENT_STATUS_PROCESSING,
	}))

	stats, err := svc.CategoriesWithStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := map[string]models.CategoryStats{}
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.Equal(t, 2, byName["Rapports"].Count)
	assert.Equal(t, 1, byName["Rapports"].ArchivedCount)
	assert.Equal(t, 1, byName["Rapports"].ProcessingCount)
	assert.Zero(t, byName["Juridique"].Count)
}
