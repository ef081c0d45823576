package statistics

import (
	"sort"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/utils"
)

// CategoryCount is the number of documents in one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats are the aggregates backing the dashboard. They are computed
// from full scans on every request, never cached.
type DashboardStats struct {
	TotalDocuments        int               `json:"totalDocuments"`
	TotalCategories       int               `json:"totalCategories"`
	TotalStorageBytes     int64             `json:"totalStorageBytes"`
	TotalStorageFormatted string            `json:"totalStorageFormatted"`
	StatusCounts          map[string]int    `json:"statusCounts"`
	CategoryCounts        []CategoryCount   `json:"categoryCounts"`
	RecentDocuments       []models.Document `json:"recentDocuments"`
}

// Service computes read-only aggregates over documents and categories.
type Service struct {
	documents  repository.DocumentRepository
	categories repository.CategoryRepository
}

// NewService creates a statistics service over the given repositories.
func NewService(docs repository.DocumentRepository, cats repository.CategoryRepository) *Service {
	return &Service{documents: docs, categories: cats}
}

// Dashboard builds the dashboard aggregates.
func (s *Service) Dashboard() (*DashboardStats, error) {
	docs, err := s.documents.List()
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.List()
	if err != nil {
		return nil, err
	}

	var totalSize int64
	statusCounts := map[string]int{
		models.DOCUMENT_STATUS_ARCHIVED:   0,
		models.DOCUMENT_STATUS_PROCESSING: 0,
		models.DOCUMENT_STATUS_DRAFT:      0,
	}
	for _, d := range docs {
		totalSize += d.SizeBytes
		statusCounts[d.Status]++
	}

	categoryCounts := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		count := 0
		for _, d := range docs {
			if d.Category == c.Name {
				count++
			}
		}
		categoryCounts = append(categoryCounts, CategoryCount{Name: c.Name, Count: count})
	}

	recent := make([]models.Document, len(docs))
	copy(recent, docs)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardStats{
		TotalDocuments:        len(docs),
		TotalCategories:       len(cats),
		TotalStorageBytes:     totalSize,
		TotalStorageFormatted: utils.FormatBytes(totalSize),
		StatusCounts:          statusCounts,
		CategoryCounts:        categoryCounts,
		RecentDocuments:       recent,
	}, nil
}

// CategoriesWithStats decorates every category with document counts derived
// on the fly.
func (s *Service) CategoriesWithStats() ([]models.CategoryStats, error) {
	cats, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.List()
	if err != nil {
		return nil, err
	}

	out := make([]models.CategoryStats, 0, len(cats))
	for _, c := range cats {
		stats := models.CategoryStats{Category: c}
		for _, d := range docs {
			if d.Category != c.Name {
				continue
			}
			stats.Count++
			if d.Status == models.DOCUMENT_STATUS_ARCHIVED {
				stats.ArchivedCount++
			}
		}
		stats.ProcessingCount = stats.Count - stats.ArchivedCount
		out = append(out, stats)
	}
	return out, nil
}
