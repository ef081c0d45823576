package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// documentRepository implements the DocumentRepository interface
type documentRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewDocumentRepository creates a new document repository instance
func NewDocumentRepository(st *store.Store) DocumentRepository {
	return &documentRepository{st: st}
}

func (r *documentRepository) readAll() ([]models.Document, error) {
	var docs []models.Document
	if err := r.st.ReadAll(store.KindDocuments, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Create appends a new document to the collection.
func (r *documentRepository) Create(doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return err
	}
	docs = append(docs, *doc)
	return r.st.WriteAll(store.KindDocuments, docs)
}

// GetByID retrieves a document by its ID
func (r *documentRepository) GetByID(id string) (*models.Document, error) {
	docs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update merges the changed fields into the stored document and refreshes
// its UpdatedAt stamp.
func (r *documentRepository) Update(id string, update models.DocumentUpdate) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		d := &docs[i]
		if update.Title != nil {
			d.Title = *update.Title
		}
		if update.Category != nil {
			d.Category = *update.Category
		}
		if update.Type != nil {
			d.Type = *update.Type
		}
		if update.Size != nil {
			d.Size = *update.Size
		}
		if update.SizeBytes != nil {
			d.SizeBytes = *update.SizeBytes
		}
		if update.Status != nil {
			d.Status = *update.Status
		}
		if update.Date != nil {
			d.Date = *update.Date
		}
		if update.Tags != nil {
			d.Tags = *update.Tags
		}
		if update.Description != nil {
			d.Description = *update.Description
		}
		if update.FileName != nil {
			d.FileName = *update.FileName
		}
		d.UpdatedAt = time.Now()

		if err := r.st.WriteAll(store.KindDocuments, docs); err != nil {
			return nil, err
		}
		out := *d
		return &out, nil
	}
	return nil, ErrNotFound
}

// Delete removes a document by ID.
func (r *documentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return err
	}
	kept := docs[:0]
	found := false
	for _, d := range docs {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrNotFound
	}
	return r.st.WriteAll(store.KindDocuments, kept)
}

// List returns all documents in insertion order.
func (r *documentRepository) List() ([]models.Document, error) {
	return r.readAll()
}

// Count returns the total number of documents
func (r *documentRepository) Count() (int, error) {
	docs, err := r.readAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// TotalSizeBytes sums the stored size of every document.
func (r *documentRepository) TotalSizeBytes() (int64, error) {
	docs, err := r.readAll()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, d := range docs {
		total += d.SizeBytes
	}
	return total, nil
}

// Search filters documents by a case-insensitive substring query over title,
// tags, description and file name, and by exact category/status filters.
// Filters AND together; an empty query and empty filters return everything.
func (r *documentRepository) Search(query, category, status string) ([]models.Document, error) {
	docs, err := r.readAll()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if q != "" && !matchesQuery(&d, q) {
			continue
		}
		if category != "" && d.Category != category {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func matchesQuery(d *models.Document, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.Description), q) ||
		strings.Contains(strings.ToLower(d.FileName), q) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
