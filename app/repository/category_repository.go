package repository

import (
	"strings"
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(st *store.Store) CategoryRepository {
	return &categoryRepository{st: st}
}

func (r *categoryRepository) readAll() ([]models.Category, error) {
	var cats []models.Category
	if err := r.st.ReadAll(store.KindCategories, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create appends a new category to the collection.
func (r *categoryRepository) Create(cat *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, err := r.readAll()
	if err != nil {
		return err
	}
	cats = append(cats, *cat)
	return r.st.WriteAll(store.KindCategories, cats)
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id string) (*models.Category, error) {
	cats, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].ID == id {
			return &cats[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByName retrieves a category by name, case-insensitively.
func (r *categoryRepository) GetByName(name string) (*models.Category, error) {
	cats, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if strings.EqualFold(cats[i].Name, name) {
			return &cats[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the stored category matching cat.ID.
func (r *categoryRepository) Update(cat *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range cats {
		if cats[i].ID == cat.ID {
			cats[i] = *cat
			return r.st.WriteAll(store.KindCategories, cats)
		}
	}
	return ErrNotFound
}

// Delete removes a category by ID. Documents referencing the category are
// left untouched; the name reference simply goes orphaned.
func (r *categoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, err := r.readAll()
	if err != nil {
		return err
	}
	kept := cats[:0]
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}
	return r.st.WriteAll(store.KindCategories, kept)
}

// List returns all categories in insertion order.
func (r *categoryRepository) List() ([]models.Category, error) {
	return r.readAll()
}
