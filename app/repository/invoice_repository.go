package repository

import (
	"sort"
	"sync"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	st *store.Store
	mu sync.Mutex
}

// NewInvoiceRepository creates a new invoice repository instance
func NewInvoiceRepository(st *store.Store) InvoiceRepository {
	return &invoiceRepository{st: st}
}

func (r *invoiceRepository) readAll() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.st.ReadAll(store.KindInvoices, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create appends an invoice. Invoices are never updated or deleted.
func (r *invoiceRepository) Create(inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoices, err := r.readAll()
	if err != nil {
		return err
	}
	invoices = append(invoices, *inv)
	return r.st.WriteAll(store.KindInvoices, invoices)
}

// ListByUser returns a user's invoices, newest first.
func (r *invoiceRepository) ListByUser(userID string) ([]models.Invoice, error) {
	invoices, err := r.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
