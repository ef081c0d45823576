package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=100"`
	Icon        string    `json:"icon"`
	Description string    `json:"description" validate:"max=500"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// CategoryStats is a category joined with document counts derived at read
// time; counts are never persisted.
type CategoryStats struct {
	Category
	Count           int `json:"count"`
	ArchivedCount   int `json:"archivedCount"`
	ProcessingCount int `json:"processingCount"`
}
