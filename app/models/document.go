package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DOCUMENT_STATUS_DRAFT      = "brouillon"
	DOCUMENT_STATUS_PROCESSING = "en traitement"
	DOCUMENT_STATUS_ARCHIVED   = "archivé"
)

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=250"`
	Category    string    `json:"category" validate:"required"`
	Type        string    `json:"type"`
	Size        string    `json:"size"`
	SizeBytes   int64     `json:"sizeBytes" validate:"min=0"`
	Status      string    `json:"status" validate:"oneof=brouillon 'en traitement' archivé"`
	Date        string    `json:"date"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d *Document) Validate() error {
	v := validator.New()

	return v.Struct(d)
}

// DocumentUpdate carries the mutable fields of a document; nil means "leave
// unchanged".
type DocumentUpdate struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Type        *string   `json:"type"`
	Size        *string   `json:"size"`
	SizeBytes   *int64    `json:"sizeBytes"`
	Status      *string   `json:"status"`
	Date        *string   `json:"date"`
	Tags        *[]string `json:"tags"`
	Description *string   `json:"description"`
	FileName    *string   `json:"fileName"`
}
