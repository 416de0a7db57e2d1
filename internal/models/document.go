package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata row for a file held by the blob store. The bytes
// live under StoredName; deleting the row deletes the blob best-effort.
type Document struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Ref         EntityRef `json:"ref" db:"ref"`
	FileName    string    `json:"file_name" db:"file_name"`
	StoredName  string    `json:"stored_name" db:"stored_name"`
	ContentType *string   `json:"content_type" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
