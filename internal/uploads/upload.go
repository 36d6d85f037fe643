// Package uploads manages procurement source files: blob storage, upload
// metadata, and the extraction pipeline that turns an uploaded document into
// validated line item records.
package uploads

import (
	"time"

	"github.com/procuregpt/procure/pkg/validation"
)

// Upload lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// UploadedFile is the metadata row for a stored procurement document.
type UploadedFile struct {
	ID               int64      `json:"id"`
	Filename         string     `json:"filename"`
	OriginalName     string     `json:"original_name"`
	FileType         string     `json:"file_type"`
	FileSize         int64      `json:"file_size"`
	PageCount        *int       `json:"page_count,omitempty"`
	StorageKey       string     `json:"storage_key"`
	UploadStatus     string     `json:"upload_status"`
	RecordsExtracted int        `json:"records_extracted"`
	UploadedAt       time.Time  `json:"uploaded_at"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
}

// CreateCommand carries the data needed to store an uploaded file.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	EUCompany   string
	PageCount   *int
}

// ExtractResult is the outcome of running the extraction pipeline over an
// uploaded document.
type ExtractResult struct {
	File     *UploadedFile       `json:"file"`
	Records  []validation.Record `json:"records"`
	Summary  validation.Summary  `json:"validation_summary"`
	Verified bool                `json:"verified"`
}

// VerifyResult reports whether a document looks like procurement material.
type VerifyResult struct {
	Filename      string `json:"filename"`
	IsProcurement bool   `json:"is_procurement"`
}

// ExtensionPolicy decides whether a file extension is accepted for upload.
type ExtensionPolicy interface {
	Allowed(ext string) bool
}
