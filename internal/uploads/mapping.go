package uploads

import (
	"net/url"

	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
)

var projection = query.
	NewProjectionMap("uploaded_files", "u").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("original_name", "OriginalName").
	Project("file_type", "FileType").
	Project("file_size", "FileSize").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("upload_status", "UploadStatus").
	Project("records_extracted", "RecordsExtracted").
	Project("uploaded_at", "UploadedAt").
	Project("processed_at", "ProcessedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for upload queries.
type Filters struct {
	FileType     *string `json:"file_type,omitempty"`
	UploadStatus *string `json:"upload_status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("FileType", f.FileType).
		WhereEquals("UploadStatus", f.UploadStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ft := values.Get("file_type"); ft != "" {
		f.FileType = &ft
	}
	if us := values.Get("upload_status"); us != "" {
		f.UploadStatus = &us
	}

	return f
}

func scanUploadedFile(s repository.Scanner) (UploadedFile, error) {
	var u UploadedFile
	err := s.Scan(
		&u.ID,
		&u.Filename,
		&u.OriginalName,
		&u.FileType,
		&u.FileSize,
		&u.PageCount,
		&u.StorageKey,
		&u.UploadStatus,
		&u.RecordsExtracted,
		&u.UploadedAt,
		&u.ProcessedAt,
	)
	return u, err
}
