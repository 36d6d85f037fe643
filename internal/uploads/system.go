package uploads

import (
	"context"
	"io"

	"github.com/procuregpt/procure/pkg/pagination"
)

// System defines the public contract for upload operations.
type System interface {
	// Handler creates an HTTP handler bound to this system.
	Handler(maxUploadSize int64, policy ExtensionPolicy) *Handler

	// List returns a paginated set of uploads matching the filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[UploadedFile], error)

	// Find returns a single upload by id.
	Find(ctx context.Context, id int64) (*UploadedFile, error)

	// Create stores the file blob and inserts its metadata row.
	Create(ctx context.Context, cmd CreateCommand) (*UploadedFile, error)

	// Download streams the stored blob for an upload.
	Download(ctx context.Context, id int64) (*UploadedFile, io.ReadCloser, error)

	// Delete removes an upload and its blob.
	Delete(ctx context.Context, id int64) error

	// Extract stores the file and runs the extraction pipeline over it,
	// returning validated line items for analyst review.
	Extract(ctx context.Context, cmd CreateCommand) (*ExtractResult, error)

	// Verify checks whether a document is procurement material without
	// storing it.
	Verify(ctx context.Context, cmd CreateCommand) (*VerifyResult, error)
}
