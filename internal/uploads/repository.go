package uploads

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procuregpt/procure/internal/extraction"
	"github.com/procuregpt/procure/pkg/pagination"
	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
	"github.com/procuregpt/procure/pkg/storage"
	"github.com/procuregpt/procure/pkg/validation"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	extractor  extraction.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an upload repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	extractor extraction.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		extractor:  extractor,
		logger:     logger.With("system", "uploads"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64, policy ExtensionPolicy) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize, policy)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[UploadedFile], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "OriginalName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	files, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUploadedFile)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}

	result := pagination.NewPageResult(files, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*UploadedFile, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUploadedFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*UploadedFile, error) {
	original := sanitizeFilename(cmd.Filename)
	ext := strings.ToLower(filepath.Ext(original))
	stored := uuid.New().String() + ext
	key := buildStorageKey(stored)

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	q := `
		INSERT INTO uploaded_files(filename, original_name, file_type, file_size, page_count, storage_key, upload_status, records_extracted, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, filename, original_name, file_type, file_size, page_count, storage_key, upload_status, records_extracted, uploaded_at, processed_at`

	insertArgs := []any{
		stored,
		original,
		strings.TrimPrefix(ext, "."),
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
		StatusPending,
		0,
		time.Now().UTC(),
	}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (UploadedFile, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanUploadedFile)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("file uploaded", "id", u.ID, "filename", u.OriginalName)
	return &u, nil
}

func (r *repo) Download(ctx context.Context, id int64) (*UploadedFile, io.ReadCloser, error) {
	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := r.storage.Download(ctx, u.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download blob: %w", err)
	}

	return u, body, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	u, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM uploaded_files WHERE id = ?",
			id,
		)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, u.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", u.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("upload deleted", "id", id)
	return nil
}

func (r *repo) Extract(ctx context.Context, cmd CreateCommand) (*ExtractResult, error) {
	u, err := r.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if err := r.setStatus(ctx, u.ID, StatusProcessing, nil); err != nil {
		return nil, err
	}

	res, err := r.extractor.Extract(ctx, extraction.Document{
		Data:        cmd.Data,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		EUCompany:   cmd.EUCompany,
	})
	if err != nil {
		if stErr := r.setStatus(ctx, u.ID, StatusError, nil); stErr != nil {
			r.logger.Warn("status update failed after extraction error", "id", u.ID, "error", stErr)
		}
		return nil, err
	}

	status := StatusCompleted
	if !res.Verified {
		status = StatusError
	}

	extracted := len(res.Records)
	if err := r.setStatus(ctx, u.ID, status, &extracted); err != nil {
		return nil, err
	}

	if res.PageCount > 0 && u.PageCount == nil {
		u.PageCount = &res.PageCount
	}

	u, err = r.Find(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"extraction finished",
		"id", u.ID,
		"verified", res.Verified,
		"record_count", extracted,
	)

	return &ExtractResult{
		File:     u,
		Records:  res.Records,
		Summary:  validation.Summarize(res.Records),
		Verified: res.Verified,
	}, nil
}

func (r *repo) Verify(ctx context.Context, cmd CreateCommand) (*VerifyResult, error) {
	verified, err := r.extractor.Verify(ctx, extraction.Document{
		Data:        cmd.Data,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
	})
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Filename:      cmd.Filename,
		IsProcurement: verified,
	}, nil
}

func (r *repo) setStatus(ctx context.Context, id int64, status string, extracted *int) error {
	q := "UPDATE uploaded_files SET upload_status = ? WHERE id = ?"
	args := []any{status, id}

	if extracted != nil {
		q = "UPDATE uploaded_files SET upload_status = ?, records_extracted = ?, processed_at = ? WHERE id = ?"
		args = []any{status, *extracted, time.Now().UTC(), id}
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func buildStorageKey(filename string) string {
	return fmt.Sprintf("uploads/%s", filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return name
}
