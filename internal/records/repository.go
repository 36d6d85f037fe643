package records

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/procuregpt/procure/pkg/pagination"
	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
	"github.com/procuregpt/procure/pkg/validation"
)

type repo struct {
	db         *sql.DB
	engine     *validation.Engine
	lookup     validation.AverageLookup
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a record repository implementing the System interface.
// lookup supplies per-SKU historical unit price averages for validation.
func New(
	db *sql.DB,
	engine *validation.Engine,
	lookup validation.AverageLookup,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		engine:     engine,
		lookup:     lookup,
		logger:     logger.With("system", "records"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereRaw("r.is_current = 1").
		WhereSearch(page.Search, "SKU", "ItemDescription", "Distributor")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	recs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	result := pagination.NewPageResult(recs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) (*Record, error) {
	changes := cmd.changes()
	if len(changes) == 0 {
		return nil, ErrNoFields
	}

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		findSQL, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		existing, err := repository.QueryOne(ctx, tx, findSQL, findArgs, scanRecord)
		if err != nil {
			return Record{}, err
		}

		if err := logChanges(ctx, tx, &existing, changes); err != nil {
			return Record{}, err
		}

		setClauses := make([]string, 0, len(changes)+2)
		values := make([]any, 0, len(changes)+2)
		for _, ch := range changes {
			setClauses = append(setClauses, ch.column+" = ?")
			values = append(values, ch.value)
		}
		setClauses = append(setClauses, "updated_at = ?", "user_modified = 1")
		values = append(values, time.Now().UTC(), id)

		updateSQL := fmt.Sprintf(
			"UPDATE records SET %s WHERE id = ?",
			strings.Join(setClauses, ", "),
		)
		if err := repository.ExecExpectOne(ctx, tx, updateSQL, values...); err != nil {
			return Record{}, err
		}

		return repository.QueryOne(ctx, tx, findSQL, findArgs, scanRecord)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("record updated", "id", id, "fields", len(changes))
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE records SET is_current = 0, updated_at = ? WHERE id = ? AND is_current = 1",
		time.Now().UTC(), id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("record deleted", "id", id)
	return nil
}

func (r *repo) ChangeLog(ctx context.Context, id int64) ([]ChangeEntry, error) {
	entries, err := repository.QueryMany(
		ctx, r.db,
		`SELECT id, record_id, field_name, old_value, new_value, changed_by, timestamp
		 FROM change_log WHERE record_id = ? ORDER BY timestamp DESC, id DESC`,
		[]any{id},
		scanChangeEntry,
	)
	if err != nil {
		return nil, fmt.Errorf("query change log: %w", err)
	}
	return entries, nil
}

func (r *repo) Validate(ctx context.Context, recs []validation.Record) ([]validation.Record, error) {
	return r.engine.ValidateBatch(ctx, recs, r.lookup)
}

func (r *repo) ApproveBatch(ctx context.Context, cmd ApproveBatchCommand) (*ApproveBatchResult, error) {
	if len(cmd.Records) == 0 {
		return nil, ErrEmptyBatch
	}

	ids, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]int64, error) {
		out := make([]int64, 0, len(cmd.Records))
		now := time.Now().UTC()

		for _, rec := range cmd.Records {
			id, err := insertApproved(ctx, tx, rec, cmd.SourceFile, now)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}

		return out, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"batch approved",
		"count", len(ids),
		"source_file", cmd.SourceFile,
	)

	return &ApproveBatchResult{ApprovedCount: len(ids), RecordIDs: ids}, nil
}

func insertApproved(
	ctx context.Context,
	tx *sql.Tx,
	rec validation.Record,
	sourceFile string,
	now time.Time,
) (int64, error) {
	status := "valid"
	if s, ok := rec[validation.KeyValidationStatus].(string); ok && s != "" {
		status = s
	}
	var message any
	if m, ok := rec[validation.KeyValidationMessage]; ok {
		message = m
	}

	values := make([]any, 0, len(validation.FieldOrder)+5)
	for _, field := range validation.FieldOrder {
		values = append(values, rec[field])
	}
	values = append(values, sourceFile, status, message, now, now)

	row := tx.QueryRowContext(ctx, insertRecordSQL, values...)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	archiveValues := make([]any, 0, len(validation.FieldOrder)+3)
	for _, field := range validation.FieldOrder {
		archiveValues = append(archiveValues, rec[field])
	}
	archiveValues = append(archiveValues, sourceFile, now, "approved")

	if _, err := tx.ExecContext(ctx, insertArchiveSQL, archiveValues...); err != nil {
		return 0, fmt.Errorf("insert archive entry: %w", err)
	}

	return id, nil
}

var insertRecordSQL = fmt.Sprintf(
	`INSERT INTO records (%s, source_file, validation_status, validation_message, created_at, updated_at)
	 VALUES (%s) RETURNING id`,
	strings.Join(validation.FieldOrder, ", "),
	placeholders(len(validation.FieldOrder)+5),
)

var insertArchiveSQL = fmt.Sprintf(
	`INSERT INTO historical_archive (%s, source_file, archived_at, archive_reason)
	 VALUES (%s)`,
	strings.Join(validation.FieldOrder, ", "),
	placeholders(len(validation.FieldOrder)+3),
)

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}

func logChanges(ctx context.Context, tx *sql.Tx, existing *Record, changes []fieldChange) error {
	for _, ch := range changes {
		oldVal := existing.columnString(ch.column)
		newVal := fmt.Sprint(ch.value)
		if oldVal == newVal {
			continue
		}

		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO change_log (record_id, field_name, old_value, new_value, changed_by, timestamp)
			 VALUES (?, ?, ?, ?, 'user', ?)`,
			existing.ID, ch.column, oldVal, newVal, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("log change for %s: %w", ch.column, err)
		}
	}
	return nil
}

// columnString renders a column's current value for change log comparison.
func (r *Record) columnString(column string) string {
	str := func(v *string) string {
		if v == nil {
			return "<nil>"
		}
		return *v
	}
	num := func(v *float64) string {
		if v == nil {
			return "<nil>"
		}
		return fmt.Sprint(*v)
	}

	switch column {
	case "sku":
		return str(r.SKU)
	case "distributor":
		return str(r.Distributor)
	case "item_description":
		return str(r.ItemDescription)
	case "brand":
		return str(r.Brand)
	case "quote_currency":
		return str(r.QuoteCurrency)
	case "quantity":
		return num(r.Quantity)
	case "serial_no":
		return str(r.SerialNo)
	case "start_date":
		return str(r.StartDate)
	case "end_date":
		return str(r.EndDate)
	case "unit_price":
		return num(r.UnitPrice)
	case "total_price":
		return num(r.TotalPrice)
	case "eu_company":
		return str(r.EUCompany)
	case "comments_notes":
		return str(r.CommentsNotes)
	case "quotation_ref_no":
		return str(r.QuotationRefNo)
	case "quotation_date":
		return str(r.QuotationDate)
	case "quotation_end_date":
		return str(r.QuotationEndDate)
	case "quotation_validity":
		return str(r.QuotationValidity)
	default:
		return ""
	}
}
