package records

import (
	"context"

	"github.com/procuregpt/procure/pkg/pagination"
	"github.com/procuregpt/procure/pkg/validation"
)

// System defines the public contract for record domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id int64) (*Record, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (*Record, error)
	Delete(ctx context.Context, id int64) error
	ChangeLog(ctx context.Context, id int64) ([]ChangeEntry, error)

	Validate(ctx context.Context, recs []validation.Record) ([]validation.Record, error)
	ApproveBatch(ctx context.Context, cmd ApproveBatchCommand) (*ApproveBatchResult, error)
}
