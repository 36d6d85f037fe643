// Package records implements the active procurement record domain.
// It provides types, data access, and business logic for record CRUD,
// soft deletion, change logging, batch validation, and batch approval.
package records

import (
	"time"

	"github.com/procuregpt/procure/pkg/validation"
)

// Record represents an active procurement record. Nullable columns use
// pointer fields; date columns hold the raw text captured at intake.
type Record struct {
	ID                int64     `json:"id"`
	SKU               *string   `json:"sku"`
	Distributor       *string   `json:"distributor"`
	ItemDescription   *string   `json:"item_description"`
	Brand             *string   `json:"brand"`
	QuoteCurrency     *string   `json:"quote_currency"`
	Quantity          *float64  `json:"quantity"`
	SerialNo          *string   `json:"serial_no"`
	StartDate         *string   `json:"start_date"`
	EndDate           *string   `json:"end_date"`
	UnitPrice         *float64  `json:"unit_price"`
	TotalPrice        *float64  `json:"total_price"`
	EUCompany         *string   `json:"eu_company"`
	CommentsNotes     *string   `json:"comments_notes"`
	QuotationRefNo    *string   `json:"quotation_ref_no"`
	QuotationDate     *string   `json:"quotation_date"`
	QuotationEndDate  *string   `json:"quotation_end_date"`
	QuotationValidity *string   `json:"quotation_validity"`
	SourceFile        *string   `json:"source_file"`
	ValidationStatus  string    `json:"validation_status"`
	ValidationMessage *string   `json:"validation_message"`
	IsCurrent         bool      `json:"is_current"`
	UserModified      bool      `json:"user_modified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdateCommand carries a partial update. Nil fields are left unchanged.
// Only the columns listed here may be modified after intake.
type UpdateCommand struct {
	SKU               *string  `json:"sku,omitempty"`
	Distributor       *string  `json:"distributor,omitempty"`
	ItemDescription   *string  `json:"item_description,omitempty"`
	Brand             *string  `json:"brand,omitempty"`
	QuoteCurrency     *string  `json:"quote_currency,omitempty"`
	Quantity          *float64 `json:"quantity,omitempty"`
	SerialNo          *string  `json:"serial_no,omitempty"`
	StartDate         *string  `json:"start_date,omitempty"`
	EndDate           *string  `json:"end_date,omitempty"`
	UnitPrice         *float64 `json:"unit_price,omitempty"`
	TotalPrice        *float64 `json:"total_price,omitempty"`
	EUCompany         *string  `json:"eu_company,omitempty"`
	CommentsNotes     *string  `json:"comments_notes,omitempty"`
	QuotationRefNo    *string  `json:"quotation_ref_no,omitempty"`
	QuotationDate     *string  `json:"quotation_date,omitempty"`
	QuotationEndDate  *string  `json:"quotation_end_date,omitempty"`
	QuotationValidity *string  `json:"quotation_validity,omitempty"`
}

type fieldChange struct {
	column string
	value  any
}

// changes returns the set columns in canonical field order.
func (c UpdateCommand) changes() []fieldChange {
	out := make([]fieldChange, 0)

	addString := func(column string, v *string) {
		if v != nil {
			out = append(out, fieldChange{column, *v})
		}
	}
	addFloat := func(column string, v *float64) {
		if v != nil {
			out = append(out, fieldChange{column, *v})
		}
	}

	addString("sku", c.SKU)
	addString("distributor", c.Distributor)
	addString("item_description", c.ItemDescription)
	addString("brand", c.Brand)
	addString("quote_currency", c.QuoteCurrency)
	addFloat("quantity", c.Quantity)
	addString("serial_no", c.SerialNo)
	addString("start_date", c.StartDate)
	addString("end_date", c.EndDate)
	addFloat("unit_price", c.UnitPrice)
	addFloat("total_price", c.TotalPrice)
	addString("eu_company", c.EUCompany)
	addString("comments_notes", c.CommentsNotes)
	addString("quotation_ref_no", c.QuotationRefNo)
	addString("quotation_date", c.QuotationDate)
	addString("quotation_end_date", c.QuotationEndDate)
	addString("quotation_validity", c.QuotationValidity)

	return out
}

// ChangeEntry records a single field modification on a record.
type ChangeEntry struct {
	ID        int64     `json:"id"`
	RecordID  int64     `json:"record_id"`
	FieldName string    `json:"field_name"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// ApproveBatchCommand carries validated records for persistence into the
// active table and the historical archive.
type ApproveBatchCommand struct {
	Records    []validation.Record `json:"records"`
	SourceFile string              `json:"source_file"`
}

// ApproveBatchResult reports the IDs assigned to approved records.
type ApproveBatchResult struct {
	ApprovedCount int     `json:"approved_count"`
	RecordIDs     []int64 `json:"record_ids"`
}
