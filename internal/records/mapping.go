package records

import (
	"net/url"

	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
)

var projection = query.
	NewProjectionMap("records", "r").
	Project("id", "ID").
	Project("sku", "SKU").
	Project("distributor", "Distributor").
	Project("item_description", "ItemDescription").
	Project("brand", "Brand").
	Project("quote_currency", "QuoteCurrency").
	Project("quantity", "Quantity").
	Project("serial_no", "SerialNo").
	Project("start_date", "StartDate").
	Project("end_date", "EndDate").
	Project("unit_price", "UnitPrice").
	Project("total_price", "TotalPrice").
	Project("eu_company", "EUCompany").
	Project("comments_notes", "CommentsNotes").
	Project("quotation_ref_no", "QuotationRefNo").
	Project("quotation_date", "QuotationDate").
	Project("quotation_end_date", "QuotationEndDate").
	Project("quotation_validity", "QuotationValidity").
	Project("source_file", "SourceFile").
	Project("validation_status", "ValidationStatus").
	Project("validation_message", "ValidationMessage").
	Project("is_current", "IsCurrent").
	Project("user_modified", "UserModified").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for record queries.
// Nil fields are ignored. SKU, Distributor, and EUCompany use
// case-insensitive contains matching.
type Filters struct {
	SKU              *string `json:"sku,omitempty"`
	Distributor      *string `json:"distributor,omitempty"`
	EUCompany        *string `json:"eu_company,omitempty"`
	ValidationStatus *string `json:"validation_status,omitempty"`
	SourceFile       *string `json:"source_file,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("SKU", f.SKU).
		WhereContains("Distributor", f.Distributor).
		WhereContains("EUCompany", f.EUCompany).
		WhereEquals("ValidationStatus", f.ValidationStatus).
		WhereEquals("SourceFile", f.SourceFile)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("sku"); s != "" {
		f.SKU = &s
	}
	if d := values.Get("distributor"); d != "" {
		f.Distributor = &d
	}
	if c := values.Get("eu_company"); c != "" {
		f.EUCompany = &c
	}
	if vs := values.Get("validation_status"); vs != "" {
		f.ValidationStatus = &vs
	}
	if sf := values.Get("source_file"); sf != "" {
		f.SourceFile = &sf
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.SKU,
		&r.Distributor,
		&r.ItemDescription,
		&r.Brand,
		&r.QuoteCurrency,
		&r.Quantity,
		&r.SerialNo,
		&r.StartDate,
		&r.EndDate,
		&r.UnitPrice,
		&r.TotalPrice,
		&r.EUCompany,
		&r.CommentsNotes,
		&r.QuotationRefNo,
		&r.QuotationDate,
		&r.QuotationEndDate,
		&r.QuotationValidity,
		&r.SourceFile,
		&r.ValidationStatus,
		&r.ValidationMessage,
		&r.IsCurrent,
		&r.UserModified,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func scanChangeEntry(s repository.Scanner) (ChangeEntry, error) {
	var c ChangeEntry
	err := s.Scan(
		&c.ID,
		&c.RecordID,
		&c.FieldName,
		&c.OldValue,
		&c.NewValue,
		&c.ChangedBy,
		&c.Timestamp,
	)
	return c, err
}
