package historical

import (
	"net/url"
	"strconv"

	"github.com/procuregpt/procure/pkg/query"
	"github.com/procuregpt/procure/pkg/repository"
)

const (
	defaultSearchLimit = 500
	maxSearchLimit     = 5000
)

var projection = query.
	NewProjectionMap("historical_archive", "h").
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
	Project("archived_at", "ArchivedAt").
	Project("archive_reason", "ArchiveReason")

var defaultSort = query.SortField{
	Field:      "ArchivedAt",
	Descending: true,
}

// SearchFilters contains optional criteria for archive searches.
// SKU, EUCompany, and Distributor use case-insensitive contains matching;
// Query searches across sku, item description, and distributor.
type SearchFilters struct {
	SKU         *string `json:"sku,omitempty"`
	EUCompany   *string `json:"eu_company,omitempty"`
	Distributor *string `json:"distributor,omitempty"`
	DateFrom    *string `json:"date_from,omitempty"`
	DateTo      *string `json:"date_to,omitempty"`
	Query       *string `json:"query,omitempty"`
	Limit       int     `json:"limit,omitempty"`
}

// Normalize clamps the result limit into [1, maxSearchLimit].
func (f *SearchFilters) Normalize() {
	if f.Limit < 1 {
		f.Limit = defaultSearchLimit
	}
	if f.Limit > maxSearchLimit {
		f.Limit = maxSearchLimit
	}
}

// Apply adds filter conditions to a query builder.
func (f SearchFilters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereContains("SKU", f.SKU).
		WhereContains("EUCompany", f.EUCompany).
		WhereContains("Distributor", f.Distributor).
		WhereSearch(f.Query, "SKU", "ItemDescription", "Distributor")

	if f.DateFrom != nil && *f.DateFrom != "" {
		b.WhereRaw("h.archived_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil && *f.DateTo != "" {
		b.WhereRaw("h.archived_at <= ?", *f.DateTo)
	}

	return b
}

// SearchFiltersFromQuery extracts filter values from URL query parameters.
func SearchFiltersFromQuery(values url.Values) SearchFilters {
	var f SearchFilters

	if s := values.Get("sku"); s != "" {
		f.SKU = &s
	}
	if c := values.Get("eu_company"); c != "" {
		f.EUCompany = &c
	}
	if d := values.Get("distributor"); d != "" {
		f.Distributor = &d
	}
	if df := values.Get("date_from"); df != "" {
		f.DateFrom = &df
	}
	if dt := values.Get("date_to"); dt != "" {
		f.DateTo = &dt
	}
	if q := values.Get("query"); q != "" {
		f.Query = &q
	}
	if l := values.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			f.Limit = n
		}
	}

	f.Normalize()
	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.SKU,
		&e.Distributor,
		&e.ItemDescription,
		&e.Brand,
		&e.QuoteCurrency,
		&e.Quantity,
		&e.SerialNo,
		&e.StartDate,
		&e.EndDate,
		&e.UnitPrice,
		&e.TotalPrice,
		&e.EUCompany,
		&e.CommentsNotes,
		&e.QuotationRefNo,
		&e.QuotationDate,
		&e.QuotationEndDate,
		&e.QuotationValidity,
		&e.SourceFile,
		&e.ArchivedAt,
		&e.ArchiveReason,
	)
	return e, err
}
