// Package historical implements the historical archive domain. Approved
// records accumulate here and supply the pricing benchmarks used during
// validation of new intake batches.
package historical

import "time"

// Entry represents an archived procurement record.
type Entry struct {
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
	ArchivedAt        time.Time `json:"archived_at"`
	ArchiveReason     string    `json:"archive_reason"`
}

// Stats holds aggregate statistics over a filtered slice of the archive.
type Stats struct {
	TotalRecords       int      `json:"total_records"`
	UniqueSKUs         int      `json:"unique_skus"`
	UniqueDistributors int      `json:"unique_distributors"`
	AvgUnitPrice       *float64 `json:"avg_unit_price"`
	MinUnitPrice       *float64 `json:"min_unit_price"`
	MaxUnitPrice       *float64 `json:"max_unit_price"`
}

// SearchResult bundles matching entries with aggregate stats.
type SearchResult struct {
	Records []Entry `json:"records"`
	Stats   Stats   `json:"stats"`
	Count   int     `json:"count"`
}

// TrendPoint is one month of price aggregates for a SKU.
type TrendPoint struct {
	Month       string   `json:"month"`
	AvgPrice    *float64 `json:"avg_price"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	RecordCount int      `json:"record_count"`
}

// PriceTrend holds the monthly price trajectory for a SKU.
type PriceTrend struct {
	SKU        string       `json:"sku"`
	DataPoints []TrendPoint `json:"data_points"`
}

// PriceSummary holds price statistics for a single SKU.
type PriceSummary struct {
	AvgPrice    float64 `json:"avg_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	RecordCount int     `json:"record_count"`
}

// SKUSummary combines trend, stats, and recent entries for a SKU.
type SKUSummary struct {
	Trend   *PriceTrend `json:"trend"`
	Stats   Stats       `json:"stats"`
	Records []Entry     `json:"records"`
}
