// Package validation implements the procurement record validation engine.
// It evaluates flat line-item records against per-field rules, cross-field
// consistency checks, and batch-level duplicate detection, producing a
// tri-level (valid/warning/error) verdict per field and per record.
//
// The engine is deterministic and holds no mutable state: configuration and
// historical comparison values are supplied by the caller, nothing is
// persisted, and malformed data is reported as verdicts rather than errors.
// It is safe to run independent batches concurrently.
package validation

import "strings"

// Config defines the externally supplied rule surface: which fields are
// compulsory, which currencies are accepted, and the numeric thresholds
// for warning and error escalation.
type Config struct {
	CompulsoryText      []string `toml:"compulsory_text"`
	CompulsoryNumeric   []string `toml:"compulsory_numeric"`
	SupportedCurrencies []string `toml:"supported_currencies"`

	// HighQuantity is the quantity above which a warning is raised.
	HighQuantity float64 `toml:"high_quantity"`

	// PriceWarnDeviation and PriceErrorDeviation are the fractional
	// deviations from the historical average unit price that escalate
	// to warning and error respectively.
	PriceWarnDeviation  float64 `toml:"price_warn_deviation"`
	PriceErrorDeviation float64 `toml:"price_error_deviation"`

	// TotalTolerance is the fractional tolerance allowed between
	// total_price and unit_price multiplied by quantity.
	TotalTolerance float64 `toml:"total_tolerance"`
}

// DefaultConfig returns the standard rule surface for procurement line items.
func DefaultConfig() Config {
	return Config{
		CompulsoryText: []string{
			FieldSKU,
			FieldDistributor,
			FieldItemDescription,
			FieldQuoteCurrency,
			FieldSerialNo,
			FieldEUCompany,
			FieldQuotationRefNo,
		},
		CompulsoryNumeric: []string{
			FieldQuantity,
			FieldUnitPrice,
			FieldTotalPrice,
		},
		SupportedCurrencies: []string{
			"SGD", "USD", "EUR", "GBP", "JPY", "CNY", "MYR", "AUD", "ALL",
		},
		HighQuantity:        10000,
		PriceWarnDeviation:  0.20,
		PriceErrorDeviation: 0.50,
		TotalTolerance:      0.01,
	}
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if len(overlay.CompulsoryText) > 0 {
		c.CompulsoryText = overlay.CompulsoryText
	}
	if len(overlay.CompulsoryNumeric) > 0 {
		c.CompulsoryNumeric = overlay.CompulsoryNumeric
	}
	if len(overlay.SupportedCurrencies) > 0 {
		c.SupportedCurrencies = overlay.SupportedCurrencies
	}
	if overlay.HighQuantity != 0 {
		c.HighQuantity = overlay.HighQuantity
	}
	if overlay.PriceWarnDeviation != 0 {
		c.PriceWarnDeviation = overlay.PriceWarnDeviation
	}
	if overlay.PriceErrorDeviation != 0 {
		c.PriceErrorDeviation = overlay.PriceErrorDeviation
	}
	if overlay.TotalTolerance != 0 {
		c.TotalTolerance = overlay.TotalTolerance
	}
}

// Finalize fills unset values from DefaultConfig.
func (c *Config) Finalize() {
	defaults := DefaultConfig()
	defaults.Merge(c)
	*c = defaults
}

// AverageLookup supplies the historical average unit price for a record,
// typically sourced from the historical archive by SKU. A return value of
// zero or less disables the price anomaly check for that record.
type AverageLookup func(Record) float64

// Engine evaluates records against a fixed Config. An Engine is immutable
// after construction and safe for concurrent use.
type Engine struct {
	cfg        Config
	text       []string
	numeric    []string
	currencies map[string]struct{}
}

// New creates an Engine from the given config. Zero-valued config fields
// fall back to DefaultConfig.
func New(cfg Config) *Engine {
	cfg.Finalize()

	currencies := make(map[string]struct{}, len(cfg.SupportedCurrencies))
	for _, c := range cfg.SupportedCurrencies {
		currencies[strings.ToUpper(c)] = struct{}{}
	}

	return &Engine{
		cfg:        cfg,
		text:       cfg.CompulsoryText,
		numeric:    cfg.CompulsoryNumeric,
		currencies: currencies,
	}
}

// Config returns the finalized configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}
