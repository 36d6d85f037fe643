package validation

// Canonical field names for a procurement line-item record.
const (
	FieldSKU               = "sku"
	FieldDistributor       = "distributor"
	FieldItemDescription   = "item_description"
	FieldBrand             = "brand"
	FieldQuoteCurrency     = "quote_currency"
	FieldQuantity          = "quantity"
	FieldSerialNo          = "serial_no"
	FieldStartDate         = "start_date"
	FieldEndDate           = "end_date"
	FieldUnitPrice         = "unit_price"
	FieldTotalPrice        = "total_price"
	FieldEUCompany         = "eu_company"
	FieldCommentsNotes     = "comments_notes"
	FieldQuotationRefNo    = "quotation_ref_no"
	FieldQuotationDate     = "quotation_date"
	FieldQuotationEndDate  = "quotation_end_date"
	FieldQuotationValidity = "quotation_validity"
)

// Annotation keys added to a record by batch validation.
const (
	KeyValidationStatus  = "validation_status"
	KeyValidationMessage = "validation_message"
	KeyFieldValidation   = "field_validation"
)

// FieldOrder is the canonical declaration order of record fields. Summary
// messages concatenate field verdicts in this order so that output is
// reproducible regardless of map iteration.
var FieldOrder = []string{
	FieldSKU,
	FieldDistributor,
	FieldItemDescription,
	FieldBrand,
	FieldQuoteCurrency,
	FieldQuantity,
	FieldSerialNo,
	FieldStartDate,
	FieldEndDate,
	FieldUnitPrice,
	FieldTotalPrice,
	FieldEUCompany,
	FieldCommentsNotes,
	FieldQuotationRefNo,
	FieldQuotationDate,
	FieldQuotationEndDate,
	FieldQuotationValidity,
}

// Date fields checked for parseability and ordering.
var dateFields = []string{
	FieldStartDate,
	FieldEndDate,
	FieldQuotationDate,
	FieldQuotationEndDate,
}

// Optional fields that default to a valid verdict when untouched.
var optionalFields = []string{
	FieldBrand,
	FieldCommentsNotes,
	FieldQuotationValidity,
}

// Record is a flat field-value mapping for one procurement line item.
// Values may be strings, numbers (float64 after JSON decoding), or nil.
// The engine only ever adds annotation keys; it never removes or rewrites
// the fields it was given.
type Record map[string]any
