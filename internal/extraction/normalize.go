package extraction

import (
	"strings"

	"github.com/procuregpt/procure/pkg/validation"
)

// fieldNames maps the display labels the vision model tends to emit to
// canonical record field names. Unmapped keys fall through to a lowercased
// snake_case rendering of the label.
var fieldNames = map[string]string{
	"SKU":                validation.FieldSKU,
	"Distributor":        validation.FieldDistributor,
	"Item Description":   validation.FieldItemDescription,
	"Brand":              validation.FieldBrand,
	"Quote Currency":     validation.FieldQuoteCurrency,
	"Quantity":           validation.FieldQuantity,
	"Serial No":          validation.FieldSerialNo,
	"Start Date":         validation.FieldStartDate,
	"End Date":           validation.FieldEndDate,
	"Unit Price":         validation.FieldUnitPrice,
	"Total Price":        validation.FieldTotalPrice,
	"EU Company":         validation.FieldEUCompany,
	"Comments/Notes":     validation.FieldCommentsNotes,
	"Quotation Ref No":   validation.FieldQuotationRefNo,
	"Quotation Date":     validation.FieldQuotationDate,
	"Quotation End Date": validation.FieldQuotationEndDate,
	"Quotation Validity": validation.FieldQuotationValidity,
}

// numericFields are coerced to float64 during normalization, tolerating
// currency symbols and thousands separators in model output.
var numericFields = map[string]struct{}{
	validation.FieldQuantity:   {},
	validation.FieldUnitPrice:  {},
	validation.FieldTotalPrice: {},
}

// NormalizeItem converts one raw extracted item into a canonical record:
// field labels become snake_case names and numeric fields are coerced.
func NormalizeItem(item map[string]any) validation.Record {
	rec := make(validation.Record, len(item))

	for key, value := range item {
		name := canonicalName(key)
		if _, ok := numericFields[name]; ok {
			value = coerceNumeric(value)
		}
		rec[name] = value
	}

	return rec
}

func canonicalName(key string) string {
	if name, ok := fieldNames[key]; ok {
		return name
	}

	name := strings.ToLower(strings.TrimSpace(key))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name
}

func coerceNumeric(value any) any {
	switch v := value.(type) {
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.NewReplacer(",", "", "$", "", " ", "").Replace(cleaned)
		if cleaned == "" {
			return nil
		}

		if n, ok := validation.ToNumeric(cleaned); ok {
			return n
		}

		return value
	default:
		return value
	}
}
