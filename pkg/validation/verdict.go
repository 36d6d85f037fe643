package validation

import "strings"

// AllFieldsValid is the summary message for a record with no findings.
const AllFieldsValid = "All fields valid"

// FieldVerdict is the outcome for a single field. Message is empty when
// the status is Valid.
type FieldVerdict struct {
	Status  Severity `json:"status"`
	Message string   `json:"message"`
}

// RecordVerdict is the outcome for one record: the per-field verdicts,
// the overall severity (the maximum across all field verdicts), and the
// summary message joining every non-valid field message in canonical
// field order.
type RecordVerdict struct {
	Overall Severity                `json:"overall"`
	Fields  map[string]FieldVerdict `json:"fields"`
	Summary string                  `json:"summary"`
}

// Annotate writes the verdict onto the record as the three annotation
// keys. Existing fields are never removed or reordered.
func (v RecordVerdict) Annotate(rec Record) {
	rec[KeyValidationStatus] = v.Overall.String()
	rec[KeyValidationMessage] = v.Summary
	rec[KeyFieldValidation] = v.Fields
}

// buildSummary joins the messages of non-valid fields in FieldOrder.
func buildSummary(fields map[string]FieldVerdict) string {
	var messages []string
	for _, name := range FieldOrder {
		fv, ok := fields[name]
		if !ok {
			continue
		}
		if fv.Status != Valid && fv.Message != "" {
			messages = append(messages, fv.Message)
		}
	}

	if len(messages) == 0 {
		return AllFieldsValid
	}
	return strings.Join(messages, "; ")
}

// appendSummary appends a batch-level message to an existing summary,
// replacing the all-valid placeholder.
func appendSummary(summary, msg string) string {
	if summary == "" || summary == AllFieldsValid {
		return msg
	}
	return summary + "; " + msg
}

// overallSeverity computes the maximum severity across field verdicts.
func overallSeverity(fields map[string]FieldVerdict) Severity {
	overall := Valid
	for _, fv := range fields {
		overall = overall.Max(fv.Status)
	}
	return overall
}
