package validation

import (
	"encoding/json"
	"fmt"
)

// Severity is the ordered verdict level for a field or record.
// The ordering Valid < Warning < Error defines escalation: aggregation
// always takes the maximum, and batch-level annotation may only raise
// a severity, never lower it.
type Severity int

const (
	Valid Severity = iota
	Warning
	Error
)

var severityNames = map[Severity]string{
	Valid:   "valid",
	Warning: "warning",
	Error:   "error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Max returns the higher of the two severities.
func (s Severity) Max(other Severity) Severity {
	if other > s {
		return other
	}
	return s
}

// MarshalJSON encodes the severity as its lowercase string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its lowercase string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// ParseSeverity converts a status string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	for sev, name := range severityNames {
		if name == s {
			return sev, nil
		}
	}
	return Valid, fmt.Errorf("unknown severity: %q", s)
}
