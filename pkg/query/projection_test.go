package query_test

import (
	"testing"

	"github.com/procuregpt/procure/pkg/query"
)

func TestProjectionMap(t *testing.T) {
	p := query.
		NewProjectionMap("records", "r").
		Project("id", "ID").
		Project("sku", "SKU")

	if got := p.Table(); got != "records" {
		t.Errorf("Table() = %q, want records", got)
	}
	if got := p.From(); got != "records r" {
		t.Errorf("From() = %q, want %q", got, "records r")
	}
	if got := p.Column("SKU"); got != "r.sku" {
		t.Errorf("Column(SKU) = %q, want r.sku", got)
	}
	if got := p.Column("Unmapped"); got != "Unmapped" {
		t.Errorf("Column(Unmapped) = %q, want passthrough", got)
	}
	if got := p.Columns(); got != "r.id, r.sku" {
		t.Errorf("Columns() = %q, want %q", got, "r.id, r.sku")
	}
}

func TestProjectionJoin(t *testing.T) {
	p := query.
		NewProjectionMap("records", "r").
		Project("id", "ID").
		Join("change_log", "c", "LEFT JOIN", "c.record_id = r.id").
		Project("field_name", "FieldName")

	want := "records r LEFT JOIN change_log c ON c.record_id = r.id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Column("FieldName"); got != "c.field_name" {
		t.Errorf("Column(FieldName) = %q, want c.field_name", got)
	}
}
