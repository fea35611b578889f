package importer

import (
	"strings"
	"testing"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		want    map[string]int // logical -> index, only the asserted ones
		missing []string       // expected SchemaError contents, nil = no error
	}{
		{
			name:   "canonical header",
			header: []string{"sku_id", "name", "category", "price", "quantity", "expiry", "description", "status"},
			want:   map[string]int{"sku": 0, "name": 1, "category": 2, "price": 3, "quantity": 4, "expiry": 5, "description": 6, "status": 7},
		},
		{
			name:   "alias spellings and mixed case",
			header: []string{"SKU", "Product_Name", "Cat", "Unit_Price", "QTY", "Expiration_Date", "Desc"},
			want:   map[string]int{"sku": 0, "name": 1, "category": 2, "price": 3, "quantity": 4, "expiry": 5, "description": 6},
		},
		{
			name:   "padded header cells",
			header: []string{" sku ", " name", "category "},
			want:   map[string]int{"sku": 0, "name": 1, "category": 2},
		},
		{
			name:   "optional columns absent is fine",
			header: []string{"skuid", "title", "category_name"},
			want:   map[string]int{"sku": 0, "name": 1, "category": 2},
		},
		{
			name:    "missing category is fatal",
			header:  []string{"sku", "name", "price"},
			missing: []string{"category"},
		},
		{
			name:    "missing everything required",
			header:  []string{"price", "quantity"},
			missing: []string{"sku", "name", "category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := resolveColumns(tt.header)

			if tt.missing != nil {
				if err == nil {
					t.Fatalf("expected SchemaError, got mapping %v", cols)
				}
				if strings.Join(err.Missing, ",") != strings.Join(tt.missing, ",") {
					t.Errorf("missing = %v, want %v", err.Missing, tt.missing)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for logical, idx := range tt.want {
				if got, ok := cols[logical]; !ok || got != idx {
					t.Errorf("cols[%q] = %d (present=%v), want %d", logical, got, ok, idx)
				}
			}
		})
	}
}

func TestFieldShortRow(t *testing.T) {
	cols := map[string]int{"sku": 0, "name": 1, "description": 5}
	row := []string{"A-1", " Apple "}

	if got := field(row, cols, "sku"); got != "A-1" {
		t.Errorf("field(sku) = %q, want A-1", got)
	}
	if got := field(row, cols, "name"); got != "Apple" {
		t.Errorf("field(name) = %q, want trimmed Apple", got)
	}
	if got := field(row, cols, "description"); got != "" {
		t.Errorf("field(description) on short row = %q, want empty", got)
	}
	if got := field(row, cols, "status"); got != "" {
		t.Errorf("field(unresolved column) = %q, want empty", got)
	}
}
