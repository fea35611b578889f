package forecast

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const sampleModelYAML = `intercept: 10.0
temperature: 0.5
rainfall: -0.25
holiday: 4.0
weekday: [0.0, 1.0, 1.5, 1.5, 2.0, 3.0, 2.5]
trend: 0.1
origin: "2026-01-01"
`

func writeModel(t *testing.T, dir, sku, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, sku+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "MILK-1L", sampleModelYAML)
	store := NewStore(dir)

	// Lookup is case-insensitive and whitespace-tolerant.
	m, err := store.Load("  milk-1l ")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.SKU != "MILK-1L" {
		t.Errorf("SKU = %q, want MILK-1L", m.SKU)
	}
	if m.Intercept != 10.0 || m.Temperature != 0.5 || m.Rainfall != -0.25 {
		t.Errorf("coefficients = %+v", m)
	}
	if m.Weekday[0] != 0.0 || m.Weekday[6] != 2.5 {
		t.Errorf("weekday offsets = %v", m.Weekday)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	if _, err := store.Load("NOPE-1"); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("missing artifact err = %v, want ErrModelNotFound", err)
	}
	if _, err := store.Load("   "); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("blank sku err = %v, want ErrModelNotFound", err)
	}
}

func TestStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "BAD-1", "intercept: [not a number")
	store := NewStore(dir)

	_, err := store.Load("BAD-1")
	if err == nil || errors.Is(err, ErrModelNotFound) {
		t.Errorf("malformed artifact err = %v, want a parse error", err)
	}
}

func TestPredict(t *testing.T) {
	m := &Model{
		Intercept:   10.0,
		Temperature: 0.5,
		Rainfall:    -0.25,
		Holiday:     4.0,
		Weekday:     [7]float64{0, 1, 1.5, 1.5, 2, 3, 2.5},
		Trend:       0.1,
		Origin:      "2026-01-01",
	}

	// 2026-01-11 is a Sunday, ten days past the trend origin.
	date := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			"base terms",
			Input{Date: date, Temperature: 20, Rainfall: 4},
			// 10 + 0.5*20 - 0.25*4 + weekday[0] + 0.1*10
			"20",
		},
		{
			"holiday uplift",
			Input{Date: date, Temperature: 20, Rainfall: 4, Holiday: true},
			"24",
		},
		{
			"weekday offset",
			// The Saturday before, nine days past origin.
			Input{Date: date.AddDate(0, 0, -1), Temperature: 20, Rainfall: 4},
			"22.4",
		},
		{
			"clamped at zero",
			Input{Date: date, Temperature: -100, Rainfall: 0},
			"0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Predict(tt.in)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Predict = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPredictIgnoresTrendWithoutOrigin(t *testing.T) {
	m := &Model{Intercept: 5, Trend: 100}

	got := m.Predict(Input{Date: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)})
	if !got.Equal(decimal.RequireFromString("5")) {
		t.Errorf("Predict = %s, want 5 with an unset origin", got)
	}
}
