package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// Model is a linear demand predictor exported by the offline training job.
// Weekday holds seven offsets indexed Sunday..Saturday.
type Model struct {
	SKU         string     `yaml:"-" json:"sku"`
	Intercept   float64    `yaml:"intercept" json:"intercept"`
	Temperature float64    `yaml:"temperature" json:"temperature"`
	Rainfall    float64    `yaml:"rainfall" json:"rainfall"`
	Holiday     float64    `yaml:"holiday" json:"holiday"`
	Weekday     [7]float64 `yaml:"weekday" json:"weekday"`
	Trend       float64    `yaml:"trend" json:"trend"`
	Origin      string     `yaml:"origin" json:"origin"` // YYYY-MM-DD the trend counts from
}

// Input is one prediction request.
type Input struct {
	Date        time.Time
	Temperature float64
	Rainfall    float64
	Holiday     bool
}

// Predict evaluates the model and returns a point estimate of units
// demanded, clamped at zero and rounded to two decimals.
func (m *Model) Predict(in Input) decimal.Decimal {
	estimate := m.Intercept +
		m.Temperature*in.Temperature +
		m.Rainfall*in.Rainfall +
		m.Weekday[int(in.Date.Weekday())]

	if in.Holiday {
		estimate += m.Holiday
	}

	if origin, err := time.Parse("2006-01-02", m.Origin); err == nil {
		days := in.Date.Sub(origin).Hours() / 24
		estimate += m.Trend * days
	}

	if estimate < 0 {
		estimate = 0
	}
	return decimal.NewFromFloat(estimate).Round(2)
}
