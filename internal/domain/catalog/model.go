package catalog

import "time"

// Parameter is one measurable quantity within a test, e.g. Hemoglobin,
// with its unit and normal-range specification string ("13.5-17.5",
// "<200", ">40").
type Parameter struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normalRange"`
}

// Test is a reusable diagnostic test definition from the catalog, not a
// per-patient record. Reports reference it by id.
type Test struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Parameters []Parameter `json:"parameters"`
	Price      float64     `json:"price"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Update carries the fields a caller may change. Nil means "leave as is".
type Update struct {
	Name       *string      `json:"name"`
	Category   *string      `json:"category"`
	Parameters *[]Parameter `json:"parameters"`
	Price      *float64     `json:"price"`
}
