// Package seed populates an empty installation with a starter test
// catalog so the lab can register patients immediately.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medlab/medlab/internal/domain/catalog"
)

func ts(day int) time.Time {
	return time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC)
}

// Catalog returns the starter test definitions.
func Catalog() []*catalog.Test {
	return []*catalog.Test{
		{
			ID: "t1", Name: "Complete Blood Count (CBC)", Category: "Hematology", Price: 800,
			Parameters: []catalog.Parameter{
				{Name: "Hemoglobin", Unit: "g/dL", NormalRange: "13.5-17.5"},
				{Name: "White Blood Cells", Unit: "K/uL", NormalRange: "4.5-11.0"},
				{Name: "Platelets", Unit: "K/uL", NormalRange: "150-450"},
			},
			CreatedAt: ts(1),
		},
		{
			ID: "t2", Name: "Lipid Profile", Category: "Biochemistry", Price: 1200,
			Parameters: []catalog.Parameter{
				{Name: "Total Cholesterol", Unit: "mg/dL", NormalRange: "<200"},
				{Name: "HDL Cholesterol", Unit: "mg/dL", NormalRange: ">40"},
				{Name: "LDL Cholesterol", Unit: "mg/dL", NormalRange: "<100"},
				{Name: "Triglycerides", Unit: "mg/dL", NormalRange: "<150"},
			},
			CreatedAt: ts(2),
		},
		{
			ID: "t3", Name: "Blood Glucose", Category: "Biochemistry", Price: 500,
			Parameters: []catalog.Parameter{
				{Name: "Fasting Blood Sugar", Unit: "mg/dL", NormalRange: "70-100"},
			},
			CreatedAt: ts(3),
		},
		{
			ID: "t4", Name: "Liver Function Test", Category: "Biochemistry", Price: 1500,
			Parameters: []catalog.Parameter{
				{Name: "ALT", Unit: "U/L", NormalRange: "7-56"},
				{Name: "AST", Unit: "U/L", NormalRange: "5-40"},
				{Name: "Bilirubin", Unit: "mg/dL", NormalRange: "0.1-1.2"},
			},
			CreatedAt: ts(4),
		},
		{
			ID: "t5", Name: "Thyroid Profile", Category: "Endocrinology", Price: 1800,
			Parameters: []catalog.Parameter{
				{Name: "TSH", Unit: "uIU/mL", NormalRange: "0.4-4.0"},
				{Name: "T3", Unit: "ng/dL", NormalRange: "80-200"},
				{Name: "T4", Unit: "ug/dL", NormalRange: "5.0-12.0"},
			},
			CreatedAt: ts(5),
		},
	}
}

// Run seeds the starter catalog when the installation has no tests yet.
// A non-empty catalog is left untouched.
func Run(ctx context.Context, tests catalog.Repository, log zerolog.Logger) error {
	existing, err := tests.List(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Debug().Int("tests", len(existing)).Msg("catalog already populated, skipping seed")
		return nil
	}
	for _, test := range Catalog() {
		if err := tests.Create(ctx, test); err != nil {
			return fmt.Errorf("seed test %s: %w", test.ID, err)
		}
	}
	log.Info().Int("tests", len(Catalog())).Msg("seeded starter test catalog")
	return nil
}
