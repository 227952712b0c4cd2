package integration

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/config"
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/output"
	"github.com/rgehrsitz/kanpu/internal/storage"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
)

func fixedParser() *config.InputParser {
	p := config.NewInputParser()
	p.Now = func() time.Time { return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC) }
	return p
}

func estimate(t *testing.T, file string) *domain.RefundResult {
	t.Helper()
	input, err := fixedParser().LoadFromFile(filepath.Join("..", "testdata", file))
	require.NoError(t, err, "Should load %s", file)

	result, err := calculation.NewRefundCalculator(taxtable.Default()).Calculate(input)
	require.NoError(t, err)
	return result
}

// TestEndToEnd loads input files, runs the estimate and formats the result
func TestEndToEnd(t *testing.T) {
	tests := []struct {
		file        string
		total       int64
		incomeTax   int64
		residentTax int64
	}{
		{"ideco_input.yaml", 55_200, 27_600, 27_600},
		{"housing_input.json", 210_000, 135_500, 74_500},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result := estimate(t, tt.file)
			assert.True(t, result.TotalRefund.Equal(decimal.NewFromInt(tt.total)), "total: got %s", result.TotalRefund)
			assert.True(t, result.IncomeTaxRefund.Equal(decimal.NewFromInt(tt.incomeTax)), "income tax: got %s", result.IncomeTaxRefund)
			assert.True(t, result.ResidentTaxReduction.Equal(decimal.NewFromInt(tt.residentTax)), "resident tax: got %s", result.ResidentTaxReduction)
		})
	}
}

func TestEndToEnd_AllDeductions(t *testing.T) {
	result := estimate(t, "full_input.yaml")
	d := result.Breakdown.Deductions

	assert.True(t, result.TotalRefund.Equal(result.IncomeTaxRefund.Add(result.ResidentTaxReduction)))
	assert.True(t, result.TotalRefund.IsPositive())
	for name, v := range map[string]decimal.Decimal{
		"ideco":          d.Ideco,
		"life":           d.LifeInsurance,
		"earthquake":     d.EarthquakeInsurance,
		"medical":        d.MedicalExpense,
		"donation":       d.Donation,
		"housing credit": d.HousingLoanTaxCredit,
	} {
		assert.True(t, v.IsPositive(), "%s deduction should apply, got %s", name, v)
	}
	assert.True(t, d.SpecialExpense.IsZero())
	assert.True(t, result.Breakdown.AfterDeduction.TaxableIncome.LessThan(result.Breakdown.BeforeDeduction.TaxableIncome))

	for _, name := range output.FormatterNames() {
		f := output.GetFormatterByName(name)
		require.NotNil(t, f, name)
		data, err := f.Format(result)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	data, err := output.GetFormatterByName("json").Format(result)
	require.NoError(t, err)
	var decoded domain.RefundResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.TotalRefund.Equal(result.TotalRefund))
}

// TestStoredTables runs the estimate against the dataset kept by the provider
func TestStoredTables(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	provider := storage.NewTableProvider(storage.NewTableRepository(dir, nil), nil)

	tables, err := provider.Current(now)
	require.NoError(t, err)

	input, err := fixedParser().LoadFromFile(filepath.Join("..", "testdata", "ideco_input.yaml"))
	require.NoError(t, err)
	result, err := calculation.NewRefundCalculator(tables).Calculate(input)
	require.NoError(t, err)
	assert.True(t, result.TotalRefund.Equal(decimal.NewFromInt(55_200)))

	again, err := provider.Current(now.Add(24 * time.Hour))
	require.NoError(t, err)
	assert.True(t, again.LastUpdated.Equal(tables.LastUpdated), "fresh tables are reused")
}
