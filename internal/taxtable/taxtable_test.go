package taxtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	tables := Default()
	require.NoError(t, Validate(tables))
	assert.Equal(t, DefaultVersion, tables.Version)
	assert.Len(t, tables.SalaryDeduction, 6)
	assert.Len(t, tables.IncomeTaxRates, 7)
	assert.Len(t, tables.HousingLoan.Limits, 4)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.BasicDeduction = decimal.NewFromInt(1)
	a.HousingLoan.Limits[2024][domain.HousingUsed] = domain.HousingLoanLimit{}

	assert.True(t, b.BasicDeduction.Equal(decimal.NewFromInt(480000)))
	assert.True(t, b.HousingLoan.Limits[2024][domain.HousingUsed].Limit.Equal(decimal.NewFromInt(30000000)))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TaxTables)
		errMsg string
	}{
		{
			name:   "missing version",
			mutate: func(tt *domain.TaxTables) { tt.Version = "" },
			errMsg: "version is required",
		},
		{
			name: "gap between income tax brackets",
			mutate: func(tt *domain.TaxTables) {
				m := decimal.NewFromInt(1949000)
				tt.IncomeTaxRates[0].Max = &m
			},
			errMsg: "gap or overlap",
		},
		{
			name: "overlapping salary brackets",
			mutate: func(tt *domain.TaxTables) {
				tt.SalaryDeduction[1].Min = decimal.NewFromInt(1600000)
			},
			errMsg: "gap or overlap",
		},
		{
			name: "bounded last bracket",
			mutate: func(tt *domain.TaxTables) {
				m := decimal.NewFromInt(99999999)
				tt.IncomeTaxRates[len(tt.IncomeTaxRates)-1].Max = &m
			},
			errMsg: "last bracket must be unbounded",
		},
		{
			name: "first bracket not at zero",
			mutate: func(tt *domain.TaxTables) {
				tt.IncomeTaxRates[0].Min = decimal.NewFromInt(1)
			},
			errMsg: "first bracket must start at 0",
		},
		{
			name: "salary entry with both forms",
			mutate: func(tt *domain.TaxTables) {
				r := decimal.NewFromFloat(0.1)
				tt.SalaryDeduction[0].Rate = &r
				tt.SalaryDeduction[0].Adjustment = &r
			},
			errMsg: "exactly one of deduction or rate+adjustment",
		},
		{
			name: "missing housing type",
			mutate: func(tt *domain.TaxTables) {
				delete(tt.HousingLoan.Limits[2023], domain.HousingUsed)
			},
			errMsg: "missing housing type used",
		},
		{
			name: "limit year inside legacy regime",
			mutate: func(tt *domain.TaxTables) {
				tt.HousingLoan.Limits[2020] = tt.HousingLoan.Limits[2022]
			},
			errMsg: "overlaps legacy regime",
		},
		{
			name:   "negative basic deduction",
			mutate: func(tt *domain.TaxTables) { tt.BasicDeduction = decimal.NewFromInt(-1) },
			errMsg: "basic_deduction cannot be negative",
		},
		{
			name:   "negative medical threshold",
			mutate: func(tt *domain.TaxTables) { tt.MedicalExpense.Threshold = decimal.NewFromInt(-100000) },
			errMsg: "medical_expense.threshold cannot be negative",
		},
		{
			name:   "negative medical income rate",
			mutate: func(tt *domain.TaxTables) { tt.MedicalExpense.IncomeRate = decimal.RequireFromString("-0.05") },
			errMsg: "medical_expense.income_rate cannot be negative",
		},
		{
			name:   "negative donation income limit",
			mutate: func(tt *domain.TaxTables) { tt.Donation.IncomeLimitRate = decimal.RequireFromString("-0.4") },
			errMsg: "donation.income_limit_rate cannot be negative",
		},
		{
			name:   "negative resident credit rate",
			mutate: func(tt *domain.TaxTables) { tt.ResidentTaxCredit.Rate = decimal.RequireFromString("-0.07") },
			errMsg: "resident_tax_credit.rate cannot be negative",
		},
		{
			name:   "negative legacy balance cap",
			mutate: func(tt *domain.TaxTables) { tt.HousingLoan.Legacy.GeneralBalanceCap = decimal.NewFromInt(-1) },
			errMsg: "housing_loan.legacy.general_balance_cap cannot be negative",
		},
		{
			name:   "negative legacy max credit",
			mutate: func(tt *domain.TaxTables) { tt.HousingLoan.Legacy.CertifiedMaxCredit = decimal.NewFromInt(-1) },
			errMsg: "housing_loan.legacy.certified_max_credit cannot be negative",
		},
		{
			name:   "no life insurance tiers",
			mutate: func(tt *domain.TaxTables) { tt.LifeInsurance.Old = nil },
			errMsg: "life_insurance.old",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := Default()
			tt.mutate(tables)
			err := Validate(tables)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMarshalParse_RoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(Default(), format)
			require.NoError(t, err)

			parsed, err := Parse(data, format)
			require.NoError(t, err)

			want := Default()
			assert.Equal(t, want.Version, parsed.Version)
			assert.True(t, want.LastUpdated.Equal(parsed.LastUpdated))
			require.Len(t, parsed.IncomeTaxRates, len(want.IncomeTaxRates))
			for i := range want.IncomeTaxRates {
				assert.True(t, want.IncomeTaxRates[i].Rate.Equal(parsed.IncomeTaxRates[i].Rate), "rate %d", i)
				assert.True(t, want.IncomeTaxRates[i].Deduction.Equal(parsed.IncomeTaxRates[i].Deduction), "deduction %d", i)
			}
			assert.Nil(t, parsed.IncomeTaxRates[len(parsed.IncomeTaxRates)-1].Max)
			require.NotNil(t, parsed.SalaryDeduction[1].Adjustment)
			assert.True(t, parsed.SalaryDeduction[1].Adjustment.Equal(decimal.NewFromInt(-100000)))
			assert.True(t, parsed.HousingLoan.Limits[2022][domain.HousingNewOther].Limit.Equal(decimal.NewFromInt(30000000)))
			assert.Equal(t, 10, parsed.HousingLoan.Limits[2025][domain.HousingUsed].Years)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	data, err := Marshal(Default(), "yaml")
	require.NoError(t, err)
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tables, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, tables.Version)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: \"\"\n"), 0o644))
	_, err = LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax table validation failed")
}

func TestMarshal_UnsupportedFormat(t *testing.T) {
	_, err := Marshal(Default(), "toml")
	assert.Error(t, err)
}
