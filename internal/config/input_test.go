package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser() *InputParser {
	return &InputParser{Now: func() time.Time {
		return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	}}
}

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func validInput() *domain.DeductionInput {
	general := yen(80000)
	return &domain.DeductionInput{
		Salary:              yen(5000000),
		Ideco:               &domain.IdecoInput{AnnualPayment: yen(276000)},
		LifeInsurance:       &domain.LifeInsuranceInput{IsNewSystem: true, GeneralLifeInsurance: &general},
		EarthquakeInsurance: &domain.EarthquakeInsuranceInput{AnnualPayment: yen(30000)},
		MedicalExpense:      &domain.MedicalExpenseInput{TotalExpense: yen(150000)},
		Donation:            &domain.DonationInput{Furusato: yen(50000), Other: yen(0)},
		SpecialExpense:      &domain.SpecialExpenseInput{CommuteExpense: yen(0)},
		HousingLoan: &domain.HousingLoanInput{
			YearEndBalance: yen(30000000),
			ResidenceYear:  2024,
			HousingType:    domain.HousingNewCertified,
		},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	parser := fixedParser()

	assert.NoError(t, parser.ValidateInput(validInput()))
	assert.NoError(t, parser.ValidateInput(&domain.DeductionInput{Salary: yen(1000000)}))
	assert.NoError(t, parser.ValidateInput(&domain.DeductionInput{Salary: yen(99990000)}))
}

func TestValidateInput_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.DeductionInput)
		path   string
	}{
		{"salary too low", func(in *domain.DeductionInput) { in.Salary = yen(999999) }, "salary"},
		{"salary too high", func(in *domain.DeductionInput) { in.Salary = yen(99990001) }, "salary"},
		{"ideco above annual limit", func(in *domain.DeductionInput) { in.Ideco.AnnualPayment = yen(816001) }, "ideco.annual_payment"},
		{"negative ideco", func(in *domain.DeductionInput) { in.Ideco.AnnualPayment = yen(-1) }, "ideco.annual_payment"},
		{"negative life premium", func(in *domain.DeductionInput) {
			neg := yen(-100)
			in.LifeInsurance.MedicalCareInsurance = &neg
		}, "life_insurance.medical_care_insurance"},
		{"earthquake premium too high", func(in *domain.DeductionInput) { in.EarthquakeInsurance.AnnualPayment = yen(100001) }, "earthquake_insurance.annual_payment"},
		{"medical expense too high", func(in *domain.DeductionInput) { in.MedicalExpense.TotalExpense = yen(10000001) }, "medical_expense.total_expense"},
		{"negative furusato", func(in *domain.DeductionInput) { in.Donation.Furusato = yen(-1) }, "donation.furusato"},
		{"commute too high", func(in *domain.DeductionInput) { in.SpecialExpense.CommuteExpense = yen(10000001) }, "special_expense.commute_expense"},
		{"loan balance too high", func(in *domain.DeductionInput) { in.HousingLoan.YearEndBalance = yen(100000001) }, "housing_loan.year_end_balance"},
		{"residence year too early", func(in *domain.DeductionInput) { in.HousingLoan.ResidenceYear = 2014 }, "housing_loan.residence_year"},
		{"residence year in the future", func(in *domain.DeductionInput) { in.HousingLoan.ResidenceYear = 2026 }, "housing_loan.residence_year"},
		{"unknown housing type", func(in *domain.DeductionInput) { in.HousingLoan.HousingType = "castle" }, "housing_loan.housing_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			err := fixedParser().ValidateInput(input)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.path, verr.Fields[0].Path)
			assert.Contains(t, err.Error(), tt.path+": ")
		})
	}
}

func TestValidateInput_CollectsAllErrors(t *testing.T) {
	input := validInput()
	input.Salary = yen(0)
	input.Ideco.AnnualPayment = yen(900000)
	input.HousingLoan.HousingType = "castle"

	err := fixedParser().ValidateInput(input)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, "invalid input: salary: must be at least 1000000, ideco.annual_payment: must be at most 816000, "+
		"housing_loan.housing_type: unknown housing type \"castle\"", err.Error())
}

func TestValidateInput_ResidenceYearBoundedByTables(t *testing.T) {
	at := func(year int) func() time.Time {
		return func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
	}

	tests := []struct {
		name    string
		now     int
		year    int
		wantErr string
	}{
		{"last table year", 2027, 2025, ""},
		{"after last table year", 2027, 2026, "must be 2025 or earlier"},
		{"current year before last table year", 2024, 2025, "must be 2024 or earlier"},
		{"legacy year", 2027, 2019, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewInputParserForTables(taxtable.Default())
			parser.Now = at(tt.now)
			assert.Equal(t, 2025, parser.LastResidenceYear)

			input := validInput()
			input.HousingLoan.ResidenceYear = tt.year
			err := parser.ValidateInput(input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "housing_loan.residence_year: "+tt.wantErr)
		})
	}

	unbounded := NewInputParserForTables(nil)
	unbounded.Now = at(2027)
	input := validInput()
	input.HousingLoan.ResidenceYear = 2026
	assert.NoError(t, unbounded.ValidateInput(input), "without tables only the calendar year bounds")
}

func TestValidateInput_Nil(t *testing.T) {
	assert.Error(t, fixedParser().ValidateInput(nil))
}

func TestLoadFromFile_YAML(t *testing.T) {
	content := `salary: 5000000
ideco:
  annual_payment: 276000
life_insurance:
  is_new_system: true
  general_life_insurance: 80000
donation:
  furusato: 52000
  other: 0
housing_loan:
  year_end_balance: 30000000
  residence_year: 2024
  housing_type: new-certified
`
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	input, err := fixedParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, input.Salary.Equal(yen(5000000)))
	require.NotNil(t, input.Ideco)
	assert.True(t, input.Ideco.AnnualPayment.Equal(yen(276000)))
	require.NotNil(t, input.LifeInsurance)
	assert.True(t, input.LifeInsurance.IsNewSystem)
	require.NotNil(t, input.LifeInsurance.GeneralLifeInsurance)
	assert.Nil(t, input.LifeInsurance.PersonalPensionInsurance)
	assert.True(t, input.Donation.Total().Equal(yen(52000)))
	assert.Nil(t, input.MedicalExpense, "absent groups stay nil")
	assert.Equal(t, domain.HousingNewCertified, input.HousingLoan.HousingType)
	assert.Equal(t, 2024, input.HousingLoan.ResidenceYear)
}

func TestLoadFromFile_JSON(t *testing.T) {
	content := `{"salary": 8000000, "ideco": {"annual_payment": 816000}}`
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	input, err := fixedParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, input.Salary.Equal(yen(8000000)))
	assert.True(t, input.Ideco.AnnualPayment.Equal(yen(816000)))
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := fixedParser().LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("salary: [unclosed"), 0o644))
	_, err = fixedParser().LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("salary: 500000\n"), 0o644))
	_, err = fixedParser().LoadFromFile(invalid)
	require.Error(t, err)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
