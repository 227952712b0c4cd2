package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input limits. These are sanity bounds on what a user may declare, not
// statutory caps; statutory caps live in the tax tables.
var (
	MinSalary            = decimal.NewFromInt(1_000_000)
	MaxSalary            = decimal.NewFromInt(99_990_000)
	MaxIdecoPayment      = decimal.NewFromInt(816_000)
	MaxEarthquakePremium = decimal.NewFromInt(100_000)
	MaxMedicalExpense    = decimal.NewFromInt(10_000_000)
	MaxCommuteExpense    = decimal.NewFromInt(10_000_000)
	MaxLoanBalance       = decimal.NewFromInt(100_000_000)
)

// MinResidenceYear is the earliest residence year accepted for a housing loan
const MinResidenceYear = 2015

// FieldError is a single rejected input field
type FieldError struct {
	Path    string
	Message string
}

// ValidationError collects every rejected field of one input
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Path + ": " + f.Message
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

// InputParser loads and validates deduction input files
type InputParser struct {
	// Now returns the current time; the residence year may not be in the future
	Now func() time.Time
	// LastResidenceYear, when set, also caps the residence year at the last
	// year the tax tables cover
	LastResidenceYear int
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// NewInputParserForTables creates a parser that only accepts residence years
// the given tables can price
func NewInputParserForTables(tables *domain.TaxTables) *InputParser {
	ip := NewInputParser()
	if tables != nil {
		ip.LastResidenceYear = tables.HousingLoan.LastResidenceYear()
	}
	return ip
}

// LoadFromFile loads a deduction input from a YAML or JSON file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.DeductionInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.DeductionInput
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInput checks every field of input and reports all problems at once.
// It returns nil or a *ValidationError.
func (ip *InputParser) ValidateInput(input *domain.DeductionInput) error {
	if input == nil {
		return &ValidationError{Fields: []FieldError{{Path: "input", Message: "is required"}}}
	}

	v := &validator{}
	v.between("salary", input.Salary, MinSalary, MaxSalary)

	if input.Ideco != nil {
		v.between("ideco.annual_payment", input.Ideco.AnnualPayment, decimal.Zero, MaxIdecoPayment)
	}
	if li := input.LifeInsurance; li != nil {
		v.optionalNonNegative("life_insurance.general_life_insurance", li.GeneralLifeInsurance)
		v.optionalNonNegative("life_insurance.personal_pension_insurance", li.PersonalPensionInsurance)
		v.optionalNonNegative("life_insurance.medical_care_insurance", li.MedicalCareInsurance)
	}
	if input.EarthquakeInsurance != nil {
		v.between("earthquake_insurance.annual_payment", input.EarthquakeInsurance.AnnualPayment, decimal.Zero, MaxEarthquakePremium)
	}
	if input.MedicalExpense != nil {
		v.between("medical_expense.total_expense", input.MedicalExpense.TotalExpense, decimal.Zero, MaxMedicalExpense)
	}
	if input.Donation != nil {
		v.nonNegative("donation.furusato", input.Donation.Furusato)
		v.nonNegative("donation.other", input.Donation.Other)
	}
	if input.SpecialExpense != nil {
		v.between("special_expense.commute_expense", input.SpecialExpense.CommuteExpense, decimal.Zero, MaxCommuteExpense)
	}
	if hl := input.HousingLoan; hl != nil {
		v.between("housing_loan.year_end_balance", hl.YearEndBalance, decimal.Zero, MaxLoanBalance)
		ip.validateResidenceYear(v, hl.ResidenceYear)
		if !hl.HousingType.Valid() {
			v.add("housing_loan.housing_type", fmt.Sprintf("unknown housing type %q", hl.HousingType))
		}
	}

	if len(v.fields) > 0 {
		return &ValidationError{Fields: v.fields}
	}
	return nil
}

func (ip *InputParser) validateResidenceYear(v *validator, year int) {
	now := time.Now
	if ip.Now != nil {
		now = ip.Now
	}
	latest := now().Year()
	if ip.LastResidenceYear > 0 && ip.LastResidenceYear < latest {
		latest = ip.LastResidenceYear
	}
	switch {
	case year < MinResidenceYear:
		v.add("housing_loan.residence_year", fmt.Sprintf("must be %d or later", MinResidenceYear))
	case year > latest:
		v.add("housing_loan.residence_year", fmt.Sprintf("must be %d or earlier", latest))
	}
}

type validator struct {
	fields []FieldError
}

func (v *validator) add(path, message string) {
	v.fields = append(v.fields, FieldError{Path: path, Message: message})
}

func (v *validator) nonNegative(path string, value decimal.Decimal) {
	if value.IsNegative() {
		v.add(path, "must be 0 or more")
	}
}

func (v *validator) optionalNonNegative(path string, value *decimal.Decimal) {
	if value != nil {
		v.nonNegative(path, *value)
	}
}

func (v *validator) between(path string, value, min, max decimal.Decimal) {
	switch {
	case value.LessThan(min):
		v.add(path, fmt.Sprintf("must be at least %s", min.StringFixed(0)))
	case value.GreaterThan(max):
		v.add(path, fmt.Sprintf("must be at most %s", max.StringFixed(0)))
	}
}
