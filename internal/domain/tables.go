package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxTables is the complete statutory dataset for one tax year.
// Bracket bounds are whole yen and inclusive on both ends; a nil Max is unbounded.
type TaxTables struct {
	Version     string    `yaml:"version" json:"version"`
	LastUpdated time.Time `yaml:"last_updated" json:"last_updated"`

	SalaryDeduction []SalaryDeductionEntry `yaml:"salary_deduction" json:"salary_deduction"`
	IncomeTaxRates  []TaxRateEntry         `yaml:"income_tax_rates" json:"income_tax_rates"`

	BasicDeduction      decimal.Decimal `yaml:"basic_deduction" json:"basic_deduction"`
	ResidentTaxRate     decimal.Decimal `yaml:"resident_tax_rate" json:"resident_tax_rate"`
	SocialInsuranceRate decimal.Decimal `yaml:"social_insurance_rate" json:"social_insurance_rate"`

	LifeInsurance          LifeInsuranceRules     `yaml:"life_insurance" json:"life_insurance"`
	EarthquakeInsuranceMax decimal.Decimal        `yaml:"earthquake_insurance_max" json:"earthquake_insurance_max"`
	MedicalExpense         MedicalExpenseRules    `yaml:"medical_expense" json:"medical_expense"`
	Donation               DonationRules          `yaml:"donation" json:"donation"`
	HousingLoan            HousingLoanRules       `yaml:"housing_loan" json:"housing_loan"`
	ResidentTaxCredit      ResidentTaxCreditRules `yaml:"resident_tax_credit" json:"resident_tax_credit"`
}

// SalaryDeductionEntry is one band of the employment income deduction table.
// Either Deduction is set (fixed amount) or Rate and Adjustment are.
type SalaryDeductionEntry struct {
	Min        decimal.Decimal  `yaml:"min" json:"min"`
	Max        *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Deduction  *decimal.Decimal `yaml:"deduction,omitempty" json:"deduction,omitempty"`
	Rate       *decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	Adjustment *decimal.Decimal `yaml:"adjustment,omitempty" json:"adjustment,omitempty"`
}

// TaxRateEntry is one band of the quick-calculation income tax table
type TaxRateEntry struct {
	Min       decimal.Decimal  `yaml:"min" json:"min"`
	Max       *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal  `yaml:"deduction" json:"deduction"`
}

// Contains reports whether the whole-yen amount x falls inside the band
func (e TaxRateEntry) Contains(x decimal.Decimal) bool {
	return bandContains(e.Min, e.Max, x)
}

// Contains reports whether the whole-yen amount x falls inside the band
func (e SalaryDeductionEntry) Contains(x decimal.Decimal) bool {
	return bandContains(e.Min, e.Max, x)
}

func bandContains(min decimal.Decimal, max *decimal.Decimal, x decimal.Decimal) bool {
	if x.LessThan(min) {
		return false
	}
	return max == nil || x.LessThanOrEqual(*max)
}

// LifeInsuranceTier computes floor(payment*Rate + Addition) for payments up to PaymentMax
type LifeInsuranceTier struct {
	PaymentMax *decimal.Decimal `yaml:"payment_max,omitempty" json:"payment_max,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
	Addition   decimal.Decimal  `yaml:"addition" json:"addition"`
}

// LifeInsuranceRules holds the per-category tiers and overall caps of both systems
type LifeInsuranceRules struct {
	New    []LifeInsuranceTier `yaml:"new" json:"new"`
	Old    []LifeInsuranceTier `yaml:"old" json:"old"`
	MaxNew decimal.Decimal     `yaml:"max_new" json:"max_new"`
	MaxOld decimal.Decimal     `yaml:"max_old" json:"max_old"`
}

// MedicalExpenseRules holds the medical expense deduction parameters
type MedicalExpenseRules struct {
	Threshold  decimal.Decimal `yaml:"threshold" json:"threshold"`
	IncomeRate decimal.Decimal `yaml:"income_rate" json:"income_rate"`
	Max        decimal.Decimal `yaml:"max" json:"max"`
}

// DonationRules holds the donation deduction parameters
type DonationRules struct {
	SelfBurden      decimal.Decimal `yaml:"self_burden" json:"self_burden"`
	IncomeLimitRate decimal.Decimal `yaml:"income_limit_rate" json:"income_limit_rate"`
}

// HousingLoanLimit is the balance ceiling and credit period for one year and housing type.
// A zero Limit means the combination is not eligible.
type HousingLoanLimit struct {
	Limit decimal.Decimal `yaml:"limit" json:"limit"`
	Years int             `yaml:"years" json:"years"`
}

// HousingLoanRules holds the current and pre-2022 housing loan credit regimes
type HousingLoanRules struct {
	Rate   decimal.Decimal                          `yaml:"rate" json:"rate"`
	Limits map[int]map[HousingType]HousingLoanLimit `yaml:"limits" json:"limits"`
	Legacy LegacyHousingLoanRules                   `yaml:"legacy" json:"legacy"`
}

// LastResidenceYear is the latest residence year the rules have a limit for
func (r HousingLoanRules) LastResidenceYear() int {
	last := r.Legacy.LastYear
	for year := range r.Limits {
		if year > last {
			last = year
		}
	}
	return last
}

// LegacyHousingLoanRules covers residence years up to and including LastYear
type LegacyHousingLoanRules struct {
	LastYear            int             `yaml:"last_year" json:"last_year"`
	Rate                decimal.Decimal `yaml:"rate" json:"rate"`
	CertifiedBalanceCap decimal.Decimal `yaml:"certified_balance_cap" json:"certified_balance_cap"`
	CertifiedMaxCredit  decimal.Decimal `yaml:"certified_max_credit" json:"certified_max_credit"`
	GeneralBalanceCap   decimal.Decimal `yaml:"general_balance_cap" json:"general_balance_cap"`
	GeneralMaxCredit    decimal.Decimal `yaml:"general_max_credit" json:"general_max_credit"`
}

// ResidentTaxCreditRules caps the housing credit carried over to resident tax
type ResidentTaxCreditRules struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
}
