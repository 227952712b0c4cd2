package domain

import "github.com/shopspring/decimal"

// DeductionSummary holds every income deduction applied in one scenario
type DeductionSummary struct {
	Ideco               decimal.Decimal `yaml:"ideco" json:"ideco"`
	LifeInsurance       decimal.Decimal `yaml:"life_insurance" json:"life_insurance"`
	EarthquakeInsurance decimal.Decimal `yaml:"earthquake_insurance" json:"earthquake_insurance"`
	MedicalExpense      decimal.Decimal `yaml:"medical_expense" json:"medical_expense"`
	Donation            decimal.Decimal `yaml:"donation" json:"donation"`
	SpecialExpense      decimal.Decimal `yaml:"special_expense" json:"special_expense"`
	BasicDeduction      decimal.Decimal `yaml:"basic_deduction" json:"basic_deduction"`
	SocialInsurance     decimal.Decimal `yaml:"social_insurance" json:"social_insurance"`
}

// Total sums all deductions
func (d DeductionSummary) Total() decimal.Decimal {
	return decimal.Sum(d.Ideco,
		d.LifeInsurance,
		d.EarthquakeInsurance,
		d.MedicalExpense,
		d.Donation,
		d.SpecialExpense,
		d.BasicDeduction,
		d.SocialInsurance)
}

// DeductionDetail is the deduction summary plus the housing loan tax credit
type DeductionDetail struct {
	DeductionSummary     `yaml:",inline" json:",inline"`
	HousingLoanTaxCredit decimal.Decimal `yaml:"housing_loan_tax_credit" json:"housing_loan_tax_credit"`
}

// TaxCalculationDetail is the tax computation for one scenario
type TaxCalculationDetail struct {
	SalaryIncome   decimal.Decimal `yaml:"salary_income" json:"salary_income"`
	TotalDeduction decimal.Decimal `yaml:"total_deduction" json:"total_deduction"`
	TaxableIncome  decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	IncomeTax      decimal.Decimal `yaml:"income_tax" json:"income_tax"`
	ResidentTax    decimal.Decimal `yaml:"resident_tax" json:"resident_tax"`
}

// RefundBreakdown compares the baseline and full scenarios
type RefundBreakdown struct {
	BeforeDeduction   TaxCalculationDetail `yaml:"before_deduction" json:"before_deduction"`
	AfterDeduction    TaxCalculationDetail `yaml:"after_deduction" json:"after_deduction"`
	Deductions        DeductionDetail      `yaml:"deductions" json:"deductions"`
	ApplicableTaxRate decimal.Decimal      `yaml:"applicable_tax_rate" json:"applicable_tax_rate"`
}

// RefundResult is the outcome of one refund estimate
type RefundResult struct {
	TotalRefund          decimal.Decimal `yaml:"total_refund" json:"total_refund"`
	IncomeTaxRefund      decimal.Decimal `yaml:"income_tax_refund" json:"income_tax_refund"`
	ResidentTaxReduction decimal.Decimal `yaml:"resident_tax_reduction" json:"resident_tax_reduction"`
	Breakdown            RefundBreakdown `yaml:"breakdown" json:"breakdown"`
}
