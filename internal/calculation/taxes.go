package calculation

import (
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Salary is the only income. Taxable income is salary income minus the
//    sum of income deductions, never below zero.
//
// 2. Every statutory step is truncated to whole yen (floor).
//
// 3. Resident tax is the flat income-levy portion only; the per-capita
//    levy and the resident-tax specific deduction amounts are not modelled.
//
// 4. The special reconstruction income tax surcharge is not included.

// TaxCalculator computes salary income, taxable income and the two taxes
// from a tax table dataset
type TaxCalculator struct {
	tables *domain.TaxTables
}

// NewTaxCalculator creates a tax calculator over the given tables
func NewTaxCalculator(tables *domain.TaxTables) *TaxCalculator {
	return &TaxCalculator{tables: tables}
}

// CalculateSalaryIncome subtracts the employment income deduction from gross salary
func (tc *TaxCalculator) CalculateSalaryIncome(salaryRevenue decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate salary income"
	if salaryRevenue.IsNegative() {
		return decimal.Zero, invalidArgument(op, "salary revenue cannot be negative: %s", salaryRevenue)
	}

	lookup := salaryRevenue.Floor()
	for _, entry := range tc.tables.SalaryDeduction {
		if !entry.Contains(lookup) {
			continue
		}
		var deduction decimal.Decimal
		if entry.Deduction != nil {
			deduction = *entry.Deduction
		} else {
			deduction = salaryRevenue.Mul(*entry.Rate).Add(*entry.Adjustment).Floor()
		}
		return decimal.Max(decimal.Zero, salaryRevenue.Sub(deduction)), nil
	}

	return decimal.Zero, lookupError(op, "no salary deduction bracket covers %s", salaryRevenue)
}

// CalculateTaxableIncome subtracts total deductions from salary income
func (tc *TaxCalculator) CalculateTaxableIncome(salaryIncome, totalDeduction decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate taxable income"
	if salaryIncome.IsNegative() {
		return decimal.Zero, invalidArgument(op, "salary income cannot be negative: %s", salaryIncome)
	}
	if totalDeduction.IsNegative() {
		return decimal.Zero, invalidArgument(op, "total deduction cannot be negative: %s", totalDeduction)
	}
	return decimal.Max(decimal.Zero, salaryIncome.Sub(totalDeduction)), nil
}

// CalculateIncomeTax applies the quick-calculation table: taxable*rate - deduction
func (tc *TaxCalculator) CalculateIncomeTax(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate income tax"
	if taxableIncome.IsNegative() {
		return decimal.Zero, invalidArgument(op, "taxable income cannot be negative: %s", taxableIncome)
	}
	if taxableIncome.IsZero() {
		return decimal.Zero, nil
	}

	entry, err := tc.rateEntry(op, taxableIncome)
	if err != nil {
		return decimal.Zero, err
	}
	tax := taxableIncome.Mul(entry.Rate).Sub(entry.Deduction).Floor()
	return decimal.Max(decimal.Zero, tax), nil
}

// CalculateResidentTax applies the flat resident tax rate
func (tc *TaxCalculator) CalculateResidentTax(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, invalidArgument("calculate resident tax", "taxable income cannot be negative: %s", taxableIncome)
	}
	return taxableIncome.Mul(tc.tables.ResidentTaxRate).Floor(), nil
}

// CalculateSocialInsurance estimates social insurance premiums from gross salary
func (tc *TaxCalculator) CalculateSocialInsurance(salaryRevenue decimal.Decimal) (decimal.Decimal, error) {
	if salaryRevenue.IsNegative() {
		return decimal.Zero, invalidArgument("calculate social insurance", "salary revenue cannot be negative: %s", salaryRevenue)
	}
	return salaryRevenue.Mul(tc.tables.SocialInsuranceRate).Floor(), nil
}

// ApplicableTaxRate returns the marginal income tax rate for a taxable income
func (tc *TaxCalculator) ApplicableTaxRate(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	const op = "applicable tax rate"
	if taxableIncome.IsNegative() {
		return decimal.Zero, invalidArgument(op, "taxable income cannot be negative: %s", taxableIncome)
	}
	if taxableIncome.IsZero() {
		return decimal.Zero, nil
	}
	entry, err := tc.rateEntry(op, taxableIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return entry.Rate, nil
}

func (tc *TaxCalculator) rateEntry(op string, taxableIncome decimal.Decimal) (domain.TaxRateEntry, error) {
	lookup := taxableIncome.Floor()
	for _, entry := range tc.tables.IncomeTaxRates {
		if entry.Contains(lookup) {
			return entry, nil
		}
	}
	return domain.TaxRateEntry{}, lookupError(op, "no income tax bracket covers %s", taxableIncome)
}
