package calculation

import (
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionCalculator computes each income deduction and the housing loan tax credit
type DeductionCalculator struct {
	tables *domain.TaxTables
}

// NewDeductionCalculator creates a deduction calculator over the given tables
func NewDeductionCalculator(tables *domain.TaxTables) *DeductionCalculator {
	return &DeductionCalculator{tables: tables}
}

// CalculateIdecoDeduction returns the full iDeCo contribution
func (dc *DeductionCalculator) CalculateIdecoDeduction(annualPayment decimal.Decimal) (decimal.Decimal, error) {
	if annualPayment.IsNegative() {
		return decimal.Zero, invalidArgument("calculate ideco deduction", "annual payment cannot be negative: %s", annualPayment)
	}
	return annualPayment, nil
}

// CalculateLifeInsuranceDeduction sums the per-category deductions and applies
// the overall cap of the selected system. Medical care premiums only count
// under the new system.
func (dc *DeductionCalculator) CalculateLifeInsuranceDeduction(payments domain.LifeInsurancePayments, isNewSystem bool) (decimal.Decimal, error) {
	const op = "calculate life insurance deduction"

	rules := dc.tables.LifeInsurance
	tiers, limit := rules.Old, rules.MaxOld
	categories := []*decimal.Decimal{payments.General, payments.PersonalPension}
	if isNewSystem {
		tiers, limit = rules.New, rules.MaxNew
		categories = append(categories, payments.MedicalCare)
	}

	total := decimal.Zero
	for _, p := range categories {
		if p == nil {
			continue
		}
		if p.IsNegative() {
			return decimal.Zero, invalidArgument(op, "premium cannot be negative: %s", *p)
		}
		if !p.IsPositive() {
			continue
		}
		total = total.Add(tierDeduction(tiers, *p))
	}

	return decimal.Min(total, limit), nil
}

func tierDeduction(tiers []domain.LifeInsuranceTier, payment decimal.Decimal) decimal.Decimal {
	for _, tier := range tiers {
		if tier.PaymentMax == nil || payment.LessThanOrEqual(*tier.PaymentMax) {
			return payment.Mul(tier.Rate).Add(tier.Addition).Floor()
		}
	}
	return decimal.Zero
}

// CalculateEarthquakeInsuranceDeduction caps earthquake insurance premiums
func (dc *DeductionCalculator) CalculateEarthquakeInsuranceDeduction(annualPayment decimal.Decimal) (decimal.Decimal, error) {
	if annualPayment.IsNegative() {
		return decimal.Zero, invalidArgument("calculate earthquake insurance deduction", "annual payment cannot be negative: %s", annualPayment)
	}
	return decimal.Min(annualPayment, dc.tables.EarthquakeInsuranceMax), nil
}

// CalculateMedicalExpenseDeduction deducts medical expenses above the lower of
// the fixed threshold and a share of total income
func (dc *DeductionCalculator) CalculateMedicalExpenseDeduction(totalExpense, totalIncome decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate medical expense deduction"
	if totalExpense.IsNegative() {
		return decimal.Zero, invalidArgument(op, "total expense cannot be negative: %s", totalExpense)
	}
	if totalIncome.IsNegative() {
		return decimal.Zero, invalidArgument(op, "total income cannot be negative: %s", totalIncome)
	}
	if totalExpense.IsZero() {
		return decimal.Zero, nil
	}

	rules := dc.tables.MedicalExpense
	threshold := decimal.Min(rules.Threshold, totalIncome.Mul(rules.IncomeRate).Floor())
	deduction := decimal.Max(decimal.Zero, totalExpense.Sub(threshold))
	return decimal.Min(deduction, rules.Max), nil
}

// CalculateDonationDeduction deducts donations above the self-burden amount,
// limited to a share of total income
func (dc *DeductionCalculator) CalculateDonationDeduction(totalDonation, totalIncome decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate donation deduction"
	if totalDonation.IsNegative() {
		return decimal.Zero, invalidArgument(op, "total donation cannot be negative: %s", totalDonation)
	}
	if totalIncome.IsNegative() {
		return decimal.Zero, invalidArgument(op, "total income cannot be negative: %s", totalIncome)
	}

	rules := dc.tables.Donation
	if totalDonation.LessThanOrEqual(rules.SelfBurden) {
		return decimal.Zero, nil
	}
	limit := totalIncome.Mul(rules.IncomeLimitRate).Floor()
	return decimal.Min(totalDonation.Sub(rules.SelfBurden), limit), nil
}

// CalculateSpecialExpenseDeduction returns the specific expenses exceeding
// half of the employment income deduction
func (dc *DeductionCalculator) CalculateSpecialExpenseDeduction(specialExpense, salaryDeduction decimal.Decimal) (decimal.Decimal, error) {
	const op = "calculate special expense deduction"
	if specialExpense.IsNegative() {
		return decimal.Zero, invalidArgument(op, "special expense cannot be negative: %s", specialExpense)
	}
	if salaryDeduction.IsNegative() {
		return decimal.Zero, invalidArgument(op, "salary deduction cannot be negative: %s", salaryDeduction)
	}

	threshold := salaryDeduction.Div(decimal.NewFromInt(2)).Floor()
	if specialExpense.LessThanOrEqual(threshold) {
		return decimal.Zero, nil
	}
	return specialExpense.Sub(threshold), nil
}

// CalculateHousingLoanTaxCredit computes the yearly housing loan credit.
// Residence years up to the legacy cutoff use the flat 1% regime where every
// type other than certified housing falls into the general bucket.
func (dc *DeductionCalculator) CalculateHousingLoanTaxCredit(yearEndBalance decimal.Decimal, residenceYear int, housingType domain.HousingType) (decimal.Decimal, error) {
	const op = "calculate housing loan tax credit"
	if yearEndBalance.IsNegative() {
		return decimal.Zero, invalidArgument(op, "year-end balance cannot be negative: %s", yearEndBalance)
	}
	if yearEndBalance.IsZero() {
		return decimal.Zero, nil
	}

	rules := dc.tables.HousingLoan
	if residenceYear <= rules.Legacy.LastYear {
		legacy := rules.Legacy
		balanceCap, maxCredit := legacy.GeneralBalanceCap, legacy.GeneralMaxCredit
		if housingType == domain.HousingNewCertified {
			balanceCap, maxCredit = legacy.CertifiedBalanceCap, legacy.CertifiedMaxCredit
		}
		credit := decimal.Min(yearEndBalance, balanceCap).Mul(legacy.Rate).Floor()
		return decimal.Min(credit, maxCredit), nil
	}

	byType, ok := rules.Limits[residenceYear]
	if !ok {
		return decimal.Zero, lookupError(op, "unsupported residence year %d", residenceYear)
	}
	limit, ok := byType[housingType]
	if !ok {
		return decimal.Zero, lookupError(op, "unsupported housing type %q for residence year %d", housingType, residenceYear)
	}
	if limit.Limit.IsZero() {
		return decimal.Zero, nil
	}
	return decimal.Min(yearEndBalance, limit.Limit).Mul(rules.Rate).Floor(), nil
}
