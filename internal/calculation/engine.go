package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// RefundCalculator orchestrates a full refund estimate: baseline taxes,
// taxes with every declared deduction, then the housing loan credit
type RefundCalculator struct {
	TaxCalc       *TaxCalculator
	DeductionCalc *DeductionCalculator
	Logger        Logger

	tables *domain.TaxTables
}

// NewRefundCalculator creates a refund calculator over the given tables
func NewRefundCalculator(tables *domain.TaxTables) *RefundCalculator {
	return &RefundCalculator{
		TaxCalc:       NewTaxCalculator(tables),
		DeductionCalc: NewDeductionCalculator(tables),
		Logger:        NopLogger{},
		tables:        tables,
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (rc *RefundCalculator) SetLogger(l Logger) {
	if l == nil {
		rc.Logger = NopLogger{}
		return
	}
	rc.Logger = l
}

// Calculate estimates the income tax refund and resident tax reduction for input
func (rc *RefundCalculator) Calculate(input *domain.DeductionInput) (*domain.RefundResult, error) {
	if input == nil {
		return nil, invalidArgument("calculate refund", "input is required")
	}

	salaryIncome, err := rc.TaxCalc.CalculateSalaryIncome(input.Salary)
	if err != nil {
		return nil, err
	}
	salaryDeduction := input.Salary.Sub(salaryIncome)
	socialInsurance, err := rc.TaxCalc.CalculateSocialInsurance(input.Salary)
	if err != nil {
		return nil, err
	}
	rc.Logger.Debugf("salary=%s salaryIncome=%s salaryDeduction=%s socialInsurance=%s",
		input.Salary, salaryIncome, salaryDeduction, socialInsurance)

	baseline := rc.tables.BasicDeduction.Add(socialInsurance)
	before, err := rc.scenario(salaryIncome, baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline scenario: %w", err)
	}
	rc.Logger.Debugf("before deduction: taxable=%s incomeTax=%s residentTax=%s",
		before.TaxableIncome, before.IncomeTax, before.ResidentTax)

	summary, err := rc.deductionSummary(input, salaryIncome, salaryDeduction, socialInsurance)
	if err != nil {
		return nil, err
	}

	after, err := rc.scenario(salaryIncome, summary.Total())
	if err != nil {
		return nil, fmt.Errorf("deduction scenario: %w", err)
	}
	rc.Logger.Debugf("after deduction: totalDeduction=%s taxable=%s incomeTax=%s residentTax=%s",
		after.TotalDeduction, after.TaxableIncome, after.IncomeTax, after.ResidentTax)

	credit := decimal.Zero
	if hl := input.HousingLoan; hl != nil {
		credit, err = rc.DeductionCalc.CalculateHousingLoanTaxCredit(hl.YearEndBalance, hl.ResidenceYear, hl.HousingType)
		if err != nil {
			return nil, err
		}
	}

	finalIncomeTax := decimal.Max(decimal.Zero, after.IncomeTax.Sub(credit))
	unusedCredit := decimal.Max(decimal.Zero, credit.Sub(after.IncomeTax))
	// The 7% cap is truncated to whole yen rather than kept as the raw
	// product, consistent with every other step of the pipeline.
	residentCap := decimal.Min(
		after.TaxableIncome.Mul(rc.tables.ResidentTaxCredit.Rate).Floor(),
		rc.tables.ResidentTaxCredit.Max,
	)
	residentCredit := decimal.Min(unusedCredit, residentCap)
	finalResidentTax := decimal.Max(decimal.Zero, after.ResidentTax.Sub(residentCredit))
	if credit.IsPositive() {
		rc.Logger.Debugf("housing loan credit=%s appliedToIncomeTax=%s appliedToResidentTax=%s (cap %s)",
			credit, after.IncomeTax.Sub(finalIncomeTax), residentCredit, residentCap)
	}

	incomeTaxRefund := decimal.Max(decimal.Zero, before.IncomeTax.Sub(finalIncomeTax))
	residentTaxReduction := decimal.Max(decimal.Zero, before.ResidentTax.Sub(finalResidentTax))

	rate, err := rc.TaxCalc.ApplicableTaxRate(after.TaxableIncome)
	if err != nil {
		return nil, err
	}

	result := &domain.RefundResult{
		TotalRefund:          incomeTaxRefund.Add(residentTaxReduction),
		IncomeTaxRefund:      incomeTaxRefund,
		ResidentTaxReduction: residentTaxReduction,
		Breakdown: domain.RefundBreakdown{
			BeforeDeduction: before,
			AfterDeduction:  after,
			Deductions: domain.DeductionDetail{
				DeductionSummary:     summary,
				HousingLoanTaxCredit: credit,
			},
			ApplicableTaxRate: rate,
		},
	}
	rc.Logger.Infof("refund estimate: total=%s incomeTax=%s residentTax=%s",
		result.TotalRefund, result.IncomeTaxRefund, result.ResidentTaxReduction)
	return result, nil
}

func (rc *RefundCalculator) scenario(salaryIncome, totalDeduction decimal.Decimal) (domain.TaxCalculationDetail, error) {
	taxable, err := rc.TaxCalc.CalculateTaxableIncome(salaryIncome, totalDeduction)
	if err != nil {
		return domain.TaxCalculationDetail{}, err
	}
	incomeTax, err := rc.TaxCalc.CalculateIncomeTax(taxable)
	if err != nil {
		return domain.TaxCalculationDetail{}, err
	}
	residentTax, err := rc.TaxCalc.CalculateResidentTax(taxable)
	if err != nil {
		return domain.TaxCalculationDetail{}, err
	}
	return domain.TaxCalculationDetail{
		SalaryIncome:   salaryIncome,
		TotalDeduction: totalDeduction,
		TaxableIncome:  taxable,
		IncomeTax:      incomeTax,
		ResidentTax:    residentTax,
	}, nil
}

func (rc *RefundCalculator) deductionSummary(input *domain.DeductionInput, salaryIncome, salaryDeduction, socialInsurance decimal.Decimal) (domain.DeductionSummary, error) {
	dc := rc.DeductionCalc
	summary := domain.DeductionSummary{
		BasicDeduction:  rc.tables.BasicDeduction,
		SocialInsurance: socialInsurance,
	}

	var err error
	if input.Ideco != nil {
		if summary.Ideco, err = dc.CalculateIdecoDeduction(input.Ideco.AnnualPayment); err != nil {
			return summary, err
		}
	}
	if input.LifeInsurance != nil {
		if summary.LifeInsurance, err = dc.CalculateLifeInsuranceDeduction(input.LifeInsurance.Payments(), input.LifeInsurance.IsNewSystem); err != nil {
			return summary, err
		}
	}
	if input.EarthquakeInsurance != nil {
		if summary.EarthquakeInsurance, err = dc.CalculateEarthquakeInsuranceDeduction(input.EarthquakeInsurance.AnnualPayment); err != nil {
			return summary, err
		}
	}
	if input.MedicalExpense != nil {
		if summary.MedicalExpense, err = dc.CalculateMedicalExpenseDeduction(input.MedicalExpense.TotalExpense, salaryIncome); err != nil {
			return summary, err
		}
	}
	if input.Donation != nil {
		if summary.Donation, err = dc.CalculateDonationDeduction(input.Donation.Total(), salaryIncome); err != nil {
			return summary, err
		}
	}
	if input.SpecialExpense != nil {
		if summary.SpecialExpense, err = dc.CalculateSpecialExpenseDeduction(input.SpecialExpense.CommuteExpense, salaryDeduction); err != nil {
			return summary, err
		}
	}

	rc.Logger.Debugf("deductions: ideco=%s life=%s earthquake=%s medical=%s donation=%s special=%s",
		summary.Ideco, summary.LifeInsurance, summary.EarthquakeInsurance,
		summary.MedicalExpense, summary.Donation, summary.SpecialExpense)
	return summary, nil
}
