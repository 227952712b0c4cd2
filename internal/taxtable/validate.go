package taxtable

import (
	"fmt"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// Validate checks that a dataset is internally consistent: both bracket
// tables partition [0, +inf) in whole yen, every rate is non-negative and
// every housing type appears for each configured year.
func Validate(t *domain.TaxTables) error {
	if t == nil {
		return fmt.Errorf("tax tables are required")
	}
	if t.Version == "" {
		return fmt.Errorf("version is required")
	}

	salaryBands := make([]band, len(t.SalaryDeduction))
	for i, e := range t.SalaryDeduction {
		salaryBands[i] = band{min: e.Min, max: e.Max}
		fixed := e.Deduction != nil
		formula := e.Rate != nil && e.Adjustment != nil
		if fixed == formula {
			return fmt.Errorf("salary_deduction[%d]: exactly one of deduction or rate+adjustment must be set", i)
		}
		if fixed && e.Deduction.IsNegative() {
			return fmt.Errorf("salary_deduction[%d]: deduction cannot be negative", i)
		}
		if formula && e.Rate.IsNegative() {
			return fmt.Errorf("salary_deduction[%d]: rate cannot be negative", i)
		}
	}
	if err := validatePartition(salaryBands); err != nil {
		return fmt.Errorf("salary_deduction: %w", err)
	}

	taxBands := make([]band, len(t.IncomeTaxRates))
	for i, e := range t.IncomeTaxRates {
		taxBands[i] = band{min: e.Min, max: e.Max}
		if e.Rate.IsNegative() || e.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("income_tax_rates[%d]: rate must be between 0 and 1", i)
		}
		if e.Deduction.IsNegative() {
			return fmt.Errorf("income_tax_rates[%d]: deduction cannot be negative", i)
		}
	}
	if err := validatePartition(taxBands); err != nil {
		return fmt.Errorf("income_tax_rates: %w", err)
	}

	if err := validateLifeTiers(t.LifeInsurance.New); err != nil {
		return fmt.Errorf("life_insurance.new: %w", err)
	}
	if err := validateLifeTiers(t.LifeInsurance.Old); err != nil {
		return fmt.Errorf("life_insurance.old: %w", err)
	}

	for year, byType := range t.HousingLoan.Limits {
		if year <= t.HousingLoan.Legacy.LastYear {
			return fmt.Errorf("housing_loan.limits: year %d overlaps legacy regime ending %d", year, t.HousingLoan.Legacy.LastYear)
		}
		for _, ht := range domain.HousingTypes() {
			limit, ok := byType[ht]
			if !ok {
				return fmt.Errorf("housing_loan.limits[%d]: missing housing type %s", year, ht)
			}
			if limit.Limit.IsNegative() {
				return fmt.Errorf("housing_loan.limits[%d][%s]: limit cannot be negative", year, ht)
			}
		}
	}

	nonNegative := map[string]decimal.Decimal{
		"basic_deduction":          t.BasicDeduction,
		"resident_tax_rate":        t.ResidentTaxRate,
		"social_insurance_rate":    t.SocialInsuranceRate,
		"earthquake_insurance_max": t.EarthquakeInsuranceMax,
		"medical_expense.max":      t.MedicalExpense.Max,
		"donation.self_burden":     t.Donation.SelfBurden,
		"housing_loan.rate":        t.HousingLoan.Rate,
		"resident_tax_credit.max":  t.ResidentTaxCredit.Max,
		"resident_tax_credit.rate": t.ResidentTaxCredit.Rate,
		"life_insurance.max_new":   t.LifeInsurance.MaxNew,
		"life_insurance.max_old":   t.LifeInsurance.MaxOld,

		"medical_expense.threshold":   t.MedicalExpense.Threshold,
		"medical_expense.income_rate": t.MedicalExpense.IncomeRate,
		"donation.income_limit_rate":  t.Donation.IncomeLimitRate,

		"housing_loan.legacy.rate":                  t.HousingLoan.Legacy.Rate,
		"housing_loan.legacy.certified_balance_cap": t.HousingLoan.Legacy.CertifiedBalanceCap,
		"housing_loan.legacy.certified_max_credit":  t.HousingLoan.Legacy.CertifiedMaxCredit,
		"housing_loan.legacy.general_balance_cap":   t.HousingLoan.Legacy.GeneralBalanceCap,
		"housing_loan.legacy.general_max_credit":    t.HousingLoan.Legacy.GeneralMaxCredit,
	}
	for name, v := range nonNegative {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	return nil
}

type band struct {
	min decimal.Decimal
	max *decimal.Decimal
}

func validatePartition(bands []band) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	if !bands[0].min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", bands[0].min)
	}
	for i, b := range bands {
		if !b.min.Equal(b.min.Floor()) {
			return fmt.Errorf("bracket %d: bounds must be whole yen", i)
		}
		last := i == len(bands)-1
		if b.max == nil {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("last bracket must be unbounded")
		}
		if b.max.LessThan(b.min) {
			return fmt.Errorf("bracket %d: max %s is below min %s", i, b.max, b.min)
		}
		next := bands[i+1].min
		if !next.Equal(b.max.Add(decimal.NewFromInt(1))) {
			return fmt.Errorf("bracket %d: gap or overlap between %s and %s", i, b.max, next)
		}
	}
	return nil
}

func validateLifeTiers(tiers []domain.LifeInsuranceTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("at least one tier is required")
	}
	prev := decimal.Zero
	for i, tier := range tiers {
		if tier.Rate.IsNegative() || tier.Addition.IsNegative() {
			return fmt.Errorf("tier %d: rate and addition cannot be negative", i)
		}
		if tier.PaymentMax == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("tier %d: only the last tier may be unbounded", i)
			}
			continue
		}
		if i == len(tiers)-1 {
			return fmt.Errorf("last tier must be unbounded")
		}
		if !tier.PaymentMax.GreaterThan(prev) {
			return fmt.Errorf("tier %d: payment_max must increase", i)
		}
		prev = *tier.PaymentMax
	}
	return nil
}
