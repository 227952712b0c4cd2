package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders a refund result as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output
func (jf *JSONFormatter) Format(result *domain.RefundResult) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// YAMLFormatter renders a refund result as YAML
type YAMLFormatter struct{}

func (yf *YAMLFormatter) Name() string { return "yaml" }

// Format generates YAML output
func (yf *YAMLFormatter) Format(result *domain.RefundResult) ([]byte, error) {
	return yaml.Marshal(result)
}

// CSVFormatter renders a refund result as field,value rows
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output
func (cf *CSVFormatter) Format(result *domain.RefundResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	b := result.Breakdown
	d := b.Deductions
	rows := [][]string{
		{"field", "value"},
		{"total_refund", result.TotalRefund.StringFixed(0)},
		{"income_tax_refund", result.IncomeTaxRefund.StringFixed(0)},
		{"resident_tax_reduction", result.ResidentTaxReduction.StringFixed(0)},
		{"applicable_tax_rate", b.ApplicableTaxRate.String()},
		{"before.salary_income", b.BeforeDeduction.SalaryIncome.StringFixed(0)},
		{"before.total_deduction", b.BeforeDeduction.TotalDeduction.StringFixed(0)},
		{"before.taxable_income", b.BeforeDeduction.TaxableIncome.StringFixed(0)},
		{"before.income_tax", b.BeforeDeduction.IncomeTax.StringFixed(0)},
		{"before.resident_tax", b.BeforeDeduction.ResidentTax.StringFixed(0)},
		{"after.salary_income", b.AfterDeduction.SalaryIncome.StringFixed(0)},
		{"after.total_deduction", b.AfterDeduction.TotalDeduction.StringFixed(0)},
		{"after.taxable_income", b.AfterDeduction.TaxableIncome.StringFixed(0)},
		{"after.income_tax", b.AfterDeduction.IncomeTax.StringFixed(0)},
		{"after.resident_tax", b.AfterDeduction.ResidentTax.StringFixed(0)},
		{"deduction.ideco", d.Ideco.StringFixed(0)},
		{"deduction.life_insurance", d.LifeInsurance.StringFixed(0)},
		{"deduction.earthquake_insurance", d.EarthquakeInsurance.StringFixed(0)},
		{"deduction.medical_expense", d.MedicalExpense.StringFixed(0)},
		{"deduction.donation", d.Donation.StringFixed(0)},
		{"deduction.special_expense", d.SpecialExpense.StringFixed(0)},
		{"deduction.basic", d.BasicDeduction.StringFixed(0)},
		{"deduction.social_insurance", d.SocialInsurance.StringFixed(0)},
		{"credit.housing_loan", d.HousingLoanTaxCredit.StringFixed(0)},
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
