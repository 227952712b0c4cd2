package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a refund result as a plain-text report
type ConsoleFormatter struct{}

func (cf *ConsoleFormatter) Name() string { return "console" }

const (
	consoleWidth = 60
	labelWidth   = 30
	valueWidth   = 14
)

// Format generates the console report
func (cf *ConsoleFormatter) Format(result *domain.RefundResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var sb strings.Builder
	b := result.Breakdown

	sb.WriteString("ESTIMATED TAX REFUND\n")
	sb.WriteString(strings.Repeat("=", consoleWidth) + "\n")
	cf.row(&sb, "Total refund", result.TotalRefund)
	cf.row(&sb, "  Income tax refund", result.IncomeTaxRefund)
	cf.row(&sb, "  Resident tax reduction", result.ResidentTaxReduction)
	sb.WriteString(fmt.Sprintf("%-*s %*s\n", labelWidth, "Applicable tax rate", valueWidth, FormatPercent(b.ApplicableTaxRate)))
	sb.WriteString("\n")

	sb.WriteString("DEDUCTIONS\n")
	sb.WriteString(strings.Repeat("-", consoleWidth) + "\n")
	d := b.Deductions
	optional := []struct {
		label string
		value decimal.Decimal
	}{
		{"iDeCo", d.Ideco},
		{"Life insurance", d.LifeInsurance},
		{"Earthquake insurance", d.EarthquakeInsurance},
		{"Medical expenses", d.MedicalExpense},
		{"Donations", d.Donation},
		{"Specific expenses", d.SpecialExpense},
	}
	for _, item := range optional {
		if item.value.IsPositive() {
			cf.row(&sb, item.label, item.value)
		}
	}
	cf.row(&sb, "Basic deduction", d.BasicDeduction)
	cf.row(&sb, "Social insurance (estimated)", d.SocialInsurance)
	cf.row(&sb, "Total income deductions", d.Total())
	if d.HousingLoanTaxCredit.IsPositive() {
		cf.row(&sb, "Housing loan tax credit", d.HousingLoanTaxCredit)
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "TAX COMPARISON", valueWidth, "Before", valueWidth, "After"))
	sb.WriteString(strings.Repeat("-", consoleWidth) + "\n")
	cf.compare(&sb, "Salary income", b.BeforeDeduction.SalaryIncome, b.AfterDeduction.SalaryIncome)
	cf.compare(&sb, "Total deduction", b.BeforeDeduction.TotalDeduction, b.AfterDeduction.TotalDeduction)
	cf.compare(&sb, "Taxable income", b.BeforeDeduction.TaxableIncome, b.AfterDeduction.TaxableIncome)
	cf.compare(&sb, "Income tax", b.BeforeDeduction.IncomeTax, b.AfterDeduction.IncomeTax)
	cf.compare(&sb, "Resident tax", b.BeforeDeduction.ResidentTax, b.AfterDeduction.ResidentTax)
	sb.WriteString(strings.Repeat("=", consoleWidth) + "\n")

	return []byte(sb.String()), nil
}

func (cf *ConsoleFormatter) row(sb *strings.Builder, label string, value decimal.Decimal) {
	sb.WriteString(fmt.Sprintf("%-*s %*s\n", labelWidth, label, valueWidth, FormatYen(value)))
}

func (cf *ConsoleFormatter) compare(sb *strings.Builder, label string, before, after decimal.Decimal) {
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, label, valueWidth, FormatYen(before), valueWidth, FormatYen(after)))
}
