package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/kanpu/internal/domain"
)

// ConsoleVerboseFormatter extends the console report with the calculation
// steps and the modeling assumptions.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.RefundResult) ([]byte, error) {
	base, err := (&ConsoleFormatter{}).Format(result)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(base)
	fmt.Fprintln(&buf)

	b := result.Breakdown
	fmt.Fprintln(&buf, "CALCULATION STEPS")
	fmt.Fprintln(&buf, strings.Repeat("-", consoleWidth))
	writeScenarioSteps(&buf, "Without deductions", b.BeforeDeduction)
	writeScenarioSteps(&buf, "With deductions", b.AfterDeduction)

	credit := b.Deductions.HousingLoanTaxCredit
	if credit.IsPositive() {
		fmt.Fprintf(&buf, "Housing loan credit %s applied to income tax first, remainder to resident tax\n", FormatYen(credit))
	}
	fmt.Fprintf(&buf, "Income tax refund      = %s - %s = %s\n",
		FormatYen(b.BeforeDeduction.IncomeTax), FormatYen(b.AfterDeduction.IncomeTax), FormatYen(result.IncomeTaxRefund))
	fmt.Fprintf(&buf, "Resident tax reduction = %s - %s = %s\n",
		FormatYen(b.BeforeDeduction.ResidentTax), FormatYen(b.AfterDeduction.ResidentTax), FormatYen(result.ResidentTaxReduction))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeScenarioSteps(buf *bytes.Buffer, title string, d domain.TaxCalculationDetail) {
	fmt.Fprintf(buf, "%s:\n", title)
	fmt.Fprintf(buf, "  salary income %s - deductions %s = taxable %s\n",
		FormatYen(d.SalaryIncome), FormatYen(d.TotalDeduction), FormatYen(d.TaxableIncome))
	fmt.Fprintf(buf, "  income tax %s, resident tax %s\n", FormatYen(d.IncomeTax), FormatYen(d.ResidentTax))
}
