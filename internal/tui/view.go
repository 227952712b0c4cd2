package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/kanpu/internal/output"
	"github.com/rgehrsitz/kanpu/internal/tui/components"
)

const labelColumn = 26

// View renders the form on the left and the estimate on the right
func (m Model) View() string {
	title := m.styles.Title.Render("kanpu · tax refund estimator")

	form := m.styles.Panel.Render(m.renderForm())
	results := m.renderResults()

	var body string
	if m.width >= 100 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, form, results)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.renderStatusBar())
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i := range m.fields {
		f := &m.fields[i]
		if f.section != "" {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(m.styles.Section.Render(f.section) + "\n")
		}

		labelStyle := m.styles.Label
		marker := "  "
		if i == m.focus {
			labelStyle = m.styles.FocusedLabel
			marker = "› "
		}
		label := labelStyle.Render(fmt.Sprintf("%s%-*s", marker, labelColumn-2, f.label))
		sb.WriteString(label + " " + f.display() + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderResults() string {
	if m.err != nil {
		msg := m.err.Error()
		msg = strings.ReplaceAll(msg, ", ", "\n")
		return m.styles.Panel.Render(m.styles.Error.Render("Cannot estimate:\n" + msg))
	}
	if m.result == nil {
		return ""
	}

	r := m.result
	b := r.Breakdown
	cards := []*components.MetricCard{
		components.NewMetricCard("Total refund", output.FormatYen(r.TotalRefund)).WithHighlight(),
		components.NewMetricCard("Income tax refund", output.FormatYen(r.IncomeTaxRefund)),
		components.NewMetricCard("Resident tax reduction", output.FormatYen(r.ResidentTaxReduction)),
		components.NewMetricCard("Marginal rate", output.FormatPercent(b.ApplicableTaxRate)).
			WithDescription("after deductions"),
	}

	var sb strings.Builder
	row := func(label string, before, after string) {
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s\n", label, before, after))
	}
	sb.WriteString(m.styles.Section.Render("Before / after deductions") + "\n")
	row("Taxable income", output.FormatYen(b.BeforeDeduction.TaxableIncome), output.FormatYen(b.AfterDeduction.TaxableIncome))
	row("Income tax", output.FormatYen(b.BeforeDeduction.IncomeTax), output.FormatYen(b.AfterDeduction.IncomeTax))
	row("Resident tax", output.FormatYen(b.BeforeDeduction.ResidentTax), output.FormatYen(b.AfterDeduction.ResidentTax))
	if credit := b.Deductions.HousingLoanTaxCredit; credit.IsPositive() {
		sb.WriteString(fmt.Sprintf("%-18s %14s\n", "Housing credit", output.FormatYen(credit)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(m.styles, cards, 2),
		m.styles.Panel.Render(strings.TrimRight(sb.String(), "\n")),
	)
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, b := range keys.help() {
		h := b.Help()
		parts = append(parts, m.styles.StatusKey.Render(h.Key)+" "+h.Desc)
	}
	text := strings.Join(parts, "  ")
	if m.status != "" {
		text += "  · " + m.status
	}
	return m.styles.StatusBar.Render(text)
}
