package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/kanpu/internal/domain"
)

type fieldID int

const (
	fieldSalary fieldID = iota
	fieldIdeco
	fieldLifeSystem
	fieldLifeGeneral
	fieldLifePension
	fieldLifeMedical
	fieldEarthquake
	fieldMedical
	fieldFurusato
	fieldOtherDonation
	fieldCommute
	fieldLoanBalance
	fieldResidenceYear
	fieldHousingType
)

type fieldKind int

const (
	kindAmount fieldKind = iota
	kindYear
	kindChoice
)

// field is one row of the input form. Choice fields cycle through options
// instead of accepting text.
type field struct {
	id      fieldID
	section string
	label   string
	kind    fieldKind
	input   textinput.Model
	options []string
	labels  []string
	choice  int
}

const (
	lifeSystemNew = "new"
	lifeSystemOld = "old"
)

func newFields() []field {
	housingOptions := make([]string, 0, len(domain.HousingTypes()))
	housingLabels := make([]string, 0, len(domain.HousingTypes()))
	for _, ht := range domain.HousingTypes() {
		housingOptions = append(housingOptions, string(ht))
		housingLabels = append(housingLabels, ht.Label())
	}

	return []field{
		amountField(fieldSalary, "Income", "Annual salary"),
		amountField(fieldIdeco, "iDeCo", "Annual contribution"),
		{
			id: fieldLifeSystem, section: "Life insurance", label: "System", kind: kindChoice,
			options: []string{lifeSystemNew, lifeSystemOld},
			labels:  []string{"New (2012-)", "Old"},
		},
		amountField(fieldLifeGeneral, "", "General life"),
		amountField(fieldLifePension, "", "Personal pension"),
		amountField(fieldLifeMedical, "", "Medical care (new only)"),
		amountField(fieldEarthquake, "Earthquake insurance", "Annual premium"),
		amountField(fieldMedical, "Medical expenses", "Total paid"),
		amountField(fieldFurusato, "Donations", "Furusato nozei"),
		amountField(fieldOtherDonation, "", "Other donations"),
		amountField(fieldCommute, "Specific expenses", "Commuting"),
		amountField(fieldLoanBalance, "Housing loan", "Year-end balance"),
		yearField(fieldResidenceYear, "", "Residence year"),
		{
			id: fieldHousingType, label: "Housing type", kind: kindChoice,
			options: housingOptions,
			labels:  housingLabels,
		},
	}
}

func amountField(id fieldID, section, label string) field {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 13
	ti.Width = 14
	ti.Prompt = "¥ "
	return field{id: id, section: section, label: label, kind: kindAmount, input: ti}
}

func yearField(id fieldID, section, label string) field {
	ti := textinput.New()
	ti.Placeholder = "2024"
	ti.CharLimit = 4
	ti.Width = 6
	ti.Prompt = "  "
	return field{id: id, section: section, label: label, kind: kindYear, input: ti}
}

func (f *field) value() string {
	if f.kind == kindChoice {
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

func (f *field) display() string {
	if f.kind == kindChoice {
		return "‹ " + f.labels[f.choice] + " ›"
	}
	return f.input.View()
}

func (f *field) cycle(delta int) {
	if f.kind != kindChoice {
		return
	}
	n := len(f.options)
	f.choice = ((f.choice+delta)%n + n) % n
}

func (f *field) setChoice(option string) {
	for i, o := range f.options {
		if o == option {
			f.choice = i
			return
		}
	}
}

func (f *field) setAmount(d decimal.Decimal) {
	if d.IsZero() {
		f.input.SetValue("")
		return
	}
	f.input.SetValue(d.StringFixed(0))
}

type formValues map[fieldID]*field

func indexFields(fields []field) formValues {
	idx := make(formValues, len(fields))
	for i := range fields {
		idx[fields[i].id] = &fields[i]
	}
	return idx
}

// amount parses a yen amount; empty means zero. Commas and underscores are ignored.
func (fv formValues) amount(id fieldID) (decimal.Decimal, error) {
	f := fv[id]
	raw := strings.NewReplacer(",", "", "_", "", "¥", "").Replace(f.value())
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: not a number", f.label)
	}
	return d, nil
}

// buildInput converts the form into a deduction input. A group is present
// only when at least one of its amounts is non-zero.
func buildInput(fields []field) (*domain.DeductionInput, error) {
	fv := indexFields(fields)
	var errs []string
	get := func(id fieldID) decimal.Decimal {
		d, err := fv.amount(id)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return d
	}

	input := &domain.DeductionInput{Salary: get(fieldSalary)}

	if v := get(fieldIdeco); !v.IsZero() {
		input.Ideco = &domain.IdecoInput{AnnualPayment: v}
	}

	general, pension, medicalCare := get(fieldLifeGeneral), get(fieldLifePension), get(fieldLifeMedical)
	if !general.IsZero() || !pension.IsZero() || !medicalCare.IsZero() {
		li := &domain.LifeInsuranceInput{IsNewSystem: fv[fieldLifeSystem].value() == lifeSystemNew}
		if !general.IsZero() {
			li.GeneralLifeInsurance = &general
		}
		if !pension.IsZero() {
			li.PersonalPensionInsurance = &pension
		}
		if !medicalCare.IsZero() {
			li.MedicalCareInsurance = &medicalCare
		}
		input.LifeInsurance = li
	}

	if v := get(fieldEarthquake); !v.IsZero() {
		input.EarthquakeInsurance = &domain.EarthquakeInsuranceInput{AnnualPayment: v}
	}
	if v := get(fieldMedical); !v.IsZero() {
		input.MedicalExpense = &domain.MedicalExpenseInput{TotalExpense: v}
	}
	furusato, other := get(fieldFurusato), get(fieldOtherDonation)
	if !furusato.IsZero() || !other.IsZero() {
		input.Donation = &domain.DonationInput{Furusato: furusato, Other: other}
	}
	if v := get(fieldCommute); !v.IsZero() {
		input.SpecialExpense = &domain.SpecialExpenseInput{CommuteExpense: v}
	}

	if balance := get(fieldLoanBalance); !balance.IsZero() {
		hl := &domain.HousingLoanInput{
			YearEndBalance: balance,
			HousingType:    domain.HousingType(fv[fieldHousingType].value()),
		}
		if raw := fv[fieldResidenceYear].value(); raw != "" {
			year, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, "Residence year: not a year")
			}
			hl.ResidenceYear = year
		}
		input.HousingLoan = hl
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, ", "))
	}
	return input, nil
}

// fillFields copies a saved input into the form
func fillFields(fields []field, input *domain.DeductionInput) {
	fv := indexFields(fields)
	fv[fieldSalary].setAmount(input.Salary)

	if input.Ideco != nil {
		fv[fieldIdeco].setAmount(input.Ideco.AnnualPayment)
	}
	if li := input.LifeInsurance; li != nil {
		if li.IsNewSystem {
			fv[fieldLifeSystem].setChoice(lifeSystemNew)
		} else {
			fv[fieldLifeSystem].setChoice(lifeSystemOld)
		}
		setOptional := func(id fieldID, v *decimal.Decimal) {
			if v != nil {
				fv[id].setAmount(*v)
			}
		}
		setOptional(fieldLifeGeneral, li.GeneralLifeInsurance)
		setOptional(fieldLifePension, li.PersonalPensionInsurance)
		setOptional(fieldLifeMedical, li.MedicalCareInsurance)
	}
	if input.EarthquakeInsurance != nil {
		fv[fieldEarthquake].setAmount(input.EarthquakeInsurance.AnnualPayment)
	}
	if input.MedicalExpense != nil {
		fv[fieldMedical].setAmount(input.MedicalExpense.TotalExpense)
	}
	if input.Donation != nil {
		fv[fieldFurusato].setAmount(input.Donation.Furusato)
		fv[fieldOtherDonation].setAmount(input.Donation.Other)
	}
	if input.SpecialExpense != nil {
		fv[fieldCommute].setAmount(input.SpecialExpense.CommuteExpense)
	}
	if hl := input.HousingLoan; hl != nil {
		fv[fieldLoanBalance].setAmount(hl.YearEndBalance)
		if hl.ResidenceYear != 0 {
			fv[fieldResidenceYear].input.SetValue(strconv.Itoa(hl.ResidenceYear))
		}
		fv[fieldHousingType].setChoice(string(hl.HousingType))
	}
}
