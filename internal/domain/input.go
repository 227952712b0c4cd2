package domain

import "github.com/shopspring/decimal"

// HousingType classifies the home a housing loan was taken out for
type HousingType string

const (
	HousingNewCertified    HousingType = "new-certified"
	HousingNewZEH          HousingType = "new-zeh"
	HousingNewEnergySaving HousingType = "new-energy-saving"
	HousingNewOther        HousingType = "new-other"
	HousingUsed            HousingType = "used"
)

// HousingTypes returns every supported housing type in display order
func HousingTypes() []HousingType {
	return []HousingType{
		HousingNewCertified,
		HousingNewZEH,
		HousingNewEnergySaving,
		HousingNewOther,
		HousingUsed,
	}
}

// Valid reports whether h is one of the supported housing types
func (h HousingType) Valid() bool {
	for _, t := range HousingTypes() {
		if h == t {
			return true
		}
	}
	return false
}

// Label returns a short human readable description
func (h HousingType) Label() string {
	switch h {
	case HousingNewCertified:
		return "New (certified long-life)"
	case HousingNewZEH:
		return "New (ZEH)"
	case HousingNewEnergySaving:
		return "New (energy-saving)"
	case HousingNewOther:
		return "New (other)"
	case HousingUsed:
		return "Used"
	default:
		return string(h)
	}
}

// DeductionInput is everything the user declares for one tax year.
// A nil group means the user did not enter that deduction at all.
type DeductionInput struct {
	Salary              decimal.Decimal           `yaml:"salary" json:"salary"`
	Ideco               *IdecoInput               `yaml:"ideco,omitempty" json:"ideco,omitempty"`
	LifeInsurance       *LifeInsuranceInput       `yaml:"life_insurance,omitempty" json:"life_insurance,omitempty"`
	EarthquakeInsurance *EarthquakeInsuranceInput `yaml:"earthquake_insurance,omitempty" json:"earthquake_insurance,omitempty"`
	MedicalExpense      *MedicalExpenseInput      `yaml:"medical_expense,omitempty" json:"medical_expense,omitempty"`
	Donation            *DonationInput            `yaml:"donation,omitempty" json:"donation,omitempty"`
	SpecialExpense      *SpecialExpenseInput      `yaml:"special_expense,omitempty" json:"special_expense,omitempty"`
	HousingLoan         *HousingLoanInput         `yaml:"housing_loan,omitempty" json:"housing_loan,omitempty"`
}

// IdecoInput holds individual defined-contribution pension contributions
type IdecoInput struct {
	AnnualPayment decimal.Decimal `yaml:"annual_payment" json:"annual_payment"`
}

// LifeInsuranceInput holds premiums paid per life insurance category
type LifeInsuranceInput struct {
	IsNewSystem              bool             `yaml:"is_new_system" json:"is_new_system"`
	GeneralLifeInsurance     *decimal.Decimal `yaml:"general_life_insurance,omitempty" json:"general_life_insurance,omitempty"`
	PersonalPensionInsurance *decimal.Decimal `yaml:"personal_pension_insurance,omitempty" json:"personal_pension_insurance,omitempty"`
	MedicalCareInsurance     *decimal.Decimal `yaml:"medical_care_insurance,omitempty" json:"medical_care_insurance,omitempty"`
}

// Payments extracts the per-category premiums
func (l *LifeInsuranceInput) Payments() LifeInsurancePayments {
	return LifeInsurancePayments{
		General:         l.GeneralLifeInsurance,
		PersonalPension: l.PersonalPensionInsurance,
		MedicalCare:     l.MedicalCareInsurance,
	}
}

// EarthquakeInsuranceInput holds earthquake insurance premiums
type EarthquakeInsuranceInput struct {
	AnnualPayment decimal.Decimal `yaml:"annual_payment" json:"annual_payment"`
}

// MedicalExpenseInput holds out-of-pocket medical expenses
type MedicalExpenseInput struct {
	TotalExpense decimal.Decimal `yaml:"total_expense" json:"total_expense"`
}

// DonationInput holds hometown (furusato) and other qualifying donations
type DonationInput struct {
	Furusato decimal.Decimal `yaml:"furusato" json:"furusato"`
	Other    decimal.Decimal `yaml:"other" json:"other"`
}

// Total returns the combined donation amount
func (d *DonationInput) Total() decimal.Decimal {
	return d.Furusato.Add(d.Other)
}

// SpecialExpenseInput holds the salary-earner specific expense claim
type SpecialExpenseInput struct {
	CommuteExpense decimal.Decimal `yaml:"commute_expense" json:"commute_expense"`
}

// HousingLoanInput describes an outstanding housing loan
type HousingLoanInput struct {
	YearEndBalance decimal.Decimal `yaml:"year_end_balance" json:"year_end_balance"`
	ResidenceYear  int             `yaml:"residence_year" json:"residence_year"`
	HousingType    HousingType     `yaml:"housing_type" json:"housing_type"`
}

// LifeInsurancePayments are the premiums for each life insurance category.
// MedicalCare only counts under the new (post-2012) system.
type LifeInsurancePayments struct {
	General         *decimal.Decimal
	PersonalPension *decimal.Decimal
	MedicalCare     *decimal.Decimal
}
