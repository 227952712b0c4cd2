package taxtable

import (
	"time"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultVersion identifies the built-in dataset
const DefaultVersion = "2025"

// TAX TABLE ASSUMPTIONS:
//
// 1. Employment income deduction: flat 550,000 up to 1,625,000 of salary,
//    flat 1,950,000 above 8,500,000, rate plus adjustment in between.
//
// 2. Income tax brackets are the quick-calculation table. Each band ends one
//    yen before the next begins so every whole-yen amount is covered.
//
// 3. Social insurance is approximated as 15% of gross salary.
//
// 4. Housing loan limits cover residence years 2022-2025. Earlier years use
//    the pre-2022 1% regime; later years are unsupported.

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func yenPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func ratePtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func rate(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// Default returns a fresh copy of the built-in 2025 dataset
func Default() *domain.TaxTables {
	return &domain.TaxTables{
		Version:     DefaultVersion,
		LastUpdated: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),

		SalaryDeduction: []domain.SalaryDeductionEntry{
			{Min: yen(0), Max: yenPtr(1_625_000), Deduction: yenPtr(550_000)},
			{Min: yen(1_625_001), Max: yenPtr(1_800_000), Rate: ratePtr("0.4"), Adjustment: yenPtr(-100_000)},
			{Min: yen(1_800_001), Max: yenPtr(3_600_000), Rate: ratePtr("0.3"), Adjustment: yenPtr(80_000)},
			{Min: yen(3_600_001), Max: yenPtr(6_600_000), Rate: ratePtr("0.2"), Adjustment: yenPtr(440_000)},
			{Min: yen(6_600_001), Max: yenPtr(8_500_000), Rate: ratePtr("0.1"), Adjustment: yenPtr(1_100_000)},
			{Min: yen(8_500_001), Deduction: yenPtr(1_950_000)},
		},

		IncomeTaxRates: []domain.TaxRateEntry{
			{Min: yen(0), Max: yenPtr(1_949_999), Rate: rate("0.05"), Deduction: yen(0)},
			{Min: yen(1_950_000), Max: yenPtr(3_299_999), Rate: rate("0.10"), Deduction: yen(97_500)},
			{Min: yen(3_300_000), Max: yenPtr(6_949_999), Rate: rate("0.20"), Deduction: yen(427_500)},
			{Min: yen(6_950_000), Max: yenPtr(8_999_999), Rate: rate("0.23"), Deduction: yen(636_000)},
			{Min: yen(9_000_000), Max: yenPtr(17_999_999), Rate: rate("0.33"), Deduction: yen(1_536_000)},
			{Min: yen(18_000_000), Max: yenPtr(39_999_999), Rate: rate("0.40"), Deduction: yen(2_796_000)},
			{Min: yen(40_000_000), Rate: rate("0.45"), Deduction: yen(4_796_000)},
		},

		BasicDeduction:      yen(480_000),
		ResidentTaxRate:     rate("0.10"),
		SocialInsuranceRate: rate("0.15"),

		LifeInsurance: domain.LifeInsuranceRules{
			New: []domain.LifeInsuranceTier{
				{PaymentMax: yenPtr(20_000), Rate: rate("1"), Addition: yen(0)},
				{PaymentMax: yenPtr(40_000), Rate: rate("0.5"), Addition: yen(10_000)},
				{PaymentMax: yenPtr(80_000), Rate: rate("0.25"), Addition: yen(20_000)},
				{Rate: rate("0"), Addition: yen(40_000)},
			},
			Old: []domain.LifeInsuranceTier{
				{PaymentMax: yenPtr(25_000), Rate: rate("1"), Addition: yen(0)},
				{PaymentMax: yenPtr(50_000), Rate: rate("0.5"), Addition: yen(12_500)},
				{PaymentMax: yenPtr(100_000), Rate: rate("0.25"), Addition: yen(25_000)},
				{Rate: rate("0"), Addition: yen(50_000)},
			},
			MaxNew: yen(120_000),
			MaxOld: yen(100_000),
		},
		EarthquakeInsuranceMax: yen(50_000),
		MedicalExpense: domain.MedicalExpenseRules{
			Threshold:  yen(100_000),
			IncomeRate: rate("0.05"),
			Max:        yen(2_000_000),
		},
		Donation: domain.DonationRules{
			SelfBurden:      yen(2_000),
			IncomeLimitRate: rate("0.4"),
		},

		HousingLoan: domain.HousingLoanRules{
			Rate: rate("0.007"),
			Limits: map[int]map[domain.HousingType]domain.HousingLoanLimit{
				2022: {
					domain.HousingNewCertified:    {Limit: yen(50_000_000), Years: 13},
					domain.HousingNewZEH:          {Limit: yen(45_000_000), Years: 13},
					domain.HousingNewEnergySaving: {Limit: yen(40_000_000), Years: 13},
					domain.HousingNewOther:        {Limit: yen(30_000_000), Years: 13},
					domain.HousingUsed:            {Limit: yen(20_000_000), Years: 10},
				},
				2023: {
					domain.HousingNewCertified:    {Limit: yen(50_000_000), Years: 13},
					domain.HousingNewZEH:          {Limit: yen(45_000_000), Years: 13},
					domain.HousingNewEnergySaving: {Limit: yen(40_000_000), Years: 13},
					domain.HousingNewOther:        {Limit: yen(0), Years: 0},
					domain.HousingUsed:            {Limit: yen(30_000_000), Years: 10},
				},
				2024: {
					domain.HousingNewCertified:    {Limit: yen(45_000_000), Years: 13},
					domain.HousingNewZEH:          {Limit: yen(35_000_000), Years: 13},
					domain.HousingNewEnergySaving: {Limit: yen(30_000_000), Years: 13},
					domain.HousingNewOther:        {Limit: yen(0), Years: 0},
					domain.HousingUsed:            {Limit: yen(30_000_000), Years: 10},
				},
				2025: {
					domain.HousingNewCertified:    {Limit: yen(45_000_000), Years: 13},
					domain.HousingNewZEH:          {Limit: yen(35_000_000), Years: 13},
					domain.HousingNewEnergySaving: {Limit: yen(30_000_000), Years: 13},
					domain.HousingNewOther:        {Limit: yen(0), Years: 0},
					domain.HousingUsed:            {Limit: yen(30_000_000), Years: 10},
				},
			},
			Legacy: domain.LegacyHousingLoanRules{
				LastYear:            2021,
				Rate:                rate("0.01"),
				CertifiedBalanceCap: yen(50_000_000),
				CertifiedMaxCredit:  yen(500_000),
				GeneralBalanceCap:   yen(40_000_000),
				GeneralMaxCredit:    yen(400_000),
			},
		},

		ResidentTaxCredit: domain.ResidentTaxCreditRules{
			Rate: rate("0.07"),
			Max:  yen(136_500),
		},
	}
}
