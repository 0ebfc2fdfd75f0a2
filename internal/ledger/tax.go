package ledger

import (
	"sort"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// Brazilian capital-gains constants. These encode external regulation, not
// computed policy, and are kept as named literals on purpose.
const (
	// ExemptionThresholdBRL is the monthly gross-sales ceiling under which
	// stock gains of an individual investor are exempt from income tax.
	ExemptionThresholdBRL = 20000.0

	// StockGainTaxRate applies to stock gains in non-exempt months.
	StockGainTaxRate = 0.15

	// FundGainTaxRate applies to fund (FII) gains; funds have no exemption.
	FundGainTaxRate = 0.20

	// FixedIncomeTaxRate is the simplified flat rate applied to
	// fixed-income redemption gains.
	FixedIncomeTaxRate = 0.15
)

// TaxMonthlySummary is the tax position of one calendar month with at least
// one local-currency sale.
type TaxMonthlySummary struct {
	Month          string               `json:"month"` // YYYY-MM
	TotalSalesBRL  float64              `json:"totalSalesBRL"`
	TaxableGainBRL float64              `json:"taxableGainBRL"`
	TaxDueBRL      float64              `json:"taxDueBRL"`
	IsExempt       bool                 `json:"isExempt"`
	Details        []RealizedGainDetail `json:"details"`
}

// BuildTaxReport groups local-country realized gains by calendar month and
// applies the Brazilian rules: the R$20.000 exemption covers stock sales
// only, fund gains are always taxed at their own rate, fixed income at a
// simplified flat rate, and losses in one category never offset gains in
// another. Months are returned most recent first.
func BuildTaxReport(details []RealizedGainDetail) []TaxMonthlySummary {
	byMonth := make(map[string][]RealizedGainDetail)
	for _, d := range details {
		if d.Country != model.CountryLocal {
			continue
		}
		byMonth[d.Month] = append(byMonth[d.Month], d)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	report := make([]TaxMonthlySummary, 0, len(months))
	for _, month := range months {
		group := byMonth[month]

		var totalSales, stockGain, fundGain, fixedIncomeGain float64
		for _, d := range group {
			switch d.Category {
			case model.CategoryStock:
				// Only stock sales count toward the exemption threshold.
				totalSales += d.Quantity * d.SellPrice
				stockGain += d.Gain
			case model.CategoryFund:
				fundGain += d.Gain
			case model.CategoryFixedIncome:
				fixedIncomeGain += d.Gain
			}
		}

		exempt := totalSales <= ExemptionThresholdBRL

		var taxable, due float64
		if !exempt && stockGain > 0 {
			taxable += stockGain
			due += stockGain * StockGainTaxRate
		}
		if fundGain > 0 {
			taxable += fundGain
			due += fundGain * FundGainTaxRate
		}
		if fixedIncomeGain > 0 {
			taxable += fixedIncomeGain
			due += fixedIncomeGain * FixedIncomeTaxRate
		}

		report = append(report, TaxMonthlySummary{
			Month:          month,
			TotalSalesBRL:  totalSales,
			TaxableGainBRL: taxable,
			TaxDueBRL:      due,
			IsExempt:       exempt,
			Details:        group,
		})
	}

	return report
}
