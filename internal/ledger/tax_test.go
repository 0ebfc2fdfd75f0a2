package ledger_test

import (
	"testing"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/ledger"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

func gainDetail(month string, category model.AssetCategory, quantity, sellPrice, gain float64) ledger.RealizedGainDetail {
	date, _ := time.Parse("2006-01", month)
	return ledger.RealizedGainDetail{
		TransactionID: "t",
		Date:          date,
		Ticker:        "TEST4",
		Broker:        "Inter",
		Country:       model.CountryLocal,
		Category:      category,
		Quantity:      quantity,
		SellPrice:     sellPrice,
		Gain:          gain,
		Month:         month,
	}
}

// TestBuildTaxReport_Exemption tests the R$20.000 monthly stock exemption.
//
// WHY: The exemption boundary decides whether tax is owed at all. It is
// inclusive (sales of exactly R$20.000 are still exempt) and counts gross
// stock sales, not gains.
func TestBuildTaxReport_Exemption(t *testing.T) {
	t.Run("sales at exactly the threshold are exempt", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-05", model.CategoryStock, 1000, 20.00, 5000.00),
		})

		if len(report) != 1 {
			t.Fatalf("Expected 1 month, got %d", len(report))
		}
		month := report[0]
		if !month.IsExempt {
			t.Error("Expected month at exactly 20000.00 in sales to be exempt")
		}
		if month.TaxDueBRL != 0 {
			t.Errorf("Expected no tax due, got %f", month.TaxDueBRL)
		}
		if month.TotalSalesBRL != 20000.00 {
			t.Errorf("Expected total sales 20000.00, got %f", month.TotalSalesBRL)
		}
	})

	t.Run("one cent over the threshold triggers the stock rate", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-05", model.CategoryStock, 1000, 20.00001, 5000.00),
		})

		month := report[0]
		if month.IsExempt {
			t.Error("Expected month above the threshold to be taxable")
		}
		if month.TaxableGainBRL != 5000.00 {
			t.Errorf("Expected taxable gain 5000.00, got %f", month.TaxableGainBRL)
		}
		if diff := month.TaxDueBRL - 750.00; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Expected tax due 750.00, got %f", month.TaxDueBRL)
		}
	})

	t.Run("exempt month with stock loss stays at zero", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-05", model.CategoryStock, 100, 50.00, -800.00),
		})

		month := report[0]
		if !month.IsExempt || month.TaxDueBRL != 0 || month.TaxableGainBRL != 0 {
			t.Errorf("Expected exempt zero-tax month, got exempt=%v taxable=%f due=%f",
				month.IsExempt, month.TaxableGainBRL, month.TaxDueBRL)
		}
	})
}

// TestBuildTaxReport_Categories tests per-category rates and the absence of
// cross-category netting.
//
// WHY: Funds and fixed income never benefit from the stock exemption and a
// loss in one category cannot shelter gains in another; netting them would
// understate the tax owed.
func TestBuildTaxReport_Categories(t *testing.T) {
	t.Run("fund gains taxed at 20 percent even in low-sales months", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-06", model.CategoryFund, 10, 100.00, 300.00),
		})

		month := report[0]
		if !month.IsExempt {
			// Zero stock sales: the flag reads exempt, but it only gates
			// the stock bucket.
			t.Error("Expected exemption flag set when stock sales are below threshold")
		}
		if diff := month.TaxDueBRL - 60.00; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Expected fund tax 60.00, got %f", month.TaxDueBRL)
		}
	})

	t.Run("fixed income taxed at the simplified flat rate", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-06", model.CategoryFixedIncome, 1, 5400.00, 400.00),
		})

		if diff := report[0].TaxDueBRL - 60.00; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Expected fixed-income tax 60.00, got %f", report[0].TaxDueBRL)
		}
	})

	t.Run("category loss does not offset another category's gain", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-07", model.CategoryStock, 2000, 15.00, -1000.00), // 30000 in sales
			gainDetail("2024-07", model.CategoryFund, 10, 100.00, 500.00),
		})

		month := report[0]
		if month.IsExempt {
			t.Error("Expected non-exempt month at 30000.00 in stock sales")
		}
		// Stock bucket is negative and contributes nothing; the fund gain
		// is taxed in full.
		if month.TaxableGainBRL != 500.00 {
			t.Errorf("Expected taxable gain 500.00, got %f", month.TaxableGainBRL)
		}
		if diff := month.TaxDueBRL - 100.00; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Expected tax due 100.00, got %f", month.TaxDueBRL)
		}
	})
}

// TestBuildTaxReport_Scope tests country filtering and ordering.
func TestBuildTaxReport_Scope(t *testing.T) {
	t.Run("foreign sales are excluded", func(t *testing.T) {
		foreign := gainDetail("2024-05", model.CategoryStock, 1000, 30.00, 2000.00)
		foreign.Country = "US"

		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{foreign})
		if len(report) != 0 {
			t.Errorf("Expected empty report for foreign-only sales, got %d months", len(report))
		}
	})

	t.Run("months ordered most recent first", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-03", model.CategoryStock, 10, 10.00, 10.00),
			gainDetail("2024-11", model.CategoryStock, 10, 10.00, 10.00),
			gainDetail("2024-07", model.CategoryStock, 10, 10.00, 10.00),
		})

		want := []string{"2024-11", "2024-07", "2024-03"}
		for i, month := range report {
			if month.Month != want[i] {
				t.Errorf("Expected month %s at index %d, got %s", want[i], i, month.Month)
			}
		}
	})

	t.Run("details carried through to the summary", func(t *testing.T) {
		report := ledger.BuildTaxReport([]ledger.RealizedGainDetail{
			gainDetail("2024-05", model.CategoryStock, 10, 10.00, 10.00),
			gainDetail("2024-05", model.CategoryFund, 5, 20.00, 5.00),
		})

		if len(report[0].Details) != 2 {
			t.Errorf("Expected 2 detail records in the month, got %d", len(report[0].Details))
		}
	})
}
