package service_test

import (
	"testing"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/quotes"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/testutil"
)

// TestConsolidationService_Consolidate tests the full replay path from the
// database to the ledger result.
//
// WHY: Consolidation is the read path every endpoint depends on. This ensures
// the service loads transactions in the right shape and the engine produces
// positions, gains and the equity curve from real stored rows.
func TestConsolidationService_Consolidate(t *testing.T) {
	t.Run("empty ledger produces empty result", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		// Execute
		result, err := svc.Consolidate()

		// Assert
		if err != nil {
			t.Fatalf("Consolidate() returned unexpected error: %v", err)
		}
		if len(result.Positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(result.Positions))
		}
		if len(result.HistoricalEquity) != 0 {
			t.Errorf("Expected empty equity curve, got %d points", len(result.HistoricalEquity))
		}
	})

	t.Run("buy and sell produce position and realized gain", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		testutil.NewTransaction().
			WithTicker("PETR4").
			WithQuantity(100).
			WithUnitPrice(10.00).
			OnDate(2024, time.January, 10).
			Build(t, db)
		testutil.NewTransaction().
			OfType(model.TypeSell).
			WithTicker("PETR4").
			WithQuantity(40).
			WithUnitPrice(15.00).
			OnDate(2024, time.February, 10).
			Build(t, db)

		// Execute
		result, err := svc.Consolidate()

		// Assert
		if err != nil {
			t.Fatalf("Consolidate() returned unexpected error: %v", err)
		}

		if len(result.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(result.Positions))
		}
		pos := result.Positions[0]
		if pos.TotalQuantity != 60 {
			t.Errorf("Expected 60 remaining shares, got %f", pos.TotalQuantity)
		}

		if len(result.RealizedGainDetails) != 1 {
			t.Fatalf("Expected 1 realized gain, got %d", len(result.RealizedGainDetails))
		}
		if result.RealizedGainDetails[0].Gain != 200.00 {
			t.Errorf("Expected gain 200.00, got %f", result.RealizedGainDetails[0].Gain)
		}
	})

	t.Run("replay is independent of insertion order", func(t *testing.T) {
		// Setup: insert the sell before the buy.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		testutil.NewTransaction().
			OfType(model.TypeSell).
			WithTicker("VALE3").
			WithQuantity(100).
			WithUnitPrice(70.00).
			OnDate(2024, time.March, 1).
			Build(t, db)
		testutil.NewTransaction().
			WithTicker("VALE3").
			WithQuantity(100).
			WithUnitPrice(60.00).
			OnDate(2024, time.January, 1).
			Build(t, db)

		// Execute
		result, err := svc.Consolidate()

		// Assert
		if err != nil {
			t.Fatalf("Consolidate() returned unexpected error: %v", err)
		}
		if len(result.RealizedGainDetails) != 1 {
			t.Fatalf("Expected 1 realized gain, got %d", len(result.RealizedGainDetails))
		}
		if result.RealizedGainDetails[0].Gain != 1000.00 {
			t.Errorf("Expected gain 1000.00, got %f", result.RealizedGainDetails[0].Gain)
		}
	})
}

// TestConsolidationService_GetPortfolio tests quote enrichment.
//
// WHY: The portfolio view merges ledger state with live prices, and must
// degrade to ledger-only values when the provider has no quote. Both paths
// have to hold at once for a mixed portfolio.
func TestConsolidationService_GetPortfolio(t *testing.T) {
	t.Run("enriches quoted tickers and degrades unquoted ones", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationServiceWithQuotes(t, db, map[string]quotes.Quote{
			"PETR4": {Symbol: "PETR4", Price: 42.00, Currency: "BRL"},
		})

		testutil.CreateBuy(t, db, "PETR4", 100, 10.00)
		testutil.CreateBuy(t, db, "XPML11", 50, 100.00)

		// Execute
		positions, err := svc.GetPortfolio()

		// Assert
		if err != nil {
			t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(positions))
		}

		for _, pos := range positions {
			switch pos.Ticker {
			case "PETR4":
				if pos.CurrentPrice != 42.00 {
					t.Errorf("Expected current price 42.00, got %f", pos.CurrentPrice)
				}
				if pos.CurrentValue != 4200.00 {
					t.Errorf("Expected current value 4200.00, got %f", pos.CurrentValue)
				}
				if pos.UnrealizedGain != 3200.00 {
					t.Errorf("Expected unrealized gain 3200.00, got %f", pos.UnrealizedGain)
				}
			case "XPML11":
				if pos.CurrentPrice != 0 {
					t.Errorf("Expected no current price for unquoted ticker, got %f", pos.CurrentPrice)
				}
				if pos.TotalInvested != 5000.00 {
					t.Errorf("Expected invested 5000.00, got %f", pos.TotalInvested)
				}
			default:
				t.Errorf("Unexpected ticker %s", pos.Ticker)
			}
		}
	})
}

// TestConsolidationService_EquityHistory tests the materialized snapshot
// lifecycle.
//
// WHY: The history endpoint reads the snapshot table, falling back to a
// replay when it is empty. Rebuilds must atomically replace stale points so
// the chart and the ledger can never disagree for longer than one request.
func TestConsolidationService_EquityHistory(t *testing.T) {
	t.Run("empty snapshot falls back to replay and materializes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		testutil.CreateBuy(t, db, "PETR4", 100, 10.00)
		testutil.CreateBuy(t, db, "VALE3", 50, 60.00)

		// Execute
		points, err := svc.GetEquityHistory()

		// Assert
		if err != nil {
			t.Fatalf("GetEquityHistory() returned unexpected error: %v", err)
		}
		if len(points) != 1 {
			t.Fatalf("Expected 1 point for one distinct date, got %d", len(points))
		}
		if points[0].Invested != 4000.00 {
			t.Errorf("Expected invested 4000.00, got %f", points[0].Invested)
		}

		// The fallback materialized the curve.
		testutil.AssertRowCount(t, db, "equity_history", 1)
	})

	t.Run("rebuild replaces stale snapshot rows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		testutil.CreateBuy(t, db, "PETR4", 100, 10.00)
		if err := svc.RebuildEquitySnapshots(); err != nil {
			t.Fatalf("RebuildEquitySnapshots() returned unexpected error: %v", err)
		}

		// A second transaction on another date grows the curve.
		testutil.NewTransaction().
			WithTicker("PETR4").
			WithQuantity(10).
			WithUnitPrice(12.00).
			OnDate(2024, time.March, 1).
			Build(t, db)

		// Execute
		if err := svc.RebuildEquitySnapshots(); err != nil {
			t.Fatalf("RebuildEquitySnapshots() returned unexpected error: %v", err)
		}

		// Assert
		testutil.AssertRowCount(t, db, "equity_history", 2)
	})
}

// TestConsolidationService_TaxReport tests the service-level tax path
// against stored rows.
func TestConsolidationService_TaxReport(t *testing.T) {
	t.Run("sale over the exemption threshold is taxed", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestConsolidationService(t, db)

		testutil.NewTransaction().
			WithTicker("PETR4").
			WithQuantity(1000).
			WithUnitPrice(20.00).
			OnDate(2024, time.January, 10).
			Build(t, db)
		testutil.NewTransaction().
			OfType(model.TypeSell).
			WithTicker("PETR4").
			WithQuantity(1000).
			WithUnitPrice(25.00).
			OnDate(2024, time.February, 10).
			Build(t, db)

		// Execute
		report, err := svc.GetTaxReport()

		// Assert
		if err != nil {
			t.Fatalf("GetTaxReport() returned unexpected error: %v", err)
		}
		if len(report) != 1 {
			t.Fatalf("Expected 1 month in report, got %d", len(report))
		}

		month := report[0]
		if month.Month != "2024-02" {
			t.Errorf("Expected month 2024-02, got %s", month.Month)
		}
		if month.IsExempt {
			t.Error("Expected month with 25000.00 in sales to be taxable")
		}
		// Gain 5000.00 at the 15% stock rate.
		if month.TaxDueBRL != 750.00 {
			t.Errorf("Expected tax due 750.00, got %f", month.TaxDueBRL)
		}
	})
}
