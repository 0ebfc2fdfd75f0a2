package ledger_test

import (
	"testing"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/ledger"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// TestHistoricalEquity_PointPerDate tests point emission along the replay.
//
// WHY: The frontend chart expects exactly one point per distinct date; two
// same-day transactions must collapse into the last state of that day.
func TestHistoricalEquity_PointPerDate(t *testing.T) {
	t.Run("one point per distinct date", func(t *testing.T) {
		result := ledger.Replay([]model.Transaction{
			buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
			buy("b2", "PETR4", day(2024, 1, 11), 100, 11.00, 0),
			buy("b3", "PETR4", day(2024, 1, 12), 100, 12.00, 0),
		}, 5.0)

		if len(result.HistoricalEquity) != 3 {
			t.Fatalf("Expected 3 equity points, got %d", len(result.HistoricalEquity))
		}
	})

	t.Run("same-day transactions collapse into one point", func(t *testing.T) {
		result := ledger.Replay([]model.Transaction{
			buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
			buy("b2", "VALE3", day(2024, 1, 10), 50, 60.00, 0),
		}, 5.0)

		if len(result.HistoricalEquity) != 1 {
			t.Fatalf("Expected 1 equity point for one date, got %d", len(result.HistoricalEquity))
		}
		point := result.HistoricalEquity[0]
		// End-of-day state: both buys included.
		if !approx(point.Invested, 1000.00+3000.00) {
			t.Errorf("Expected invested 4000.00, got %f", point.Invested)
		}
		if !approx(point.Equity, 4000.00) {
			t.Errorf("Expected equity 4000.00, got %f", point.Equity)
		}
	})
}

// TestHistoricalEquity_Valuation tests the equity formula across event types.
//
// WHY: Equity is market value at last-observed prices plus realized cash.
// Each transaction type touches the formula differently and a wrong branch
// shows up as a permanent step in the chart.
func TestHistoricalEquity_Valuation(t *testing.T) {
	t.Run("price movement on a later buy revalues the holding", func(t *testing.T) {
		result := ledger.Replay([]model.Transaction{
			buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
			buy("b2", "PETR4", day(2024, 2, 10), 10, 20.00, 0),
		}, 5.0)

		last := result.HistoricalEquity[1]
		// 110 shares now valued at the latest price of 20.00.
		if !approx(last.Equity, 2200.00) {
			t.Errorf("Expected equity 2200.00, got %f", last.Equity)
		}
		if !approx(last.Invested, 1200.00) {
			t.Errorf("Expected invested 1200.00, got %f", last.Invested)
		}
	})

	t.Run("sale converts holding into realized cash", func(t *testing.T) {
		result := ledger.Replay([]model.Transaction{
			buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
			sell("s1", "PETR4", day(2024, 2, 10), 100, 15.00, 0),
		}, 5.0)

		last := result.HistoricalEquity[1]
		// Nothing held; equity is the realized gain of 500.00.
		if !approx(last.Equity, 500.00) {
			t.Errorf("Expected equity 500.00 after liquidation, got %f", last.Equity)
		}
		if !approx(last.Invested, 0) {
			t.Errorf("Expected invested 0 after liquidation, got %f", last.Invested)
		}
	})

	t.Run("dividend raises equity without touching invested", func(t *testing.T) {
		dividendTx := model.Transaction{
			ID: "d1", Date: day(2024, 2, 1), Ticker: "PETR4", Broker: "Inter",
			Country: model.CountryLocal, Category: model.CategoryStock,
			Type: model.TypeDividend, Quantity: 100, UnitPrice: 0.50,
		}
		result := ledger.Replay([]model.Transaction{
			buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
			dividendTx,
		}, 5.0)

		last := result.HistoricalEquity[1]
		if !approx(last.Equity, 1000.00+50.00) {
			t.Errorf("Expected equity 1050.00, got %f", last.Equity)
		}
		if !approx(last.Invested, 1000.00) {
			t.Errorf("Expected invested unchanged at 1000.00, got %f", last.Invested)
		}
	})

	t.Run("split leaves market value continuous", func(t *testing.T) {
		splitTx := model.Transaction{
			ID: "sp1", Date: day(2024, 2, 1), Ticker: "MGLU3", Broker: "Inter",
			Country: model.CountryLocal, Category: model.CategoryStock,
			Type: model.TypeSplit, SplitFrom: 1, SplitTo: 5,
		}
		result := ledger.Replay([]model.Transaction{
			buy("b1", "MGLU3", day(2024, 1, 10), 100, 10.00, 0),
			splitTx,
		}, 5.0)

		before := result.HistoricalEquity[0]
		after := result.HistoricalEquity[1]
		if !approx(before.Equity, after.Equity) {
			t.Errorf("Expected split to conserve equity: before=%f after=%f",
				before.Equity, after.Equity)
		}
	})

	t.Run("bonus shares revalue at the last traded price", func(t *testing.T) {
		bonusTx := model.Transaction{
			ID: "bn1", Date: day(2024, 2, 1), Ticker: "ITSA4", Broker: "Inter",
			Country: model.CountryLocal, Category: model.CategoryStock,
			Type: model.TypeBonus, Quantity: 10,
		}
		result := ledger.Replay([]model.Transaction{
			buy("b1", "ITSA4", day(2024, 1, 10), 100, 10.00, 0),
			bonusTx,
		}, 5.0)

		last := result.HistoricalEquity[1]
		// 110 shares at the last-observed price of 10.00.
		if !approx(last.Equity, 1100.00) {
			t.Errorf("Expected equity 1100.00 after bonus, got %f", last.Equity)
		}
	})
}

// TestHistoricalEquity_BrokerAggregation tests exposure keying.
//
// WHY: The same ticker at two brokers is one exposure on the curve even
// though it is two positions in the ledger.
func TestHistoricalEquity_BrokerAggregation(t *testing.T) {
	atXP := buy("b2", "PETR4", day(2024, 1, 11), 50, 12.00, 0)
	atXP.Broker = "XP"

	result := ledger.Replay([]model.Transaction{
		buy("b1", "PETR4", day(2024, 1, 10), 100, 10.00, 0),
		atXP,
	}, 5.0)

	last := result.HistoricalEquity[1]
	// 150 shares total, all at the last price of 12.00.
	if !approx(last.Equity, 1800.00) {
		t.Errorf("Expected equity 1800.00 across brokers, got %f", last.Equity)
	}
}
