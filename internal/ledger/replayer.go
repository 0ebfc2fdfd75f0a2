package ledger

import (
	"math"
	"sort"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// replayTotals carries the global accumulators threaded through the replay
// loop. They exist only to feed the equity curve: invested is the cumulative
// cost basis of all open positions and realized is the cumulative cash from
// sales and dividends, both normalized to local currency.
type replayTotals struct {
	invested float64
	realized float64
}

// replayer holds the mutable state of one consolidation pass.
type replayer struct {
	fxRate float64

	positions map[string]*Position
	order     []string // position keys in first-reference order

	details []RealizedGainDetail
	matches map[string][]MatchedLot

	totals  replayTotals
	exposvr *exposureTracker
	history []HistoricalPoint
}

// Replay consumes the transaction list once, in date order, and produces the
// full consolidation result. The input slice is not modified; ties on the
// same date preserve their original relative order (stable sort), which makes
// the replay deterministic for any input permutation of a given day.
//
// fxRate converts foreign-currency amounts to local currency and applies
// only to the global accumulators and the equity curve; per-position values
// stay in their trading currency.
func Replay(transactions []model.Transaction, fxRate float64) Result {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	r := &replayer{
		fxRate:    fxRate,
		positions: make(map[string]*Position),
		matches:   make(map[string][]MatchedLot),
		details:   []RealizedGainDetail{},
		exposvr:   newExposureTracker(fxRate),
	}

	for _, tx := range ordered {
		pos := r.position(tx)

		switch tx.Type {
		case model.TypeBuy:
			r.applyBuy(pos, tx)
		case model.TypeBonus:
			r.applyBonus(pos, tx)
		case model.TypeSplit:
			r.applySplit(pos, tx)
		case model.TypeSell, model.TypeRedemption:
			r.applySale(pos, tx)
		case model.TypeDividend:
			r.applyDividend(pos, tx)
		}

		r.recordEquity(tx)
	}

	return Result{
		Positions:           ActivePositions(r.allPositions()),
		RealizedGainDetails: r.details,
		SellMatches:         r.matches,
		RealizedGains:       RealizedGainsByMonth(r.details),
		HistoricalEquity:    r.history,
		TaxReport:           BuildTaxReport(r.details),
	}
}

// position resolves the transaction's position by its composite key,
// creating it on first reference.
func (r *replayer) position(tx model.Transaction) *Position {
	key := PositionKey(tx.Country, tx.Ticker, tx.Broker)
	if pos, ok := r.positions[key]; ok {
		return pos
	}
	pos := &Position{
		Ticker:   tx.Ticker,
		Broker:   tx.Broker,
		Country:  tx.Country,
		Category: tx.Category,
	}
	r.positions[key] = pos
	r.order = append(r.order, key)
	return pos
}

// allPositions returns positions in first-reference order, which keeps the
// output stable across runs before the projection sort is applied.
func (r *replayer) allPositions() []*Position {
	out := make([]*Position, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.positions[key])
	}
	return out
}

// toLocal normalizes an amount to local currency. Centralized here so no
// transaction-type branch can forget the conversion.
func (r *replayer) toLocal(amount float64, country string) float64 {
	if country == model.CountryLocal {
		return amount
	}
	return amount * r.fxRate
}

// applyBuy opens a new lot and folds the operation cost (price plus fees)
// into the weighted average price.
func (r *replayer) applyBuy(pos *Position, tx model.Transaction) {
	operationCost := tx.Quantity*tx.UnitPrice + tx.Fees
	newQuantity := pos.TotalQuantity + tx.Quantity

	if newQuantity > Epsilon {
		pos.AveragePrice = (pos.TotalQuantity*pos.AveragePrice + operationCost) / newQuantity
	} else {
		pos.AveragePrice = 0
	}
	pos.TotalQuantity = newQuantity
	pos.TotalInvested += operationCost
	pos.Lots = append(pos.Lots, &Lot{
		Date:             tx.Date,
		Quantity:         tx.Quantity,
		OriginalQuantity: tx.Quantity,
		UnitPrice:        tx.UnitPrice,
		Fees:             tx.Fees,
	})

	if tx.MaturityDate != nil {
		pos.MaturityDate = tx.MaturityDate
	}
	if tx.InterestRate != "" {
		pos.InterestRate = tx.InterestRate
	}

	r.totals.invested += r.toLocal(operationCost, tx.Country)
}

// applyBonus adds shares at zero cost: invested capital is unchanged, so
// the average price dilutes downward.
func (r *replayer) applyBonus(pos *Position, tx model.Transaction) {
	newQuantity := pos.TotalQuantity + tx.Quantity

	if newQuantity > Epsilon {
		pos.AveragePrice = pos.TotalInvested / newQuantity
	} else {
		pos.AveragePrice = 0
	}
	pos.TotalQuantity = newQuantity
	pos.Lots = append(pos.Lots, &Lot{
		Date:             tx.Date,
		Quantity:         tx.Quantity,
		OriginalQuantity: tx.Quantity,
	})
}

// applySplit rescales every open lot in place: quantity multiplies by the
// split ratio, per-unit price divides by it. Invested capital is conserved;
// only the share count and per-share price move.
func (r *replayer) applySplit(pos *Position, tx model.Transaction) {
	if tx.SplitFrom <= 0 {
		return
	}
	ratio := tx.SplitTo / tx.SplitFrom

	total := 0.0
	for _, lot := range pos.Lots {
		lot.UnitPrice /= ratio
		lot.Quantity *= ratio
		lot.OriginalQuantity *= ratio
		total += lot.Quantity
	}

	pos.TotalQuantity = total
	if total > Epsilon {
		pos.AveragePrice = pos.TotalInvested / total
	} else {
		pos.AveragePrice = 0
	}
}

// applySale consumes lots oldest-first until the requested quantity is
// satisfied or lots run out. Fees from each lot are prorated over the lot's
// original quantity, not its remaining quantity.
//
// When the sell quantity exceeds the remaining lots (a broker data gap or a
// buy that was never imported), matching simply stops: the cost basis
// reflects only the lots that were available, which understates cost and
// overstates gain. This mirrors the historical behavior of the ledger and
// is left as-is so re-imports reproduce identical reports.
func (r *replayer) applySale(pos *Position, tx model.Transaction) {
	remaining := tx.Quantity
	costBasis := 0.0

	for remaining > Epsilon && len(pos.Lots) > 0 {
		lot := pos.Lots[0]
		consumed := math.Min(remaining, lot.Quantity)

		feePerUnit := 0.0
		if lot.OriginalQuantity > Epsilon {
			feePerUnit = lot.Fees / lot.OriginalQuantity
		}
		lotCost := consumed * (lot.UnitPrice + feePerUnit)
		costBasis += lotCost

		r.matches[tx.ID] = append(r.matches[tx.ID], MatchedLot{
			LotDate:      lot.Date,
			LotUnitPrice: lot.UnitPrice,
			Quantity:     consumed,
			CostBasis:    lotCost,
		})

		lot.Quantity -= consumed
		remaining -= consumed
		if lot.Quantity <= Epsilon {
			pos.Lots = pos.Lots[1:]
		}
	}

	proceeds := tx.Quantity*tx.UnitPrice - tx.Fees
	gain := proceeds - costBasis

	r.details = append(r.details, RealizedGainDetail{
		TransactionID: tx.ID,
		Date:          tx.Date,
		Ticker:        tx.Ticker,
		Broker:        tx.Broker,
		Country:       tx.Country,
		Category:      tx.Category,
		Quantity:      tx.Quantity,
		SellPrice:     tx.UnitPrice,
		CostBasis:     costBasis,
		Gain:          gain,
		Month:         tx.Date.Format("2006-01"),
	})

	pos.TotalQuantity -= tx.Quantity
	pos.TotalInvested -= costBasis
	if pos.TotalQuantity <= Epsilon {
		// Full liquidation: snap to exact zero so floating residue cannot
		// resurrect a micro-position later.
		pos.TotalQuantity = 0
		pos.TotalInvested = 0
		pos.AveragePrice = 0
	} else {
		pos.AveragePrice = pos.TotalInvested / pos.TotalQuantity
	}

	r.totals.invested -= r.toLocal(costBasis, tx.Country)
	r.totals.realized += r.toLocal(gain, tx.Country)
}

// applyDividend credits the net amount to the position's cumulative
// dividends and to the realized-cash accumulator. Dividends behave like
// realized cash on the equity curve but are not capital gains and never
// reach the tax aggregator.
func (r *replayer) applyDividend(pos *Position, tx model.Transaction) {
	net := tx.Quantity*tx.UnitPrice - tx.Fees
	pos.TotalDividends += net
	r.totals.realized += r.toLocal(net, tx.Country)
}

// recordEquity folds the transaction into the exposure tracker and emits or
// updates the equity point for the transaction's date. The last transaction
// of a day wins, yielding one point per distinct date.
func (r *replayer) recordEquity(tx model.Transaction) {
	r.exposvr.observe(tx)

	point := HistoricalPoint{
		Date:     tx.Date,
		Equity:   r.exposvr.marketValue() + r.totals.realized,
		Invested: r.totals.invested,
	}

	if n := len(r.history); n > 0 && r.history[n-1].Date.Equal(tx.Date) {
		r.history[n-1] = point
	} else {
		r.history = append(r.history, point)
	}
}
