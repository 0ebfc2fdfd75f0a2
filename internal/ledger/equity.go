package ledger

import (
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// assetExposure is the running net quantity and last-observed trade price
// for one (country, ticker) pair. The equity curve values holdings at the
// last price seen in the transaction stream itself; live market prices are
// applied by callers after the replay, never inside it.
type assetExposure struct {
	country   string
	quantity  float64
	lastPrice float64
}

// exposureTracker maintains per-asset exposures across the replay. Unlike
// positions, exposures are keyed by (country, ticker) only: the equity curve
// does not care which broker holds the shares.
type exposureTracker struct {
	fxRate float64
	assets map[string]*assetExposure
	order  []string
}

func newExposureTracker(fxRate float64) *exposureTracker {
	return &exposureTracker{
		fxRate: fxRate,
		assets: make(map[string]*assetExposure),
	}
}

func (t *exposureTracker) asset(country, ticker string) *assetExposure {
	key := country + ":" + ticker
	if a, ok := t.assets[key]; ok {
		return a
	}
	a := &assetExposure{country: country}
	t.assets[key] = a
	t.order = append(t.order, key)
	return a
}

// observe folds one transaction into the tracker. Buys and sales update the
// last-observed price; bonus shares arrive at no price; splits rescale both
// quantity and price so market value stays continuous through the event;
// dividends touch neither quantity nor price.
func (t *exposureTracker) observe(tx model.Transaction) {
	a := t.asset(tx.Country, tx.Ticker)

	switch tx.Type {
	case model.TypeBuy:
		a.quantity += tx.Quantity
		a.lastPrice = tx.UnitPrice
	case model.TypeBonus:
		a.quantity += tx.Quantity
	case model.TypeSell, model.TypeRedemption:
		a.quantity -= tx.Quantity
		a.lastPrice = tx.UnitPrice
	case model.TypeSplit:
		if tx.SplitFrom > 0 {
			ratio := tx.SplitTo / tx.SplitFrom
			a.quantity *= ratio
			if ratio > Epsilon {
				a.lastPrice /= ratio
			}
		}
	case model.TypeDividend:
		// Cash event; exposure unchanged.
	}
}

// marketValue sums held quantity times last-observed price across all
// assets, normalized to local currency.
func (t *exposureTracker) marketValue() float64 {
	total := 0.0
	for _, key := range t.order {
		a := t.assets[key]
		if a.quantity <= Epsilon {
			continue
		}
		value := a.quantity * a.lastPrice
		if a.country != model.CountryLocal {
			value *= t.fxRate
		}
		total += value
	}
	return total
}
