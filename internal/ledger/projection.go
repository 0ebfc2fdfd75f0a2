package ledger

import "sort"

// ActivePositions filters out positions that are fully closed and never paid
// a dividend, then sorts by invested capital descending for display
// stability. The input order (first-reference order) breaks ties.
func ActivePositions(positions []*Position) []*Position {
	out := make([]*Position, 0, len(positions))
	for _, pos := range positions {
		if pos.TotalQuantity > Epsilon || pos.TotalDividends > Epsilon {
			out = append(out, pos)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalInvested > out[j].TotalInvested
	})
	return out
}

// RealizedGainsByMonth collapses realized-gain records into one total per
// calendar month, most recent first. Unlike the tax report this includes
// every country — it feeds the reporting layer, not the tax rules.
func RealizedGainsByMonth(details []RealizedGainDetail) []MonthlyGain {
	byMonth := make(map[string]float64)
	for _, d := range details {
		byMonth[d.Month] += d.Gain
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]MonthlyGain, 0, len(months))
	for _, month := range months {
		out = append(out, MonthlyGain{Month: month, Gain: byMonth[month]})
	}
	return out
}
