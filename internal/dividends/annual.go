package dividends

// YearTotal is the sum of payments made in one calendar year.
type YearTotal struct {
	Year     int
	Total    float64
	Payments int
}

// AnnualTotals groups s by calendar year in ascending order. Years without
// payments are omitted.
func AnnualTotals(s Series) []YearTotal {
	var out []YearTotal
	for _, p := range s.payments {
		y := p.Date.Year()
		if n := len(out); n > 0 && out[n-1].Year == y {
			out[n-1].Total += p.Amount
			out[n-1].Payments++
			continue
		}
		out = append(out, YearTotal{Year: y, Total: p.Amount, Payments: 1})
	}
	return out
}

// Totals returns the Total of each entry, for charting.
func Totals(years []YearTotal) []float64 {
	out := make([]float64, len(years))
	for i, y := range years {
		out[i] = y.Total
	}
	return out
}
