package marketdata

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/ddmcalc/internal/dividends"
	"github.com/agbru/ddmcalc/internal/valuation"
)

// RecentGrowthYears is the window of History.RecentGrowth.
const RecentGrowthYears = 5

// History is a fetched dividend history with the company it belongs to.
type History struct {
	Ticker  string
	Company string
	Series  dividends.Series
}

// Title returns "Company (TICKER) Dividend History".
func (h History) Title() string {
	name := h.Company
	if name == "" {
		name = h.Ticker
	}
	return fmt.Sprintf("%s (%s) Dividend History", name, h.Ticker)
}

// Growth is the CAGR over the whole history.
func (h History) Growth() valuation.Result { return dividends.HistoricalCAGR(h.Series) }

// RecentGrowth is the CAGR over the last RecentGrowthYears years.
func (h History) RecentGrowth() valuation.Result {
	return dividends.RecentCAGR(h.Series, RecentGrowthYears)
}

// FetchHistory fetches the dividend history and the company name of ticker
// concurrently. The name falls back to the ticker; only the history fetch
// can fail.
func FetchHistory(ctx context.Context, p Provider, ticker string) (History, error) {
	h := History{Ticker: NormalizeTicker(ticker)}
	var name string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.FetchDividendHistory(gctx, h.Ticker)
		if err != nil {
			return err
		}
		h.Series = s
		return nil
	})
	g.Go(func() error {
		name = p.FetchCompanyName(gctx, h.Ticker)
		return nil
	})
	if err := g.Wait(); err != nil {
		return History{Ticker: h.Ticker}, err
	}
	h.Company = name
	return h, nil
}
