package marketdata

import (
	"context"
	"strings"

	"github.com/agbru/ddmcalc/internal/dividends"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/agbru/ddmcalc/internal/marketdata Provider

// Provider is a source of per-ticker dividend data.
type Provider interface {
	// FetchDividendHistory returns the full dividend history of ticker.
	// An empty history is reported as apperrors.DataUnavailableError.
	FetchDividendHistory(ctx context.Context, ticker string) (dividends.Series, error)
	// FetchCompanyName returns the company's long name, or ticker itself
	// when no name is available.
	FetchCompanyName(ctx context.Context, ticker string) string
}

// NormalizeTicker upper-cases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
