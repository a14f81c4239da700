package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/ddmcalc/internal/dividends"
	apperrors "github.com/agbru/ddmcalc/internal/errors"
	"github.com/agbru/ddmcalc/internal/logging"
	"github.com/agbru/ddmcalc/internal/metrics"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 10 * time.Second

	userAgent    = "Mozilla/5.0 (compatible; ddmcalc/1.0)"
	maxBodyBytes = 8 << 20
	tracerName   = "github.com/agbru/ddmcalc/internal/marketdata"
)

// YahooProvider fetches data from the Yahoo Finance chart endpoint.
type YahooProvider struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// YahooOption configures a YahooProvider.
type YahooOption func(*YahooProvider)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(u string) YahooOption {
	return func(p *YahooProvider) { p.baseURL = u }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) YahooOption {
	return func(p *YahooProvider) { p.client = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) YahooOption {
	return func(p *YahooProvider) { p.client = &http.Client{Timeout: d} }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) YahooOption {
	return func(p *YahooProvider) { p.logger = l }
}

// WithMetrics records upstream requests in m.
func WithMetrics(m *metrics.Metrics) YahooOption {
	return func(p *YahooProvider) { p.metrics = m }
}

// NewYahooProvider returns a provider with sensible defaults.
func NewYahooProvider(opts ...YahooOption) *YahooProvider {
	p := &YahooProvider{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  logging.Nop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
	} `json:"meta"`
	Events struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *chartError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// FetchDividendHistory implements Provider.
func (p *YahooProvider) FetchDividendHistory(ctx context.Context, ticker string) (dividends.Series, error) {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return dividends.Series{}, apperrors.ValidationError{Field: "ticker", Message: "ticker must not be empty"}
	}

	ctx, span := p.tracer.Start(ctx, "marketdata.FetchDividendHistory",
		trace.WithAttributes(attribute.String("ticker", ticker)))
	defer span.End()

	start := time.Now()
	res, err := p.chart(ctx, ticker, url.Values{
		"range":    {"max"},
		"interval": {"1mo"},
		"events":   {"div"},
	})
	if err != nil {
		p.metrics.ObserveFetch(metrics.OutcomeError, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("dividend history fetch failed", err, logging.String("ticker", ticker))
		return dividends.Series{}, apperrors.DataUnavailableError{Ticker: ticker, Cause: err}
	}

	payments := make([]dividends.Payment, 0, len(res.Events.Dividends))
	for _, d := range res.Events.Dividends {
		payments = append(payments, dividends.Payment{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}
	series := dividends.NewSeries(payments)
	span.SetAttributes(attribute.Int("payments", series.Len()))

	if series.Empty() {
		p.metrics.ObserveFetch(metrics.OutcomeEmpty, time.Since(start))
		p.logger.Info("no dividend history", logging.String("ticker", ticker))
		return dividends.Series{}, apperrors.DataUnavailableError{Ticker: ticker}
	}

	p.metrics.ObserveFetch(metrics.OutcomeOK, time.Since(start))
	latest, _ := series.Last()
	p.logger.Debug("dividend history fetched",
		logging.String("ticker", ticker),
		logging.Int("payments", series.Len()),
		logging.Float64("latest", latest.Amount),
		logging.Duration("elapsed", time.Since(start)))
	return series, nil
}

// FetchCompanyName implements Provider.
func (p *YahooProvider) FetchCompanyName(ctx context.Context, ticker string) string {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return ticker
	}

	ctx, span := p.tracer.Start(ctx, "marketdata.FetchCompanyName",
		trace.WithAttributes(attribute.String("ticker", ticker)))
	defer span.End()

	res, err := p.chart(ctx, ticker, url.Values{
		"range":    {"1d"},
		"interval": {"1d"},
	})
	if err != nil {
		span.RecordError(err)
		p.logger.Debug("company name lookup failed",
			logging.String("ticker", ticker), logging.Err(err))
		return ticker
	}
	switch {
	case res.Meta.LongName != "":
		return res.Meta.LongName
	case res.Meta.ShortName != "":
		return res.Meta.ShortName
	}
	return ticker
}

func (p *YahooProvider) chart(ctx context.Context, ticker string, q url.Values) (*chartResult, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.baseURL, url.PathEscape(ticker), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting chart: %w", err)
	}
	defer resp.Body.Close()

	var body chartResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body)

	if body.Chart.Error != nil {
		return nil, body.Chart.Error
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding chart: %w", decodeErr)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", ticker)
	}
	return &body.Chart.Result[0], nil
}
