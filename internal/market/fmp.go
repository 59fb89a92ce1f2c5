package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FMPClient talks to Financial Modeling Prep's v3 REST API.
type FMPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// FMPOption configures the client.
type FMPOption func(*FMPClient)

// WithFMPBaseURL overrides the API base URL (used by tests).
func WithFMPBaseURL(url string) FMPOption {
	return func(c *FMPClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithFMPHTTPClient sets a custom HTTP client.
func WithFMPHTTPClient(client *http.Client) FMPOption {
	return func(c *FMPClient) { c.client = client }
}

func NewFMPClient(apiKey string, opts ...FMPOption) *FMPClient {
	c := &FMPClient{
		baseURL: "https://financialmodelingprep.com/api/v3",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fmpQuote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
	MarketCap         float64 `json:"marketCap"`
	PE                float64 `json:"pe"`
	EPS               float64 `json:"eps"`
	YearHigh          float64 `json:"yearHigh"`
	YearLow           float64 `json:"yearLow"`
}

// fmpRatios carries the trailing-twelve-month ratios. "dividendYielTTM" is
// FMP's own field name, not a typo here.
type fmpRatios struct {
	ReturnOnEquityTTM  float64 `json:"returnOnEquityTTM"`
	DebtEquityRatioTTM float64 `json:"debtEquityRatioTTM"`
	DividendYieldTTM   float64 `json:"dividendYielTTM"`
}

// Quote fetches price and valuation data for one NSE symbol.
func (c *FMPClient) Quote(ctx context.Context, symbol string) (*fmpQuote, error) {
	var quotes []fmpQuote
	if err := c.fetchJSON(ctx, "/quote/"+toFMPSymbol(symbol), &quotes); err != nil {
		return nil, fmt.Errorf("fmp quote %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("fmp: no quote data for %s", symbol)
	}
	return &quotes[0], nil
}

// Ratios fetches TTM ratios for one NSE symbol. Missing ratios are not an
// error; FMP simply omits them for thinly covered listings.
func (c *FMPClient) Ratios(ctx context.Context, symbol string) (*fmpRatios, error) {
	var ratios []fmpRatios
	if err := c.fetchJSON(ctx, "/ratios-ttm/"+toFMPSymbol(symbol), &ratios); err != nil {
		return nil, fmt.Errorf("fmp ratios %s: %w", symbol, err)
	}
	if len(ratios) == 0 {
		return nil, nil
	}
	return &ratios[0], nil
}

func (c *FMPClient) fetchJSON(ctx context.Context, path string, out any) error {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	url := c.baseURL + path + sep + "apikey=" + c.apiKey

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %s body=%s", resp.Status, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// toFMPSymbol maps a bare NSE symbol to FMP's exchange-suffixed form.
func toFMPSymbol(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".NS"
}
