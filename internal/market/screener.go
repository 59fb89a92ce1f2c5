package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Screener scrapes Screener.in's top-ratios block as a fallback when FMP has
// no coverage for an NSE listing. Conservative pacing: one request a second.
type Screener struct {
	baseURL string
	client  *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

func NewScreener() *Screener {
	return &Screener{
		baseURL: "https://www.screener.in",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the site URL (used by tests).
func (s *Screener) WithBaseURL(url string) *Screener {
	s.baseURL = strings.TrimRight(url, "/")
	return s
}

// Fetch scrapes price and key ratios for an NSE symbol.
func (s *Screener) Fetch(ctx context.Context, symbol string) (*Snapshot, error) {
	s.throttle()

	url := fmt.Sprintf("%s/company/%s/consolidated/", s.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "stockmitra/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("screener %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("screener %s: status %s", symbol, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("screener %s: parse: %w", symbol, err)
	}

	snap := &Snapshot{Symbol: symbol}
	snap.Name = strings.TrimSpace(doc.Find("h1").First().Text())
	if snap.Name == "" {
		snap.Name = symbol
	}

	doc.Find("#top-ratios li").Each(func(_ int, li *goquery.Selection) {
		name := strings.TrimSpace(li.Find(".name").Text())
		value := parseScreenerNumber(li.Find(".number").Text())

		switch {
		case strings.Contains(name, "Current Price"):
			snap.Price = value
		case strings.Contains(name, "Market Cap"):
			snap.MarketCap = value * 1e7 // reported in ₹ crore
		case strings.Contains(name, "Stock P/E"):
			snap.PE = value
		case strings.Contains(name, "ROE"):
			snap.ROE = value
		case strings.Contains(name, "Dividend Yield"):
			snap.DividendYield = value
		case strings.Contains(name, "High"):
			snap.YearHigh = value
		}
	})

	if snap.Price == 0 {
		return nil, fmt.Errorf("screener %s: no price on page", symbol)
	}
	return snap, nil
}

func (s *Screener) throttle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wait := time.Second - time.Since(s.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	s.lastCall = time.Now()
}

func parseScreenerNumber(raw string) float64 {
	cleaned := strings.NewReplacer(",", "", "₹", "", "%", "", "Cr.", "", "Cr", "").Replace(raw)
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0
	}
	return v
}
