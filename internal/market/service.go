package market

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

const headlinesPerStock = 3

// Service aggregates the data providers into per-symbol snapshots.
type Service struct {
	fmp      *FMPClient
	screener *Screener
	news     *NewsFetcher
}

// NewService wires the providers. screener and news may be nil to disable
// the fallback scrape and headlines.
func NewService(fmp *FMPClient, screener *Screener, news *NewsFetcher) *Service {
	return &Service{fmp: fmp, screener: screener, news: news}
}

// Snapshots fetches all symbols concurrently. A failed symbol yields a
// snapshot with Err set instead of failing the whole request.
func (s *Service) Snapshots(ctx context.Context, symbols []string) []Snapshot {
	out := make([]Snapshot, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			out[i] = s.snapshot(gctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *Service) snapshot(ctx context.Context, symbol string) Snapshot {
	snap, err := s.fromFMP(ctx, symbol)
	if err != nil {
		log.Printf("[market] fmp %s: %v", symbol, err)
		if s.screener != nil {
			if fallback, ferr := s.screener.Fetch(ctx, symbol); ferr == nil {
				snap = fallback
			} else {
				log.Printf("[market] screener %s: %v", symbol, ferr)
			}
		}
	}
	if snap == nil {
		return Snapshot{Symbol: symbol, Err: "no data available"}
	}

	if s.news != nil {
		snap.Headlines = s.news.Headlines(ctx, snap.Name, symbol, headlinesPerStock)
	}
	return *snap
}

func (s *Service) fromFMP(ctx context.Context, symbol string) (*Snapshot, error) {
	quote, err := s.fmp.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Symbol:    symbol,
		Name:      quote.Name,
		Price:     quote.Price,
		ChangePct: quote.ChangesPercentage,
		MarketCap: quote.MarketCap,
		PE:        quote.PE,
		EPS:       quote.EPS,
		YearHigh:  quote.YearHigh,
		YearLow:   quote.YearLow,
	}

	// Ratios are best-effort; FMP omits them for thinly covered listings.
	if ratios, err := s.fmp.Ratios(ctx, symbol); err != nil {
		log.Printf("[market] fmp ratios %s: %v", symbol, err)
	} else if ratios != nil {
		snap.ROE = ratios.ReturnOnEquityTTM * 100
		snap.DebtToEquity = ratios.DebtEquityRatioTTM
		snap.DividendYield = ratios.DividendYieldTTM * 100
	}
	return snap, nil
}
