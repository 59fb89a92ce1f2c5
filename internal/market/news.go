package market

import (
	"context"
	"log"
	"strings"

	"github.com/mmcdole/gofeed"
)

// DefaultNewsFeeds lists Indian financial news RSS sources.
var DefaultNewsFeeds = []string{
	"https://www.moneycontrol.com/rss/marketreports.xml",
	"https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms",
	"https://www.livemint.com/rss/markets",
}

// NewsFetcher pulls recent headlines mentioning a stock from RSS feeds.
type NewsFetcher struct {
	parser *gofeed.Parser
	feeds  []string
}

func NewNewsFetcher(feeds []string) *NewsFetcher {
	if len(feeds) == 0 {
		feeds = DefaultNewsFeeds
	}
	return &NewsFetcher{
		parser: gofeed.NewParser(),
		feeds:  feeds,
	}
}

// Headlines returns up to limit titles that mention the company name or
// symbol. Feed failures are logged and skipped; headlines are garnish, not
// a hard dependency of the analysis.
func (f *NewsFetcher) Headlines(ctx context.Context, name, symbol string, limit int) []string {
	needles := keywords(name, symbol)

	var out []string
	for _, url := range f.feeds {
		if len(out) >= limit {
			break
		}
		feed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			log.Printf("[market] news feed %s: %v", url, err)
			continue
		}
		for _, item := range feed.Items {
			if len(out) >= limit {
				break
			}
			title := strings.ToLower(item.Title)
			for _, n := range needles {
				if strings.Contains(title, n) {
					out = append(out, item.Title)
					break
				}
			}
		}
	}
	return out
}

func keywords(name, symbol string) []string {
	var out []string
	if symbol != "" {
		out = append(out, strings.ToLower(symbol))
	}
	// First word of the company name catches "Reliance Industries Ltd"
	// in a headline that just says "Reliance".
	if fields := strings.Fields(strings.ToLower(name)); len(fields) > 0 && len(fields[0]) > 2 {
		out = append(out, fields[0])
	}
	return out
}
