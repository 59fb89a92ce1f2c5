package analysis

import (
	"fmt"
	"strings"

	"github.com/nikhilpatel/stockmitra/internal/market"
	"github.com/nikhilpatel/stockmitra/internal/prefs"
)

// WriteupSeparator divides independent stock write-ups in a reply. The
// outbound segmenter treats it as the most preferred break point, so
// multi-stock replies split cleanly between stocks.
const WriteupSeparator = "\n\n---\n\n"

const analysisSystemPrompt = `You are StockMitra, a careful assistant for Indian retail investors on WhatsApp.

You will receive factual data for one or more NSE-listed stocks. For each stock write a short investment summary: what the numbers say about valuation, profitability and momentum, and what a cautious investor should watch. Do not invent figures that are not in the data. Do not give a buy/sell instruction; describe strengths and risks.

Rules:
- Write one section per stock, in the order given.
- Separate sections with a line containing only "---" (blank line before and after).
- Plain text only. No markdown headings, no tables.
- End the reply with a one-line disclaimer that this is not investment advice.`

const translateSystemPrompt = `You translate stock-market summaries for WhatsApp users in India.

Translate the user's text into %s. Keep every number, percentage and stock symbol exactly as written. Keep the "---" separator lines and the line structure unchanged. Use plain, everyday %s; common English financial terms like PE or ROE may stay in English.`

var languageNames = map[prefs.Language]string{
	prefs.LanguageEnglish:  "English",
	prefs.LanguageHindi:    "Hindi",
	prefs.LanguageGujarati: "Gujarati",
}

// buildUserContent renders the snapshots into the prompt's data block.
func buildUserContent(snapshots []market.Snapshot) string {
	var b strings.Builder
	for i, s := range snapshots {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if s.Err != "" {
			fmt.Fprintf(&b, "Stock: %s\nData: unavailable (%s). Say so briefly and move on.\n", s.Symbol, s.Err)
			continue
		}

		fmt.Fprintf(&b, "Stock: %s (%s)\n", s.Name, s.Symbol)
		fmt.Fprintf(&b, "Price: ₹%.2f (%+.2f%% today)\n", s.Price, s.ChangePct)
		if s.MarketCap > 0 {
			fmt.Fprintf(&b, "Market cap: ₹%.0f crore\n", s.MarketCap/1e7)
		}
		if s.PE > 0 {
			fmt.Fprintf(&b, "PE: %.1f\n", s.PE)
		}
		if s.EPS != 0 {
			fmt.Fprintf(&b, "EPS: %.2f\n", s.EPS)
		}
		if s.ROE != 0 {
			fmt.Fprintf(&b, "ROE: %.1f%%\n", s.ROE)
		}
		if s.DebtToEquity != 0 {
			fmt.Fprintf(&b, "Debt/Equity: %.2f\n", s.DebtToEquity)
		}
		if s.DividendYield != 0 {
			fmt.Fprintf(&b, "Dividend yield: %.2f%%\n", s.DividendYield)
		}
		if s.YearHigh > 0 && s.YearLow > 0 {
			fmt.Fprintf(&b, "52-week range: ₹%.2f – ₹%.2f\n", s.YearLow, s.YearHigh)
		}
		if len(s.Headlines) > 0 {
			b.WriteString("Recent headlines:\n")
			for _, h := range s.Headlines {
				fmt.Fprintf(&b, "- %s\n", h)
			}
		}
	}
	return b.String()
}
