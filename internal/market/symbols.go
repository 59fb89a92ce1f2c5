package market

import "strings"

// Common NSE aliases: what people actually type on WhatsApp vs. the listed
// symbol. Two-word aliases are matched before single tokens.
var symbolAliases = map[string]string{
	"RELIANCE":      "RELIANCE",
	"RIL":           "RELIANCE",
	"TCS":           "TCS",
	"INFOSYS":       "INFY",
	"INFY":          "INFY",
	"HDFCBANK":      "HDFCBANK",
	"HDFC BANK":     "HDFCBANK",
	"ICICIBANK":     "ICICIBANK",
	"ICICI BANK":    "ICICIBANK",
	"SBI":           "SBIN",
	"SBIN":          "SBIN",
	"AIRTEL":        "BHARTIARTL",
	"BHARTIARTL":    "BHARTIARTL",
	"ITC":           "ITC",
	"L&T":           "LT",
	"LT":            "LT",
	"TATA MOTORS":   "TATAMOTORS",
	"TATAMOTORS":    "TATAMOTORS",
	"TATA STEEL":    "TATASTEEL",
	"TATASTEEL":     "TATASTEEL",
	"WIPRO":         "WIPRO",
	"HCL TECH":      "HCLTECH",
	"HCLTECH":       "HCLTECH",
	"MARUTI":        "MARUTI",
	"KOTAK":         "KOTAKBANK",
	"KOTAKBANK":     "KOTAKBANK",
	"AXIS BANK":     "AXISBANK",
	"AXISBANK":      "AXISBANK",
	"SUN PHARMA":    "SUNPHARMA",
	"SUNPHARMA":     "SUNPHARMA",
	"ASIAN PAINTS":  "ASIANPAINT",
	"ASIANPAINT":    "ASIANPAINT",
	"TITAN":         "TITAN",
	"NESTLE":        "NESTLEIND",
	"NESTLEIND":     "NESTLEIND",
	"ULTRATECH":     "ULTRACEMCO",
	"ULTRACEMCO":    "ULTRACEMCO",
	"HUL":           "HINDUNILVR",
	"HINDUNILVR":    "HINDUNILVR",
	"TECH MAHINDRA": "TECHM",
	"TECHM":         "TECHM",
	"M&M":           "M&M",
	"MAHINDRA":      "M&M",
	"ADANI":         "ADANIENT",
	"ADANIENT":      "ADANIENT",
	"BAJAJ FINANCE": "BAJFINANCE",
	"BAJFINANCE":    "BAJFINANCE",
	"COAL INDIA":    "COALINDIA",
	"COALINDIA":     "COALINDIA",
	"ONGC":          "ONGC",
	"NTPC":          "NTPC",
	"POWERGRID":     "POWERGRID",
	"CIPLA":         "CIPLA",
	"DRREDDY":       "DRREDDY",
}

// Filler words people type around stock names. Dropped before the
// pass-through check so "tell me about TCS" does not yield a TELL symbol.
var stopwords = map[string]bool{
	"AND": true, "OR": true, "THE": true, "OF": true, "FOR": true,
	"ABOUT": true, "TELL": true, "ME": true, "PLEASE": true, "CHECK": true,
	"STOCK": true, "STOCKS": true, "SHARE": true, "SHARES": true,
	"PRICE": true, "ANALYSIS": true, "KYA": true, "HAI": true, "BATAO": true,
}

// ParseQuery extracts up to max NSE symbols from a free-form message like
// "Reliance TCS" or "tata motors, infosys". Unknown tokens pass through
// uppercased so newly listed symbols still work.
func ParseQuery(query string, max int) []string {
	fields := strings.FieldsFunc(strings.ToUpper(query), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == ';'
	})

	var out []string
	seen := make(map[string]bool)
	add := func(sym string) {
		if sym != "" && !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}

	for i := 0; i < len(fields) && len(out) < max; {
		if i+1 < len(fields) {
			if sym, ok := symbolAliases[fields[i]+" "+fields[i+1]]; ok {
				add(sym)
				i += 2
				continue
			}
		}
		if sym, ok := symbolAliases[fields[i]]; ok {
			add(sym)
		} else if !stopwords[fields[i]] && looksLikeSymbol(fields[i]) {
			add(fields[i])
		}
		i++
	}
	return out
}

func looksLikeSymbol(s string) bool {
	if len(s) < 2 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '&' && r != '-' {
			return false
		}
	}
	return true
}
