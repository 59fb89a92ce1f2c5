package market

// Snapshot is the per-stock bundle handed to the analysis generator. Ratio
// fields are zero when the provider did not report them; Err is set when no
// provider could serve the symbol at all, so one dead symbol never fails a
// whole multi-stock request.
type Snapshot struct {
	Symbol        string
	Name          string
	Price         float64
	ChangePct     float64
	MarketCap     float64
	PE            float64
	EPS           float64
	ROE           float64
	DebtToEquity  float64
	DividendYield float64
	YearHigh      float64
	YearLow       float64
	Headlines     []string
	Err           string
}
