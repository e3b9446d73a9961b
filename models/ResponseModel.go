package models

// Error codes returned inside the response envelope. The set is closed:
// callers branch on these to pick an empty state to render.
const (
	ErrCodeAPI      = "API_ERROR"
	ErrCodeNoQuotes = "NO_QUOTES"
	ErrCodeNotFound = "NOT_FOUND"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse is the generic error body used in swagger annotations.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RankedQuote is a quote augmented with the derived comparison fields.
// The derived fields are transient; they are computed per request and
// never written back to storage.
type RankedQuote struct {
	Quote
	// CostRank is 1-based, 1 = cheapest. Ties keep arrival order.
	CostRank int `json:"cost_rank"`
	// CostPercentOfLowest is round(cost/lowest*100). It is null for
	// non-zero-cost quotes when the lowest cost is zero.
	CostPercentOfLowest *int `json:"cost_percentage_of_lowest"`
}

// ComparisonMetrics aggregates the quotes compared for one asset.
// AverageCost is kept unrounded; rounding happens at presentation time.
type ComparisonMetrics struct {
	LowestCost  float64 `json:"lowest_cost"`
	HighestCost float64 `json:"highest_cost"`
	AverageCost float64 `json:"average_cost"`
	QuoteCount  int     `json:"quote_count"`
	CostRange   float64 `json:"cost_range"`
}

// QuoteSummary is the always-renderable dashboard aggregate. Unlike the
// full comparison it is defined for zero quotes.
type QuoteSummary struct {
	QuoteCount        int            `json:"quote_count"`
	LowestCost        float64        `json:"lowest_cost"`
	HighestCost       float64        `json:"highest_cost"`
	AverageCost       float64        `json:"average_cost"`
	StatusCounts      map[string]int `json:"status_counts"`
	HasMultipleQuotes bool           `json:"has_multiple_quotes"`
}

// ComparisonData is the success payload of the full comparison.
type ComparisonData struct {
	Asset             Asset             `json:"asset"`
	Project           *Project          `json:"project,omitempty"`
	Quotes            []RankedQuote     `json:"quotes"`
	ComparisonMetrics ComparisonMetrics `json:"comparison_metrics"`
}

// QuoteComparisonResponse is the discriminated envelope for
// GET /api/compare/:asset_id. Exactly one of Data and Error is set.
type QuoteComparisonResponse struct {
	Success bool            `json:"success"`
	Data    *ComparisonData `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

type SummaryData struct {
	AssetID int          `json:"asset_id"`
	Summary QuoteSummary `json:"summary"`
}

// QuoteSummaryResponse is the envelope for the summary variant. It
// succeeds even when the asset has zero quotes.
type QuoteSummaryResponse struct {
	Success bool         `json:"success"`
	Data    *SummaryData `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   *APIError    `json:"error,omitempty"`
}

// AssetSummaryRow pairs an asset with its quote summary for the project
// dashboard.
type AssetSummaryRow struct {
	Asset   Asset        `json:"asset"`
	Summary QuoteSummary `json:"summary"`
}

type ProjectDashboard struct {
	Project     Project           `json:"project"`
	Assets      []AssetSummaryRow `json:"assets"`
	TotalQuotes int               `json:"total_quotes"`
	TotalAssets int               `json:"total_assets"`
}
