package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"backend/models"
)

// ComparisonClient is the SDK counterpart of the comparison endpoints.
// It needs no configuration beyond the base API URL and fails closed:
// every transport or decode problem comes back as an error envelope, so
// callers only ever branch on the success flag.
type ComparisonClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewComparisonClient(baseURL string) *ComparisonClient {
	return &ComparisonClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewComparisonClientFromEnv reads the base URL from COMPARE_API_URL.
// An unset variable is not fatal here; calls on the resulting client
// return API_ERROR envelopes.
func NewComparisonClientFromEnv() *ComparisonClient {
	return NewComparisonClient(os.Getenv("COMPARE_API_URL"))
}

// GetQuoteComparison fetches the full ranked comparison for an asset.
func (cc *ComparisonClient) GetQuoteComparison(assetID int) models.QuoteComparisonResponse {
	var resp models.QuoteComparisonResponse
	if err := cc.getJSON(fmt.Sprintf("/api/compare/%d", assetID), &resp); err != nil {
		return models.QuoteComparisonResponse{
			Success: false,
			Error:   &models.APIError{Code: models.ErrCodeAPI, Message: "comparison request failed", Details: err.Error()},
		}
	}
	return resp
}

// GetQuoteSummary fetches the dashboard summary for an asset.
func (cc *ComparisonClient) GetQuoteSummary(assetID int) models.QuoteSummaryResponse {
	var resp models.QuoteSummaryResponse
	if err := cc.getJSON(fmt.Sprintf("/api/compare/%d/summary", assetID), &resp); err != nil {
		return models.QuoteSummaryResponse{
			Success: false,
			Error:   &models.APIError{Code: models.ErrCodeAPI, Message: "summary request failed", Details: err.Error()},
		}
	}
	return resp
}

type envelopeCheck struct {
	Success *bool            `json:"success"`
	Error   *models.APIError `json:"error"`
}

// getJSON performs the GET and decodes the envelope into out. A non-2xx
// status is not an error by itself: the server sends envelopes with
// error statuses too (404 NOT_FOUND), and those must pass through with
// their domain code intact.
func (cc *ComparisonClient) getJSON(path string, out interface{}) error {
	if cc.BaseURL == "" {
		return fmt.Errorf("comparison API base URL is not configured")
	}

	httpClient := cc.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Get(cc.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	var check envelopeCheck
	if err := json.Unmarshal(body, &check); err != nil || check.Success == nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
