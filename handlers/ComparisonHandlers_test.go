package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/models"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

type fakeQuoteStore struct {
	asset   *models.Asset
	project *models.Project
	quotes  []models.Quote
	err     error
}

func (f *fakeQuoteStore) GetAssetWithProject(ctx context.Context, assetID int) (*models.Asset, *models.Project, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.asset, f.project, nil
}

func (f *fakeQuoteStore) GetQuotesForAsset(ctx context.Context, assetID int) ([]models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func comparisonRouter(store storage.QuoteStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/compare/:asset_id", GetQuoteComparison(store))
	r.GET("/api/compare/:asset_id/summary", GetQuoteSummary(store))
	return r
}

func TestGetQuoteComparison_Success(t *testing.T) {
	store := &fakeQuoteStore{
		asset:   &models.Asset{AssetID: 7, ProjectID: 3, Name: "Main stage truss"},
		project: &models.Project{ProjectID: 3, Name: "Summer festival"},
		quotes: []models.Quote{
			{ID: 1, AssetID: 7, Cost: 8500, Status: models.QuoteStatusSubmitted},
			{ID: 2, AssetID: 7, Cost: 12000, Status: models.QuoteStatusSubmitted},
			{ID: 3, AssetID: 7, Cost: 9000, Status: models.QuoteStatusSubmitted},
		},
	}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/7", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.QuoteComparisonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false, error = %+v", resp.Error)
	}
	if resp.Data == nil {
		t.Fatal("data is nil")
	}
	if resp.Data.Asset.AssetID != 7 {
		t.Errorf("asset id = %d, want 7", resp.Data.Asset.AssetID)
	}
	if resp.Data.Project == nil || resp.Data.Project.ProjectID != 3 {
		t.Errorf("project = %+v, want project 3", resp.Data.Project)
	}

	wantRanks := []int{1, 3, 2}
	for i, want := range wantRanks {
		if resp.Data.Quotes[i].CostRank != want {
			t.Errorf("quote %d rank = %d, want %d", i, resp.Data.Quotes[i].CostRank, want)
		}
	}
	if resp.Data.ComparisonMetrics.CostRange != 3500 {
		t.Errorf("cost range = %v, want 3500", resp.Data.ComparisonMetrics.CostRange)
	}
}

func TestGetQuoteComparison_NoQuotes(t *testing.T) {
	store := &fakeQuoteStore{
		asset:   &models.Asset{AssetID: 7, ProjectID: 3},
		project: &models.Project{ProjectID: 3},
	}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/7", nil)
	r.ServeHTTP(w, req)

	var resp models.QuoteComparisonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if resp.Error == nil {
		t.Fatal("error is nil")
	}
	// A domain-empty comparison is NO_QUOTES, never the generic code.
	if resp.Error.Code != models.ErrCodeNoQuotes {
		t.Errorf("error code = %s, want %s", resp.Error.Code, models.ErrCodeNoQuotes)
	}
}

func TestGetQuoteComparison_NotFound(t *testing.T) {
	store := &fakeQuoteStore{err: storage.ErrAssetNotFound}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp models.QuoteComparisonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeNotFound)
	}
}

func TestGetQuoteComparison_StorageFault(t *testing.T) {
	store := &fakeQuoteStore{err: errors.New("connection refused")}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/7", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp models.QuoteComparisonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeAPI {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeAPI)
	}
	if resp.Error.Details != "connection refused" {
		t.Errorf("details = %q, want underlying message preserved", resp.Error.Details)
	}
}

func TestGetQuoteComparison_BadAssetID(t *testing.T) {
	r := comparisonRouter(&fakeQuoteStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/not-a-number", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetQuoteSummary_ZeroQuotes(t *testing.T) {
	store := &fakeQuoteStore{
		asset:   &models.Asset{AssetID: 7, ProjectID: 3},
		project: &models.Project{ProjectID: 3},
	}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/7/summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.QuoteSummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false, error = %+v", resp.Error)
	}
	if resp.Data == nil {
		t.Fatal("data is nil")
	}
	if resp.Data.Summary.QuoteCount != 0 {
		t.Errorf("quote count = %d, want 0", resp.Data.Summary.QuoteCount)
	}
	if resp.Data.Summary.HasMultipleQuotes {
		t.Error("has_multiple_quotes = true, want false")
	}
	if resp.Data.Summary.StatusCounts == nil || len(resp.Data.Summary.StatusCounts) != 0 {
		t.Errorf("status counts = %v, want empty map", resp.Data.Summary.StatusCounts)
	}
}

func TestGetQuoteSummary_CountsStatuses(t *testing.T) {
	store := &fakeQuoteStore{
		asset:   &models.Asset{AssetID: 7, ProjectID: 3},
		project: &models.Project{ProjectID: 3},
		quotes: []models.Quote{
			{Cost: 100, Status: models.QuoteStatusSubmitted},
			{Cost: 200, Status: models.QuoteStatusAccepted},
			{Cost: 300, Status: models.QuoteStatusSubmitted},
		},
	}
	r := comparisonRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compare/7/summary", nil)
	r.ServeHTTP(w, req)

	var resp models.QuoteSummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Summary.StatusCounts[models.QuoteStatusSubmitted] != 2 {
		t.Errorf("submitted count = %d, want 2", resp.Data.Summary.StatusCounts[models.QuoteStatusSubmitted])
	}
	if !resp.Data.Summary.HasMultipleQuotes {
		t.Error("has_multiple_quotes = false, want true")
	}
}
