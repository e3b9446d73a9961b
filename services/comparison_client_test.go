package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/models"
)

func TestComparisonClient_UnsetBaseURL(t *testing.T) {
	client := NewComparisonClient("")

	resp := client.GetQuoteComparison(1)
	if resp.Success {
		t.Fatal("success = true, want fail-closed envelope")
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeAPI {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeAPI)
	}

	summary := client.GetQuoteSummary(1)
	if summary.Success {
		t.Fatal("summary success = true, want fail-closed envelope")
	}
	if summary.Error == nil || summary.Error.Code != models.ErrCodeAPI {
		t.Errorf("summary error = %+v, want code %s", summary.Error, models.ErrCodeAPI)
	}
}

func TestComparisonClient_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/compare/7" {
			t.Errorf("path = %s, want /api/compare/7", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"asset": {"asset_id": 7, "project_id": 3, "name": "Stage lighting rig"},
				"quotes": [
					{"id": 1, "cost": 5000, "status": "Submitted", "cost_rank": 1, "cost_percentage_of_lowest": 100}
				],
				"comparison_metrics": {"lowest_cost": 5000, "highest_cost": 5000, "average_cost": 5000, "quote_count": 1, "cost_range": 0}
			}
		}`))
	}))
	defer srv.Close()

	client := NewComparisonClient(srv.URL)
	resp := client.GetQuoteComparison(7)

	if !resp.Success {
		t.Fatalf("success = false, error = %+v", resp.Error)
	}
	if resp.Data == nil || resp.Data.Asset.AssetID != 7 {
		t.Fatalf("data = %+v, want asset 7", resp.Data)
	}
	if len(resp.Data.Quotes) != 1 || resp.Data.Quotes[0].CostRank != 1 {
		t.Errorf("quotes = %+v, want one quote ranked 1", resp.Data.Quotes)
	}
}

func TestComparisonClient_DomainErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "error": {"code": "NOT_FOUND", "message": "asset not found"}}`))
	}))
	defer srv.Close()

	client := NewComparisonClient(srv.URL)
	resp := client.GetQuoteComparison(999)

	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("error = %+v, want domain code NOT_FOUND preserved", resp.Error)
	}
}

func TestComparisonClient_NonEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	client := NewComparisonClient(srv.URL)
	resp := client.GetQuoteComparison(7)

	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeAPI {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeAPI)
	}
	if resp.Error.Details == "" {
		t.Error("details empty, want underlying failure preserved")
	}
}

func TestComparisonClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	client := NewComparisonClient(srv.URL)
	resp := client.GetQuoteSummary(7)

	if resp.Success {
		t.Fatal("success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeAPI {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeAPI)
	}
}
