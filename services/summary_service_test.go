package services

import (
	"math"
	"testing"

	"backend/models"
)

func TestSummarizeQuotes_Empty(t *testing.T) {
	summary := SummarizeQuotes(nil)

	if summary.QuoteCount != 0 {
		t.Errorf("QuoteCount = %d, want 0", summary.QuoteCount)
	}
	if summary.LowestCost != 0 || summary.HighestCost != 0 || summary.AverageCost != 0 {
		t.Errorf("summary extremes = %+v, want zeros", summary)
	}
	if summary.HasMultipleQuotes {
		t.Error("HasMultipleQuotes = true, want false")
	}
	if summary.StatusCounts == nil {
		t.Fatal("StatusCounts is nil, want empty map")
	}
	if len(summary.StatusCounts) != 0 {
		t.Errorf("StatusCounts = %v, want empty", summary.StatusCounts)
	}
}

func TestSummarizeQuotes(t *testing.T) {
	quotes := []models.Quote{
		{Cost: 8500, Status: models.QuoteStatusSubmitted},
		{Cost: 12000, Status: models.QuoteStatusSubmitted},
		{Cost: 9000, Status: models.QuoteStatusAccepted},
		{Cost: 15000, Status: models.QuoteStatusRejected},
	}

	summary := SummarizeQuotes(quotes)

	if summary.QuoteCount != 4 {
		t.Errorf("QuoteCount = %d, want 4", summary.QuoteCount)
	}
	if summary.LowestCost != 8500 {
		t.Errorf("LowestCost = %v, want 8500", summary.LowestCost)
	}
	if summary.HighestCost != 15000 {
		t.Errorf("HighestCost = %v, want 15000", summary.HighestCost)
	}
	wantAvg := 44500.0 / 4
	if math.Abs(summary.AverageCost-wantAvg) > 1e-9 {
		t.Errorf("AverageCost = %v, want %v", summary.AverageCost, wantAvg)
	}
	if !summary.HasMultipleQuotes {
		t.Error("HasMultipleQuotes = false, want true")
	}

	wantCounts := map[string]int{
		models.QuoteStatusSubmitted: 2,
		models.QuoteStatusAccepted:  1,
		models.QuoteStatusRejected:  1,
	}
	for status, want := range wantCounts {
		if summary.StatusCounts[status] != want {
			t.Errorf("StatusCounts[%s] = %d, want %d", status, summary.StatusCounts[status], want)
		}
	}
	if len(summary.StatusCounts) != len(wantCounts) {
		t.Errorf("StatusCounts has %d entries, want %d", len(summary.StatusCounts), len(wantCounts))
	}
}

func TestSummarizeQuotes_SingleQuote(t *testing.T) {
	summary := SummarizeQuotes([]models.Quote{{Cost: 5000, Status: models.QuoteStatusSubmitted}})

	if summary.QuoteCount != 1 {
		t.Errorf("QuoteCount = %d, want 1", summary.QuoteCount)
	}
	if summary.HasMultipleQuotes {
		t.Error("HasMultipleQuotes = true, want false")
	}
	if summary.LowestCost != 5000 || summary.HighestCost != 5000 || summary.AverageCost != 5000 {
		t.Errorf("extremes = %+v, want lowest=highest=average=5000", summary)
	}
}
