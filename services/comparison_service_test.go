package services

import (
	"errors"
	"math"
	"testing"

	"backend/models"
)

func quotesWithCosts(costs ...float64) []models.Quote {
	quotes := make([]models.Quote, len(costs))
	for i, c := range costs {
		quotes[i] = models.Quote{
			ID:     i + 1,
			Cost:   c,
			Status: models.QuoteStatusSubmitted,
		}
	}
	return quotes
}

func TestCalculateCostMetrics_Ranking(t *testing.T) {
	tests := []struct {
		name      string
		costs     []float64
		wantRanks []int
	}{
		{
			name:      "three quotes",
			costs:     []float64{8500, 12000, 9000},
			wantRanks: []int{1, 3, 2},
		},
		{
			name:      "single quote",
			costs:     []float64{5000},
			wantRanks: []int{1},
		},
		{
			name:      "already sorted",
			costs:     []float64{100, 200, 300, 400},
			wantRanks: []int{1, 2, 3, 4},
		},
		{
			name:      "reverse sorted",
			costs:     []float64{400, 300, 200, 100},
			wantRanks: []int{4, 3, 2, 1},
		},
		{
			name:      "ties keep arrival order",
			costs:     []float64{200, 100, 100, 50},
			wantRanks: []int{4, 2, 3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, _, err := CalculateCostMetrics(quotesWithCosts(tt.costs...))
			if err != nil {
				t.Fatalf("CalculateCostMetrics() unexpected error = %v", err)
			}
			if len(ranked) != len(tt.wantRanks) {
				t.Fatalf("got %d ranked quotes, want %d", len(ranked), len(tt.wantRanks))
			}
			for i, want := range tt.wantRanks {
				if ranked[i].CostRank != want {
					t.Errorf("quote %d rank = %d, want %d", i, ranked[i].CostRank, want)
				}
			}

			// Ranks must be a permutation of 1..N.
			seen := make(map[int]bool)
			for _, rq := range ranked {
				if rq.CostRank < 1 || rq.CostRank > len(ranked) {
					t.Errorf("rank %d out of range 1..%d", rq.CostRank, len(ranked))
				}
				if seen[rq.CostRank] {
					t.Errorf("duplicate rank %d", rq.CostRank)
				}
				seen[rq.CostRank] = true
			}
		})
	}
}

func TestCalculateCostMetrics_Metrics(t *testing.T) {
	ranked, metrics, err := CalculateCostMetrics(quotesWithCosts(8500, 12000, 9000))
	if err != nil {
		t.Fatalf("CalculateCostMetrics() unexpected error = %v", err)
	}

	if metrics.LowestCost != 8500 {
		t.Errorf("LowestCost = %v, want 8500", metrics.LowestCost)
	}
	if metrics.HighestCost != 12000 {
		t.Errorf("HighestCost = %v, want 12000", metrics.HighestCost)
	}
	if metrics.CostRange != 3500 {
		t.Errorf("CostRange = %v, want 3500", metrics.CostRange)
	}
	if metrics.QuoteCount != 3 {
		t.Errorf("QuoteCount = %v, want 3", metrics.QuoteCount)
	}
	wantAvg := 29500.0 / 3
	if math.Abs(metrics.AverageCost-wantAvg) > 1e-9 {
		t.Errorf("AverageCost = %v, want %v", metrics.AverageCost, wantAvg)
	}

	wantPercents := []int{100, 141, 106}
	for i, want := range wantPercents {
		got := ranked[i].CostPercentOfLowest
		if got == nil {
			t.Fatalf("quote %d percent = nil, want %d", i, want)
		}
		if *got != want {
			t.Errorf("quote %d percent = %d, want %d", i, *got, want)
		}
	}
}

func TestCalculateCostMetrics_SingleQuote(t *testing.T) {
	ranked, metrics, err := CalculateCostMetrics(quotesWithCosts(5000))
	if err != nil {
		t.Fatalf("CalculateCostMetrics() unexpected error = %v", err)
	}
	if metrics.LowestCost != 5000 || metrics.HighestCost != 5000 || metrics.AverageCost != 5000 {
		t.Errorf("metrics = %+v, want lowest=highest=average=5000", metrics)
	}
	if metrics.CostRange != 0 {
		t.Errorf("CostRange = %v, want 0", metrics.CostRange)
	}
	if ranked[0].CostRank != 1 {
		t.Errorf("rank = %d, want 1", ranked[0].CostRank)
	}
	if ranked[0].CostPercentOfLowest == nil || *ranked[0].CostPercentOfLowest != 100 {
		t.Errorf("percent = %v, want 100", ranked[0].CostPercentOfLowest)
	}
}

func TestCalculateCostMetrics_Empty(t *testing.T) {
	_, _, err := CalculateCostMetrics(nil)
	if !errors.Is(err, ErrNoQuotes) {
		t.Errorf("CalculateCostMetrics(nil) error = %v, want ErrNoQuotes", err)
	}
}

func TestCalculateCostMetrics_PercentAtLeastHundred(t *testing.T) {
	ranked, metrics, err := CalculateCostMetrics(quotesWithCosts(730, 411.5, 411.5, 9000, 411.5))
	if err != nil {
		t.Fatalf("CalculateCostMetrics() unexpected error = %v", err)
	}
	for i, rq := range ranked {
		if rq.CostPercentOfLowest == nil {
			t.Fatalf("quote %d percent is nil", i)
		}
		if *rq.CostPercentOfLowest < 100 {
			t.Errorf("quote %d percent = %d, want >= 100", i, *rq.CostPercentOfLowest)
		}
		isLowest := rq.Cost == metrics.LowestCost
		if isLowest != (*rq.CostPercentOfLowest == 100) {
			t.Errorf("quote %d percent = %d with cost %v, lowest %v", i, *rq.CostPercentOfLowest, rq.Cost, metrics.LowestCost)
		}
	}
	if metrics.LowestCost > metrics.AverageCost || metrics.AverageCost > metrics.HighestCost {
		t.Errorf("metric ordering violated: %+v", metrics)
	}
}

func TestCalculateCostMetrics_ZeroLowestCost(t *testing.T) {
	ranked, _, err := CalculateCostMetrics(quotesWithCosts(0, 500))
	if err != nil {
		t.Fatalf("CalculateCostMetrics() unexpected error = %v", err)
	}
	if ranked[0].CostPercentOfLowest == nil || *ranked[0].CostPercentOfLowest != 100 {
		t.Errorf("zero-cost quote percent = %v, want 100", ranked[0].CostPercentOfLowest)
	}
	if ranked[1].CostPercentOfLowest != nil {
		t.Errorf("non-zero quote percent = %d, want nil", *ranked[1].CostPercentOfLowest)
	}
}

func TestCalculateCostMetrics_Idempotent(t *testing.T) {
	input := quotesWithCosts(300, 100, 100, 200)

	first, firstMetrics, err := CalculateCostMetrics(input)
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, secondMetrics, err := CalculateCostMetrics(input)
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}

	if firstMetrics != secondMetrics {
		t.Errorf("metrics differ between calls: %+v vs %+v", firstMetrics, secondMetrics)
	}
	for i := range first {
		if first[i].CostRank != second[i].CostRank {
			t.Errorf("quote %d rank differs between calls: %d vs %d", i, first[i].CostRank, second[i].CostRank)
		}
	}

	// The input slice itself must be untouched.
	for i, q := range input {
		if q.ID != i+1 {
			t.Errorf("input order mutated at %d", i)
		}
	}
}
