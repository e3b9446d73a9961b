package services

import (
	"backend/models"
)

// SummarizeQuotes builds the dashboard summary for one asset's quotes.
// It is deliberately more forgiving than CalculateCostMetrics: a
// brand-new asset with zero quotes still gets a renderable summary with
// zero counts and an empty status tally.
func SummarizeQuotes(quotes []models.Quote) models.QuoteSummary {
	summary := models.QuoteSummary{
		StatusCounts: make(map[string]int),
	}
	if len(quotes) == 0 {
		return summary
	}

	lowest := quotes[0].Cost
	highest := quotes[0].Cost
	sum := 0.0
	for _, q := range quotes {
		if q.Cost < lowest {
			lowest = q.Cost
		}
		if q.Cost > highest {
			highest = q.Cost
		}
		sum += q.Cost
		summary.StatusCounts[q.Status]++
	}

	summary.QuoteCount = len(quotes)
	summary.LowestCost = lowest
	summary.HighestCost = highest
	summary.AverageCost = sum / float64(len(quotes))
	summary.HasMultipleQuotes = len(quotes) > 1
	return summary
}
