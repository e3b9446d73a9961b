package services

import (
	"errors"
	"math"
	"sort"

	"backend/models"
)

// ErrNoQuotes is reported when a full comparison is requested for an
// asset with zero submitted quotes. The summary path never returns it.
var ErrNoQuotes = errors.New("no quotes available for comparison")

// CalculateCostMetrics ranks the quotes of one asset by cost and derives
// the aggregate comparison metrics. The input must already be filtered to
// submitted statuses and ordered by arrival; the returned slice keeps that
// arrival order, with CostRank and CostPercentOfLowest filled in.
//
// The computation is deterministic: equal costs keep their relative
// arrival order (stable sort), so repeated calls on the same input yield
// identical ranks.
func CalculateCostMetrics(quotes []models.Quote) ([]models.RankedQuote, models.ComparisonMetrics, error) {
	if len(quotes) == 0 {
		return nil, models.ComparisonMetrics{}, ErrNoQuotes
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
	}

	metrics := models.ComparisonMetrics{
		LowestCost:  lowest,
		HighestCost: highest,
		AverageCost: sum / float64(len(quotes)),
		QuoteCount:  len(quotes),
		CostRange:   highest - lowest,
	}

	ranked := make([]models.RankedQuote, len(quotes))
	for i, q := range quotes {
		ranked[i] = models.RankedQuote{Quote: q}
	}

	// Rank via a sorted index so the returned slice stays in arrival order.
	order := make([]int, len(quotes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return quotes[order[a]].Cost < quotes[order[b]].Cost
	})
	for pos, idx := range order {
		ranked[idx].CostRank = pos + 1
	}

	for i := range ranked {
		ranked[i].CostPercentOfLowest = percentOfLowest(ranked[i].Cost, lowest)
	}

	return ranked, metrics, nil
}

// percentOfLowest returns round(cost/lowest*100). A zero lowest cost is a
// degenerate but legal input: the zero-cost quote itself reports 100 and
// every other quote gets nil, since no finite ratio exists.
func percentOfLowest(cost, lowest float64) *int {
	if lowest == 0 {
		if cost == 0 {
			p := 100
			return &p
		}
		return nil
	}
	p := int(math.Round(cost / lowest * 100))
	return &p
}
