package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"backend/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// FormatCostBreakdown renders a breakdown as a single display line,
// including only the components with a positive value. Returns "" when
// the breakdown is absent or entirely zero, so the UI can drop the line.
func FormatCostBreakdown(b *models.CostBreakdown) string {
	if b == nil {
		return ""
	}
	var parts []string
	if b.Labor > 0 {
		parts = append(parts, fmt.Sprintf("Labor: %.2f", b.Labor))
	}
	if b.Materials > 0 {
		parts = append(parts, fmt.Sprintf("Materials: %.2f", b.Materials))
	}
	if b.Equipment > 0 {
		parts = append(parts, fmt.Sprintf("Equipment: %.2f", b.Equipment))
	}
	if b.Other > 0 {
		parts = append(parts, fmt.Sprintf("Other: %.2f", b.Other))
	}
	return strings.Join(parts, ", ")
}

// FormatResponseTime renders supplier response time in hours as "5h",
// "1d" or "1d 6h". The hour remainder is dropped when it is zero.
func FormatResponseTime(hours int) string {
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days := hours / 24
	rem := hours % 24
	if rem == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, rem)
}

// FormatValidity categorizes a quote's validity window relative to now.
func FormatValidity(validUntil *time.Time) string {
	return FormatValidityAt(validUntil, time.Now())
}

// FormatValidityAt is FormatValidity with an explicit reference time.
// Days remaining is the ceiling of the millisecond difference over a
// day's milliseconds, so a window ending exactly 24h out still reads
// "Expires tomorrow".
func FormatValidityAt(validUntil *time.Time, now time.Time) string {
	if validUntil == nil {
		return ""
	}
	if validUntil.Before(now) {
		return "Expired"
	}
	diff := validUntil.Sub(now).Milliseconds()
	days := int(math.Ceil(float64(diff) / float64(dayMillis)))
	switch days {
	case 0:
		return "Expires today"
	case 1:
		return "Expires tomorrow"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// StatusBadge maps a quote status to the badge style the UI renders.
// Unknown statuses fall back to the neutral style.
func StatusBadge(status string) string {
	switch status {
	case models.QuoteStatusAccepted:
		return "success"
	case models.QuoteStatusRejected:
		return "danger"
	case models.QuoteStatusSubmitted:
		return "info"
	default:
		return "secondary"
	}
}
