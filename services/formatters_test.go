package services

import (
	"testing"
	"time"

	"backend/models"
)

func TestFormatCostBreakdown(t *testing.T) {
	tests := []struct {
		name      string
		breakdown *models.CostBreakdown
		want      string
	}{
		{
			name:      "nil breakdown",
			breakdown: nil,
			want:      "",
		},
		{
			name:      "all zero",
			breakdown: &models.CostBreakdown{},
			want:      "",
		},
		{
			name:      "all components",
			breakdown: &models.CostBreakdown{Labor: 2500, Materials: 4000, Equipment: 1500, Other: 500},
			want:      "Labor: 2500.00, Materials: 4000.00, Equipment: 1500.00, Other: 500.00",
		},
		{
			name:      "zero components omitted",
			breakdown: &models.CostBreakdown{Labor: 1200.50, Equipment: 800},
			want:      "Labor: 1200.50, Equipment: 800.00",
		},
		{
			name:      "single component",
			breakdown: &models.CostBreakdown{Other: 99.99},
			want:      "Other: 99.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCostBreakdown(tt.breakdown); got != tt.want {
				t.Errorf("FormatCostBreakdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatResponseTime(t *testing.T) {
	tests := []struct {
		hours int
		want  string
	}{
		{5, "5h"},
		{0, "0h"},
		{23, "23h"},
		{24, "1d"},
		{30, "1d 6h"},
		{48, "2d"},
		{52, "2d 4h"},
	}

	for _, tt := range tests {
		if got := FormatResponseTime(tt.hours); got != tt.want {
			t.Errorf("FormatResponseTime(%d) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatValidityAt(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		validUntil time.Time
		want       string
	}{
		{
			name:       "past",
			validUntil: now.Add(-2 * time.Hour),
			want:       "Expired",
		},
		{
			name:       "exactly now",
			validUntil: now,
			want:       "Expires today",
		},
		{
			name:       "within the hour",
			validUntil: now.Add(30 * time.Minute),
			want:       "Expires tomorrow",
		},
		{
			name:       "exactly 24h out",
			validUntil: now.Add(24 * time.Hour),
			want:       "Expires tomorrow",
		},
		{
			name:       "just past 24h rounds up",
			validUntil: now.Add(24*time.Hour + time.Minute),
			want:       "2 days left",
		},
		{
			name:       "a week out",
			validUntil: now.Add(7 * 24 * time.Hour),
			want:       "7 days left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.validUntil
			if got := FormatValidityAt(&v, now); got != tt.want {
				t.Errorf("FormatValidityAt(%v) = %q, want %q", tt.validUntil, got, tt.want)
			}
		})
	}

	if got := FormatValidityAt(nil, now); got != "" {
		t.Errorf("FormatValidityAt(nil) = %q, want empty", got)
	}
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{models.QuoteStatusAccepted, "success"},
		{models.QuoteStatusRejected, "danger"},
		{models.QuoteStatusSubmitted, "info"},
		{models.QuoteStatusPending, "secondary"},
		{"something-else", "secondary"},
		{"", "secondary"},
	}

	for _, tt := range tests {
		if got := StatusBadge(tt.status); got != tt.want {
			t.Errorf("StatusBadge(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
