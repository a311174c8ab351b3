package calculations

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInvestmentProgress(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 40)
	proj := ProjectReturn(10000, 2.5, 40)

	tests := []struct {
		name          string
		now           time.Time
		wantElapsed   int
		wantRemaining int
		wantPercent   float64
		wantAccrued   int64
		wantMatured   bool
		wantNext      time.Duration
	}{
		{
			name:          "before start",
			now:           start.Add(-time.Hour),
			wantElapsed:   0,
			wantRemaining: 41,
			wantPercent:   0,
			wantAccrued:   0,
			wantNext:      25 * time.Hour,
		},
		{
			name:          "ten and a half days in",
			now:           start.Add(10*day + 12*time.Hour),
			wantElapsed:   10,
			wantRemaining: 30,
			wantPercent:   26.25,
			wantAccrued:   2500,
			wantNext:      12 * time.Hour,
		},
		{
			name:          "exactly at end",
			now:           end,
			wantElapsed:   40,
			wantRemaining: 0,
			wantPercent:   100,
			wantAccrued:   10000,
			wantMatured:   true,
		},
		{
			name:          "long after end",
			now:           end.AddDate(1, 0, 0),
			wantElapsed:   40,
			wantRemaining: 0,
			wantPercent:   100,
			wantAccrued:   10000,
			wantMatured:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvestmentProgress(start, end, tt.now, proj)
			if got.TotalDays != 40 {
				t.Errorf("TotalDays = %d, want 40", got.TotalDays)
			}
			if got.ElapsedDays != tt.wantElapsed {
				t.Errorf("ElapsedDays = %d, want %d", got.ElapsedDays, tt.wantElapsed)
			}
			if got.RemainingDays != tt.wantRemaining {
				t.Errorf("RemainingDays = %d, want %d", got.RemainingDays, tt.wantRemaining)
			}
			if got.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.wantPercent)
			}
			if !got.AccruedEstimate.Equal(decimal.NewFromInt(tt.wantAccrued)) {
				t.Errorf("AccruedEstimate = %s, want %d", got.AccruedEstimate, tt.wantAccrued)
			}
			if got.Matured != tt.wantMatured {
				t.Errorf("Matured = %v, want %v", got.Matured, tt.wantMatured)
			}
			if got.NextAccrualIn != tt.wantNext {
				t.Errorf("NextAccrualIn = %v, want %v", got.NextAccrualIn, tt.wantNext)
			}
		})
	}
}

func TestInvestmentProgressInvalidWindow(t *testing.T) {
	now := time.Now()
	proj := ProjectReturn(10000, 2.5, 40)

	if got := InvestmentProgress(time.Time{}, now, now, proj); got.TotalDays != 0 || got.Percent != 0 {
		t.Errorf("expected zero progress for zero start, got %+v", got)
	}
	if got := InvestmentProgress(now, now.Add(-day), now, proj); got.TotalDays != 0 {
		t.Errorf("expected zero progress for inverted window, got %+v", got)
	}
}

func TestInvestmentProgressInvalidProjection(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := InvestmentProgress(start, start.AddDate(0, 0, 10), start.AddDate(0, 0, 5), Projection{})
	if !got.AccruedEstimate.IsZero() {
		t.Errorf("expected zero accrued estimate, got %s", got.AccruedEstimate)
	}
	if got.ElapsedDays != 5 {
		t.Errorf("ElapsedDays = %d, want 5", got.ElapsedDays)
	}
}
