package calculations

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

const day = 24 * time.Hour

// Progress состояние позиции на момент now
type Progress struct {
	TotalDays       int             `json:"total_days"`
	ElapsedDays     int             `json:"elapsed_days"`
	RemainingDays   int             `json:"remaining_days"`
	Percent         float64         `json:"percent"`
	NextAccrualIn   time.Duration   `json:"next_accrual_in"`
	AccruedEstimate decimal.Decimal `json:"accrued_estimate"`
	Matured         bool            `json:"matured"`
}

// InvestmentProgress считает прошедшие и оставшиеся дни, процент выполнения,
// время до следующего начисления и оценку начисленного дохода.
// Оценка не превышает прибыль по прогнозу. Пустое или обратное окно дает нулевой Progress.
func InvestmentProgress(start, end, now time.Time, projection Projection) Progress {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return Progress{}
	}

	total := end.Sub(start)
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	p := Progress{
		TotalDays:   int(math.Ceil(total.Hours() / 24)),
		ElapsedDays: int(elapsed / day),
		Percent:     utils.Round2(float64(elapsed) / float64(total) * 100),
		Matured:     !now.Before(end),
	}

	if remaining := end.Sub(now); remaining > 0 {
		p.RemainingDays = int(math.Ceil(remaining.Hours() / 24))
	}

	if !p.Matured {
		next := start.Add(time.Duration(p.ElapsedDays+1) * day)
		if next.After(end) {
			next = end
		}
		p.NextAccrualIn = next.Sub(now)
	}

	if projection.Valid {
		accrued := projection.DailyReturn.Mul(decimal.NewFromInt(int64(p.ElapsedDays)))
		p.AccruedEstimate = decimal.Min(accrued, projection.Profit)
	}

	return p
}
