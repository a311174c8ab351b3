package render

import (
	"fmt"
	"time"

	"github.com/cloud-ru/invest-client-go/internal/calculations"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// InvestmentDetail экран активной позиции
type InvestmentDetail struct {
	ID                int64                   `json:"id"`
	PackName          string                  `json:"pack_name"`
	Status            models.InvestmentStatus `json:"status"`
	Projection        ProjectionView          `json:"projection"`
	Percent           float64                 `json:"percent"`
	ElapsedDays       int                     `json:"elapsed_days"`
	RemainingDays     int                     `json:"remaining_days"`
	TotalDays         int                     `json:"total_days"`
	NextAccrual       string                  `json:"next_accrual,omitempty"`
	ClaimableEarnings string                  `json:"claimable_earnings"`
	AccruedEstimate   string                  `json:"accrued_estimate"`
	TotalEarned       string                  `json:"total_earned"`
	CanClaim          bool                    `json:"can_claim"`
}

// investmentProjection берет параметры из пакета, а без него восстанавливает
// ставку из дневного дохода бэкенда и срок из дат
func investmentProjection(inv models.Investment) calculations.Projection {
	if inv.Pack != nil {
		return calculations.ProjectPack(*inv.Pack, inv.Amount)
	}
	days := inv.EndDate.Sub(inv.StartDate).Hours() / 24
	rate := inv.DailyReturn / inv.Amount * 100
	return calculations.ProjectReturn(inv.Amount, rate, days)
}

// RenderInvestment строит экран позиции на момент now. Доступный к выводу доход
// берется с бэкенда, локальная оценка показывается отдельно.
func RenderInvestment(inv models.Investment, now time.Time, f *utils.CurrencyFormatter) InvestmentDetail {
	proj := investmentProjection(inv)
	progress := calculations.InvestmentProgress(inv.StartDate, inv.EndDate, now, proj)

	name := fmt.Sprintf("#%d", inv.PackID)
	if inv.Pack != nil && inv.Pack.Name != "" {
		name = inv.Pack.Name
	}

	d := InvestmentDetail{
		ID:                inv.ID,
		PackName:          name,
		Status:            inv.Status,
		Projection:        Projection(proj, f),
		Percent:           progress.Percent,
		ElapsedDays:       progress.ElapsedDays,
		RemainingDays:     progress.RemainingDays,
		TotalDays:         progress.TotalDays,
		ClaimableEarnings: f.FormatFloat(inv.AvailableEarnings),
		AccruedEstimate:   f.Format(progress.AccruedEstimate),
		TotalEarned:       f.FormatFloat(inv.TotalEarned),
		CanClaim:          inv.Status != models.InvestmentStatusCancelled && utils.IsFinite(inv.AvailableEarnings) && inv.AvailableEarnings > 0,
	}
	if inv.Status == models.InvestmentStatusActive && progress.NextAccrualIn > 0 {
		d.NextAccrual = Countdown(progress.NextAccrualIn)
	}
	return d
}

// Countdown форматирует интервал как ЧЧ:ММ:СС
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
