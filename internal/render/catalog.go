package render

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/invest-client-go/internal/calculations"
	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// ProjectionView прогноз в виде строк для отображения
type ProjectionView struct {
	Principal   string `json:"principal"`
	DailyReturn string `json:"daily_return"`
	TotalReturn string `json:"total_return"`
	Profit      string `json:"profit"`
	Valid       bool   `json:"valid"`
}

// PackCard карточка пакета в каталоге
type PackCard struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	MinAmount          string         `json:"min_amount"`
	MaxAmount          string         `json:"max_amount"`
	DailyRate          string         `json:"daily_rate"`
	DurationDays       int            `json:"duration_days"`
	TotalReturnPercent string         `json:"total_return_percent"`
	AtMinimum          ProjectionView `json:"at_minimum"`
	AtMaximum          ProjectionView `json:"at_maximum"`
	// BackendPercentMismatch return_percentage_40_days не совпал с rate * days
	BackendPercentMismatch bool `json:"backend_percent_mismatch,omitempty"`
}

// Projection переводит прогноз в строки
func Projection(p calculations.Projection, f *utils.CurrencyFormatter) ProjectionView {
	return ProjectionView{
		Principal:   f.Format(p.Principal),
		DailyReturn: f.Format(p.DailyReturn),
		TotalReturn: f.Format(p.TotalReturn),
		Profit:      f.Format(p.Profit),
		Valid:       p.Valid,
	}
}

// Percent форматирует процент без лишних нулей
func Percent(d decimal.Decimal) string {
	return d.Round(2).String() + " %"
}

// RenderCatalog строит карточки активных пакетов, отсортированные по минимальной сумме
func RenderCatalog(packs []models.InvestmentPack, f *utils.CurrencyFormatter) []PackCard {
	active := make([]models.InvestmentPack, 0, len(packs))
	for _, p := range packs {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].MinAmount != active[j].MinAmount {
			return active[i].MinAmount < active[j].MinAmount
		}
		return active[i].ID < active[j].ID
	})

	cards := make([]PackCard, 0, len(active))
	for _, p := range active {
		cards = append(cards, RenderPack(p, f))
	}
	return cards
}

// RenderPack строит карточку одного пакета
func RenderPack(p models.InvestmentPack, f *utils.CurrencyFormatter) PackCard {
	derived, consistent := calculations.CheckReturnPercentage(p)
	if !consistent {
		logging.Info.Printf("pack %d (%s): return_percentage_40_days=%v disagrees with rate*days=%s, using rate*days",
			p.ID, p.Name, p.ReturnPercentage40Days, derived)
	}

	return PackCard{
		ID:                     p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		MinAmount:              f.FormatFloat(p.MinAmount),
		MaxAmount:              f.FormatFloat(p.MaxAmount),
		DailyRate:              utils.FormatPercent(p.InterestRate),
		DurationDays:           p.DurationDays,
		TotalReturnPercent:     Percent(derived),
		AtMinimum:              Projection(calculations.ProjectPack(p, p.MinAmount), f),
		AtMaximum:              Projection(calculations.ProjectPack(p, p.MaxAmount), f),
		BackendPercentMismatch: !consistent,
	}
}
