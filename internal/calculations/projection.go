package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// Projection прогноз доходности по сумме, дневной ставке и сроку.
// Valid == false означает, что вход был некорректным и все поля нулевые.
type Projection struct {
	Principal   decimal.Decimal `json:"principal"`
	DailyReturn decimal.Decimal `json:"daily_return"`
	TotalReturn decimal.Decimal `json:"total_return"`
	Profit      decimal.Decimal `json:"profit"`
	Valid       bool            `json:"valid"`
}

// ProjectReturn считает дневной доход, итоговую сумму и прибыль:
//
//	dailyReturn = principal * rate / 100
//	totalReturn = principal + dailyReturn * days
//	profit      = totalReturn - principal
//
// Границы пакета здесь не проверяются, это делает сценарий оплаты.
// NaN, бесконечность и отрицательные значения дают нулевой результат.
func ProjectReturn(principal, dailyRatePercent, durationDays float64) Projection {
	if !utils.IsFiniteNonNegative(principal) ||
		!utils.IsFiniteNonNegative(dailyRatePercent) ||
		!utils.IsFiniteNonNegative(durationDays) {
		return Projection{}
	}

	p := decimal.NewFromFloat(principal)
	daily := p.Mul(decimal.NewFromFloat(dailyRatePercent)).Div(hundred)
	total := p.Add(daily.Mul(decimal.NewFromFloat(durationDays)))

	return Projection{
		Principal:   p,
		DailyReturn: daily,
		TotalReturn: total,
		Profit:      total.Sub(p),
		Valid:       true,
	}
}

// ProjectPack прогноз для суммы по параметрам пакета
func ProjectPack(pack models.InvestmentPack, principal float64) Projection {
	return ProjectReturn(principal, pack.InterestRate, float64(pack.DurationDays))
}

// DerivedReturnPercentage итоговый процент доходности за весь срок (rate * days).
// Заменяет присылаемый бэкендом return_percentage_40_days.
func DerivedReturnPercentage(dailyRatePercent float64, durationDays int) decimal.Decimal {
	if !utils.IsFiniteNonNegative(dailyRatePercent) || durationDays < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(dailyRatePercent).Mul(decimal.NewFromInt(int64(durationDays)))
}

// returnPercentageTolerance допустимое расхождение в процентных пунктах
var returnPercentageTolerance = decimal.RequireFromString("0.01")

// CheckReturnPercentage сверяет return_percentage_40_days пакета с расчетным значением.
// Пустое поле бэкенда считается согласованным.
func CheckReturnPercentage(pack models.InvestmentPack) (derived decimal.Decimal, consistent bool) {
	derived = DerivedReturnPercentage(pack.InterestRate, pack.DurationDays)
	if pack.ReturnPercentage40Days == 0 || !utils.IsFinite(pack.ReturnPercentage40Days) {
		return derived, true
	}
	diff := derived.Sub(decimal.NewFromFloat(pack.ReturnPercentage40Days)).Abs()
	return derived, diff.LessThanOrEqual(returnPercentageTolerance)
}
