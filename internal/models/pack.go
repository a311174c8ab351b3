package models

// InvestmentPack описывает предложение каталога: границы суммы, дневную ставку и срок
type InvestmentPack struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	MinAmount    float64 `json:"min_amount"`
	MaxAmount    float64 `json:"max_amount"`
	InterestRate float64 `json:"interest_rate"`
	DurationDays int     `json:"duration_days"`
	IsActive     bool    `json:"is_active"`
	// ReturnPercentage40Days приходит с бэкенда и используется только для сверки
	ReturnPercentage40Days float64 `json:"return_percentage_40_days,omitempty"`
}

// InBounds проверяет, что сумма лежит в [MinAmount; MaxAmount]
func (p InvestmentPack) InBounds(amount float64) bool {
	return amount >= p.MinAmount && amount <= p.MaxAmount
}
