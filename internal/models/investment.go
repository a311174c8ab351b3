package models

import "time"

// InvestmentStatus статус позиции пользователя
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

// Investment позиция пользователя по пакету. Меняется только бэкендом.
type Investment struct {
	ID                int64            `json:"id"`
	UserID            int64            `json:"user_id"`
	PackID            int64            `json:"pack_id"`
	Pack              *InvestmentPack  `json:"pack,omitempty"`
	Amount            float64          `json:"amount"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Status            InvestmentStatus `json:"status"`
	DailyReturn       float64          `json:"daily_return,omitempty"`
	TotalEarned       float64          `json:"total_earned"`
	AvailableEarnings float64          `json:"available_earnings"`
	ClaimedEarnings   float64          `json:"claimed_earnings"`
	LastClaimAt       *time.Time       `json:"last_claim_at,omitempty"`
}

// IsTerminal сообщает, что позиция завершена или отменена
func (i Investment) IsTerminal() bool {
	return i.Status == InvestmentStatusCompleted || i.Status == InvestmentStatusCancelled
}

// InvestmentReceipt ответ бэкенда на создание инвестиции. Отображается как есть.
type InvestmentReceipt struct {
	Investment  Investment `json:"investment"`
	Amount      float64    `json:"amount"`
	DailyReturn float64    `json:"daily_return"`
	TotalReturn float64    `json:"total_return"`
	NewBalance  *float64   `json:"new_balance,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// ClaimResult ответ бэкенда на вывод начислений в основной баланс
type ClaimResult struct {
	InvestmentID  int64    `json:"investment_id"`
	ClaimedAmount float64  `json:"claimed_amount"`
	NewBalance    *float64 `json:"new_balance,omitempty"`
	Message       string   `json:"message,omitempty"`
}
