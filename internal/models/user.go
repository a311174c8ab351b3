package models

import "time"

// User снимок пользователя, который хранится вместе с токеном
type User struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Balance       float64 `json:"balance"`
	TotalInvested float64 `json:"total_invested"`
	TotalEarnings float64 `json:"total_earnings"`
	ReferralCode  string  `json:"referral_code,omitempty"`
	ReferralLevel string  `json:"referral_level,omitempty"`
}

// AuthResponse ответ на вход и регистрацию
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TransactionType тип операции в истории
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionInvestment TransactionType = "investment"
	TransactionEarning    TransactionType = "earning"
	TransactionReferral   TransactionType = "referral"
)

// Transaction запись истории операций
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Status    string          `json:"status"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Dashboard снимок личного кабинета
type Dashboard struct {
	User         User          `json:"user"`
	Investments  []Investment  `json:"investments"`
	Transactions []Transaction `json:"transactions"`
}

// ActiveInvestments возвращает позиции, которые еще не завершены
func (d Dashboard) ActiveInvestments() []Investment {
	out := make([]Investment, 0, len(d.Investments))
	for _, inv := range d.Investments {
		if !inv.IsTerminal() {
			out = append(out, inv)
		}
	}
	return out
}

// WithdrawalRequest запрос на вывод средств
type WithdrawalRequest struct {
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Account string  `json:"account"`
}

// DepositVerification подтверждение платежа агрегатора на бэкенде
type DepositVerification struct {
	TxRef         string   `json:"tx_ref"`
	TransactionID string   `json:"transaction_id"`
	Status        string   `json:"status"`
	Amount        float64  `json:"amount"`
	NewBalance    *float64 `json:"new_balance,omitempty"`
}
