package models

import "time"

// AdminStats сводка для админ-панели
type AdminStats struct {
	TotalUsers          int     `json:"total_users"`
	ActiveInvestments   int     `json:"active_investments"`
	TotalInvested       float64 `json:"total_invested"`
	TotalDeposits       float64 `json:"total_deposits"`
	TotalWithdrawals    float64 `json:"total_withdrawals"`
	PendingWithdrawals  int     `json:"pending_withdrawals"`
	TotalReferralPayout float64 `json:"total_referral_payout"`
}

// AdminUser строка списка пользователей
type AdminUser struct {
	User
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
}
