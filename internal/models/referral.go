package models

import "time"

// ReferralLevel уровень реферальной программы
type ReferralLevel struct {
	Name         string   `json:"name"`
	MinReferrals int      `json:"minReferrals"`
	MaxReferrals int      `json:"maxReferrals"` // 0 - без верхней границы
	Commission   float64  `json:"commission"`
	Bonus        float64  `json:"bonus"`
	Benefits     []string `json:"benefits,omitempty"`
}

// DefaultReferralLevels каталог уровней на случай, если бэкенд не прислал свой
var DefaultReferralLevels = []ReferralLevel{
	{Name: "Bronze", MinReferrals: 0, MaxReferrals: 4, Commission: 5, Bonus: 0},
	{Name: "Argent", MinReferrals: 5, MaxReferrals: 14, Commission: 7, Bonus: 5000},
	{Name: "Or", MinReferrals: 15, MaxReferrals: 29, Commission: 10, Bonus: 15000},
	{Name: "Platine", MinReferrals: 30, MaxReferrals: 0, Commission: 15, Bonus: 50000},
}

// ReferralEntry запись истории рефералов
type ReferralEntry struct {
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
	Commission float64   `json:"commission"`
	Active     bool      `json:"active"`
}

// ReferralSnapshot данные реферальной страницы
type ReferralSnapshot struct {
	Code            string          `json:"referral_code"`
	Link            string          `json:"referral_link,omitempty"`
	TotalReferrals  int             `json:"total_referrals"`
	ActiveReferrals int             `json:"active_referrals"`
	TotalEarnings   float64         `json:"total_earnings"`
	Levels          []ReferralLevel `json:"levels"`
	History         []ReferralEntry `json:"history"`
}
