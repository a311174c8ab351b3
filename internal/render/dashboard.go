package render

import (
	"time"

	"github.com/cloud-ru/invest-client-go/internal/calculations"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// DashboardView личный кабинет
type DashboardView struct {
	Name          string             `json:"name"`
	Balance       string             `json:"balance"`
	TotalInvested string             `json:"total_invested"`
	TotalEarnings string             `json:"total_earnings"`
	Investments   []InvestmentDetail `json:"investments"`
	Transactions  []TransactionRow   `json:"transactions"`
}

// TransactionRow строка истории
type TransactionRow struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

// RenderDashboard строит личный кабинет из снимка бэкенда
func RenderDashboard(d models.Dashboard, now time.Time, f *utils.CurrencyFormatter) DashboardView {
	v := DashboardView{
		Name:          d.User.Name,
		Balance:       f.FormatFloat(d.User.Balance),
		TotalInvested: f.FormatFloat(d.User.TotalInvested),
		TotalEarnings: f.FormatFloat(d.User.TotalEarnings),
		Investments:   make([]InvestmentDetail, 0, len(d.Investments)),
	}
	for _, inv := range d.ActiveInvestments() {
		v.Investments = append(v.Investments, RenderInvestment(inv, now, f))
	}
	v.Transactions = RenderTransactions(d.Transactions, f)
	return v
}

// RenderTransactions строки истории в порядке бэкенда
func RenderTransactions(txs []models.Transaction, f *utils.CurrencyFormatter) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, TransactionRow{
			Date:   tx.CreatedAt.Format("02/01/2006 15:04"),
			Type:   string(tx.Type),
			Amount: f.FormatFloat(tx.Amount),
			Status: tx.Status,
		})
	}
	return rows
}

// ReferralView реферальная страница
type ReferralView struct {
	Code          string                     `json:"code"`
	Link          string                     `json:"link,omitempty"`
	Total         int                        `json:"total"`
	Active        int                        `json:"active"`
	TotalEarnings string                     `json:"total_earnings"`
	Level         string                     `json:"level"`
	Commission    string                     `json:"commission"`
	NextLevel     string                     `json:"next_level,omitempty"`
	Remaining     int                        `json:"remaining"`
	Progress      calculations.LevelProgress `json:"progress"`
}

// RenderReferral строит реферальную страницу
func RenderReferral(s models.ReferralSnapshot, f *utils.CurrencyFormatter) ReferralView {
	lp := calculations.ReferralProgress(s.TotalReferrals, s.Levels)

	v := ReferralView{
		Code:          s.Code,
		Link:          s.Link,
		Total:         s.TotalReferrals,
		Active:        s.ActiveReferrals,
		TotalEarnings: f.FormatFloat(s.TotalEarnings),
		Remaining:     lp.Remaining,
		Progress:      lp,
		Commission:    "0 %",
	}
	if lp.Current != nil {
		v.Level = lp.Current.Name
		v.Commission = utils.FormatPercent(lp.Current.Commission)
	}
	if lp.Next != nil {
		v.NextLevel = lp.Next.Name
	}
	return v
}
