package payment

import (
	"context"
	"fmt"

	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

// Withdrawer отправляет заявку на вывод
type Withdrawer interface {
	RequestWithdrawal(ctx context.Context, req models.WithdrawalRequest) (*models.Transaction, error)
}

// RequestWithdrawal проверяет заявку локально и отправляет ее один раз
func RequestWithdrawal(ctx context.Context, w Withdrawer, sessions session.Store, minimum float64, req models.WithdrawalRequest) (*models.Transaction, error) {
	s, err := sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !s.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := validators.CheckRequired("method", req.Method); err != nil {
		return nil, err
	}
	if err := validators.CheckRequired("account", req.Account); err != nil {
		return nil, err
	}
	if err := validators.CheckMinimum("amount", req.Amount, minimum); err != nil {
		return nil, err
	}
	if err := validators.CheckBalance(s.User.Balance, req.Amount); err != nil {
		return nil, err
	}

	tx, err := w.RequestWithdrawal(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("request withdrawal: %w", err)
	}
	logging.Info.Printf("withdrawal requested: id=%d amount=%.2f status=%s", tx.ID, tx.Amount, tx.Status)
	return tx, nil
}
