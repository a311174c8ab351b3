package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

// RegisterRequest данные регистрации
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login входит и сохраняет токен вместе со снимком пользователя
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if err := validators.CheckCredentials(email, password); err != nil {
		return nil, err
	}

	var auth models.AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/auth/login",
		path:     "/api/auth/login",
		body:     loginRequest{Email: strings.TrimSpace(email), Password: password},
	}, &auth)
	if err != nil {
		return nil, err
	}

	if err := c.saveAuth(auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register создает аккаунт и сразу сохраняет сессию
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.AuthResponse, error) {
	if err := validators.CheckRequired("name", req.Name); err != nil {
		return nil, err
	}
	if err := validators.CheckCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}
	req.Email = strings.TrimSpace(req.Email)

	var auth models.AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/auth/register",
		path:     "/api/auth/register",
		body:     req,
	}, &auth)
	if err != nil {
		return nil, err
	}

	if err := c.saveAuth(auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) saveAuth(auth models.AuthResponse) error {
	if auth.Token == "" {
		return fmt.Errorf("backend returned empty token")
	}
	user := auth.User
	if err := c.store.Save(session.Session{Token: auth.Token, User: &user}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout удаляет локальную сессию
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Dashboard загружает личный кабинет и обновляет снимок пользователя в сессии
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/dashboard",
		path:     "/api/dashboard",
		auth:     true,
	}, &d)
	if err != nil {
		return nil, err
	}

	if err := c.refreshUser(d.User); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateBalance записывает новый баланс в снимок пользователя
func (c *Client) UpdateBalance(balance float64) error {
	s, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.User == nil {
		return nil
	}
	s.User.Balance = balance
	return c.store.Save(s)
}

func (c *Client) refreshUser(u models.User) error {
	s, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.Token == "" {
		return nil
	}
	s.User = &u
	if err := c.store.Save(s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ListPacks возвращает каталог пакетов
func (c *Client) ListPacks(ctx context.Context) ([]models.InvestmentPack, error) {
	var packs []models.InvestmentPack
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/investment-packs",
		path:     "/api/investment-packs",
	}, &packs)
	if err != nil {
		return nil, err
	}
	return packs, nil
}

// GetPack возвращает один пакет
func (c *Client) GetPack(ctx context.Context, id int64) (*models.InvestmentPack, error) {
	var pack models.InvestmentPack
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/investment-packs/:id",
		path:     fmt.Sprintf("/api/investment-packs/%d", id),
	}, &pack)
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

type investRequest struct {
	Amount float64 `json:"amount"`
}

// Invest отправляет сумму на создание инвестиции. Повторов нет.
func (c *Client) Invest(ctx context.Context, packID int64, amount float64) (*models.InvestmentReceipt, error) {
	var receipt models.InvestmentReceipt
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/investment-packs/:id/invest",
		path:     fmt.Sprintf("/api/investment-packs/%d/invest", packID),
		body:     investRequest{Amount: amount},
		auth:     true,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

type claimRequest struct {
	InvestmentID int64 `json:"investmentId"`
}

// ClaimEarnings переводит накопленный доход позиции в основной баланс
func (c *Client) ClaimEarnings(ctx context.Context, investmentID int64) (*models.ClaimResult, error) {
	var res models.ClaimResult
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/claim-earnings",
		path:     "/api/claim-earnings",
		body:     claimRequest{InvestmentID: investmentID},
		auth:     true,
	}, &res)
	if err != nil {
		return nil, err
	}

	if res.NewBalance != nil {
		if err := c.UpdateBalance(*res.NewBalance); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

// Referral загружает реферальную страницу
func (c *Client) Referral(ctx context.Context) (*models.ReferralSnapshot, error) {
	var snap models.ReferralSnapshot
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/referral",
		path:     "/api/referral",
		auth:     true,
	}, &snap)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Transactions загружает историю операций
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/transactions",
		path:     "/api/transactions",
		auth:     true,
	}, &txs)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

type verifyDepositRequest struct {
	TxRef         string `json:"tx_ref"`
	TransactionID string `json:"transaction_id"`
}

// VerifyDeposit просит бэкенд подтвердить платеж агрегатора
func (c *Client) VerifyDeposit(ctx context.Context, txRef, transactionID string) (*models.DepositVerification, error) {
	if err := validators.CheckRequired("tx_ref", txRef); err != nil {
		return nil, err
	}
	if err := validators.CheckRequired("transaction_id", transactionID); err != nil {
		return nil, err
	}

	var v models.DepositVerification
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/deposits/verify",
		path:     "/api/deposits/verify",
		body:     verifyDepositRequest{TxRef: txRef, TransactionID: transactionID},
		auth:     true,
	}, &v)
	if err != nil {
		return nil, err
	}

	// pending платеж приходит без new_balance
	if v.NewBalance != nil {
		if err := c.UpdateBalance(*v.NewBalance); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

// RequestWithdrawal создает заявку на вывод
func (c *Client) RequestWithdrawal(ctx context.Context, req models.WithdrawalRequest) (*models.Transaction, error) {
	var tx models.Transaction
	err := c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/withdrawals",
		path:     "/api/withdrawals",
		body:     req,
		auth:     true,
	}, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
