package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

// AdminClient клиент админских эндпоинтов. Использует отдельный токен (adminToken).
type AdminClient struct {
	c *Client
}

// NewAdmin создает клиент с отдельным хранилищем админской сессии
func NewAdmin(opts Options, store session.Store) *AdminClient {
	return &AdminClient{c: newClient(opts, store, "admin")}
}

type adminAuthResponse struct {
	Token string      `json:"token"`
	Admin models.User `json:"admin"`
}

// Login входит в админ-панель
func (a *AdminClient) Login(ctx context.Context, email, password string) error {
	if err := validators.CheckCredentials(email, password); err != nil {
		return err
	}

	var auth adminAuthResponse
	err := a.c.do(ctx, request{
		method:   http.MethodPost,
		endpoint: "/api/admin/login",
		path:     "/api/admin/login",
		body:     loginRequest{Email: strings.TrimSpace(email), Password: password},
	}, &auth)
	if err != nil {
		return err
	}
	if auth.Token == "" {
		return fmt.Errorf("backend returned empty admin token")
	}

	admin := auth.Admin
	return a.c.store.Save(session.Session{Token: auth.Token, User: &admin})
}

// Logout удаляет админскую сессию
func (a *AdminClient) Logout() error {
	return a.c.store.Clear()
}

// Stats сводная статистика
func (a *AdminClient) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	err := a.c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/admin/stats",
		path:     "/api/admin/stats",
		auth:     true,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users список пользователей; search - необязательный фильтр
func (a *AdminClient) Users(ctx context.Context, search string) ([]models.AdminUser, error) {
	path := "/api/admin/users"
	if s := strings.TrimSpace(search); s != "" {
		path += "?" + url.Values{"search": {s}}.Encode()
	}

	var users []models.AdminUser
	err := a.c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/admin/users",
		path:     path,
		auth:     true,
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Investments список инвестиций; status - необязательный фильтр
func (a *AdminClient) Investments(ctx context.Context, status models.InvestmentStatus) ([]models.Investment, error) {
	path := "/api/admin/investments"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}

	var investments []models.Investment
	err := a.c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/admin/investments",
		path:     path,
		auth:     true,
	}, &investments)
	if err != nil {
		return nil, err
	}
	return investments, nil
}
