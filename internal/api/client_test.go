package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, s session.Session) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore(s)
	return New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, store), store
}

func loggedIn() session.Session {
	return session.Session{Token: "tok-123", User: &models.User{ID: 1, Balance: 50000}}
}

func TestLoginSavesSession(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ama@example.com" || body["password"] != "secret1" {
			t.Errorf("unexpected body %v", body)
		}
		writeEnvelope(w, http.StatusOK, true, "", models.AuthResponse{
			Token: "new-token",
			User:  models.User{ID: 9, Email: "ama@example.com", Balance: 1200},
		})
	}, session.Session{})

	auth, err := client.Login(context.Background(), " ama@example.com ", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if auth.User.ID != 9 {
		t.Errorf("unexpected user %+v", auth.User)
	}

	s, _ := store.Load()
	if !s.Authenticated() || s.Token != "new-token" || s.User.Balance != 1200 {
		t.Errorf("session not saved: %+v", s)
	}
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, session.Session{})

	_, err := client.Login(context.Background(), "not-an-email", "secret1")
	if !validators.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("validation failure must not reach the backend")
	}
}

func TestDashboardRefreshesUser(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		writeEnvelope(w, http.StatusOK, true, "", models.Dashboard{
			User: models.User{ID: 1, Balance: 77000},
			Investments: []models.Investment{
				{ID: 1, Status: models.InvestmentStatusActive},
				{ID: 2, Status: models.InvestmentStatusCompleted},
			},
		})
	}, loggedIn())

	d, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(d.ActiveInvestments()) != 1 {
		t.Errorf("expected 1 active investment, got %d", len(d.ActiveInvestments()))
	}

	s, _ := store.Load()
	if s.User.Balance != 77000 {
		t.Errorf("user snapshot not refreshed: %+v", s.User)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "token expired", nil)
	}, loggedIn())

	_, err := client.Referral(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	s, _ := store.Load()
	if s.Token != "" || s.User != nil {
		t.Errorf("session should be cleared, got %+v", s)
	}
}

func TestNoSessionSkipsNetwork(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, session.Session{})

	_, err := client.Invest(context.Background(), 1, 10000)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("request without token must not be sent")
	}
}

func TestBackendRejection(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		success    bool
		wantStatus int
	}{
		{name: "4xx with message", status: http.StatusBadRequest, success: false, wantStatus: http.StatusBadRequest},
		{name: "200 with success false", status: http.StatusOK, success: false, wantStatus: http.StatusOK},
		{name: "5xx", status: http.StatusInternalServerError, success: false, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, tt.success, "Solde insuffisant", nil)
			}, loggedIn())

			_, err := client.Invest(context.Background(), 3, 10000)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message != "Solde insuffisant" {
				t.Errorf("unexpected APIError %+v", apiErr)
			}
		})
	}
}

func TestInvestBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/investment-packs/3/invest" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]float64
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != 10000 {
			t.Errorf("amount = %v", body["amount"])
		}
		writeEnvelope(w, http.StatusCreated, true, "ok", models.InvestmentReceipt{
			Amount: 10000, DailyReturn: 250, TotalReturn: 20000,
		})
	}, loggedIn())

	receipt, err := client.Invest(context.Background(), 3, 10000)
	if err != nil {
		t.Fatalf("Invest() error = %v", err)
	}
	if receipt.DailyReturn != 250 || receipt.TotalReturn != 20000 {
		t.Errorf("unexpected receipt %+v", receipt)
	}
}

func TestListAndGetPacks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/investment-packs":
			writeEnvelope(w, http.StatusOK, true, "", []models.InvestmentPack{
				{ID: 1, Name: "Starter", MinAmount: 5000, MaxAmount: 50000, InterestRate: 2.5, DurationDays: 40, IsActive: true},
				{ID: 2, Name: "Premium", MinAmount: 50000, MaxAmount: 500000, InterestRate: 3, DurationDays: 30, IsActive: true},
			})
		case "/api/investment-packs/2":
			writeEnvelope(w, http.StatusOK, true, "", models.InvestmentPack{ID: 2, Name: "Premium"})
		default:
			writeEnvelope(w, http.StatusNotFound, false, "not found", nil)
		}
	}, session.Session{})

	packs, err := client.ListPacks(context.Background())
	if err != nil {
		t.Fatalf("ListPacks() error = %v", err)
	}
	if len(packs) != 2 || packs[0].InterestRate != 2.5 {
		t.Errorf("unexpected packs %+v", packs)
	}

	pack, err := client.GetPack(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetPack() error = %v", err)
	}
	if pack.Name != "Premium" {
		t.Errorf("unexpected pack %+v", pack)
	}

	if _, err := client.GetPack(context.Background(), 99); !IsAPIError(err) {
		t.Errorf("expected APIError for missing pack, got %v", err)
	}
}

func TestClaimUpdatesBalance(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["investmentId"] != 42 {
			t.Errorf("investmentId = %v", body["investmentId"])
		}
		newBalance := 50750.0
		writeEnvelope(w, http.StatusOK, true, "", models.ClaimResult{InvestmentID: 42, ClaimedAmount: 750, NewBalance: &newBalance})
	}, loggedIn())

	res, err := client.ClaimEarnings(context.Background(), 42)
	if err != nil {
		t.Fatalf("ClaimEarnings() error = %v", err)
	}
	if res.ClaimedAmount != 750 {
		t.Errorf("unexpected result %+v", res)
	}
	s, _ := store.Load()
	if s.User.Balance != 50750 {
		t.Errorf("balance = %v, want 50750", s.User.Balance)
	}
}

func TestBalanceKeptWithoutNewBalance(t *testing.T) {
	tests := []struct {
		name string
		path string
		data interface{}
		call func(*Client) error
	}{
		{
			name: "pending deposit",
			path: "/api/deposits/verify",
			data: map[string]interface{}{"tx_ref": "dep-1", "transaction_id": "9", "status": "pending"},
			call: func(c *Client) error {
				_, err := c.VerifyDeposit(context.Background(), "dep-1", "9")
				return err
			},
		},
		{
			name: "claim without balance",
			path: "/api/claim-earnings",
			data: map[string]interface{}{"investment_id": 42, "claimed_amount": 750},
			call: func(c *Client) error {
				_, err := c.ClaimEarnings(context.Background(), 42)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("path = %s, want %s", r.URL.Path, tt.path)
				}
				writeEnvelope(w, http.StatusOK, true, "", tt.data)
			}, loggedIn())

			if err := tt.call(client); err != nil {
				t.Fatalf("call error = %v", err)
			}
			s, _ := store.Load()
			if s.User.Balance != 50000 {
				t.Errorf("balance = %v, want 50000 untouched", s.User.Balance)
			}
		})
	}
}

func TestVerifyDepositUpdatesBalance(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["tx_ref"] != "dep-1" || body["transaction_id"] != "9" {
			t.Errorf("unexpected body %v", body)
		}
		writeEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
			"tx_ref": "dep-1", "status": "successful", "amount": 25000, "new_balance": 75000,
		})
	}, loggedIn())

	v, err := client.VerifyDeposit(context.Background(), "dep-1", "9")
	if err != nil {
		t.Fatalf("VerifyDeposit() error = %v", err)
	}
	if v.NewBalance == nil || *v.NewBalance != 75000 {
		t.Errorf("unexpected verification %+v", v)
	}
	s, _ := store.Load()
	if s.User.Balance != 75000 {
		t.Errorf("balance = %v, want 75000", s.User.Balance)
	}
}

func TestTransactions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/transactions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		writeEnvelope(w, http.StatusOK, true, "", []models.Transaction{
			{ID: 1, Type: models.TransactionDeposit, Amount: 25000, Status: "completed"},
			{ID: 2, Type: models.TransactionInvestment, Amount: 10000, Status: "completed"},
		})
	}, loggedIn())

	txs, err := client.Transactions(context.Background())
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(txs) != 2 || txs[1].Type != models.TransactionInvestment {
		t.Errorf("unexpected transactions %+v", txs)
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, session.NewMemoryStore(session.Session{}))

	start := time.Now()
	_, err := client.ListPacks(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("request was not cut off by the timeout")
	}
}

func TestAdminClientUsesOwnSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			writeEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
				"token": "admin-tok",
				"admin": models.User{ID: 1, Email: "root@example.com"},
			})
		case "/api/admin/users":
			if r.Header.Get("Authorization") != "Bearer admin-tok" {
				writeEnvelope(w, http.StatusUnauthorized, false, "nope", nil)
				return
			}
			if r.URL.Query().Get("search") != "ama" {
				t.Errorf("search = %q", r.URL.Query().Get("search"))
			}
			writeEnvelope(w, http.StatusOK, true, "", []models.AdminUser{{User: models.User{ID: 5, Name: "Ama"}}})
		default:
			writeEnvelope(w, http.StatusNotFound, false, "not found", nil)
		}
	}))
	defer srv.Close()

	userStore := session.NewMemoryStore(loggedIn())
	adminStore := session.NewMemoryStore(session.Session{})
	admin := NewAdmin(Options{BaseURL: srv.URL}, adminStore)

	if err := admin.Login(context.Background(), "root@example.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	users, err := admin.Users(context.Background(), " ama ")
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if len(users) != 1 || users[0].Name != "Ama" {
		t.Errorf("unexpected users %+v", users)
	}

	if s, _ := userStore.Load(); s.Token != "tok-123" {
		t.Error("admin login must not touch the user session")
	}
}

func TestAdminInvestmentsAndLogout(t *testing.T) {
	var lastQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/investments" {
			writeEnvelope(w, http.StatusNotFound, false, "not found", nil)
			return
		}
		if r.Header.Get("Authorization") != "Bearer admin-tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		lastQuery.Store(r.URL.RawQuery)
		writeEnvelope(w, http.StatusOK, true, "", []models.Investment{{ID: 3, Status: models.InvestmentStatusActive}})
	}))
	defer srv.Close()

	store := session.NewMemoryStore(session.Session{Token: "admin-tok", User: &models.User{ID: 1}})
	admin := NewAdmin(Options{BaseURL: srv.URL}, store)

	tests := []struct {
		status models.InvestmentStatus
		query  string
	}{
		{status: "", query: ""},
		{status: models.InvestmentStatusActive, query: "status=active"},
	}
	for _, tt := range tests {
		list, err := admin.Investments(context.Background(), tt.status)
		if err != nil {
			t.Fatalf("Investments(%q) error = %v", tt.status, err)
		}
		if len(list) != 1 || list[0].ID != 3 {
			t.Errorf("unexpected investments %+v", list)
		}
		if got := lastQuery.Load().(string); got != tt.query {
			t.Errorf("query = %q, want %q", got, tt.query)
		}
	}

	if err := admin.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if s, _ := store.Load(); s.Token != "" {
		t.Error("admin session was not cleared")
	}
	if _, err := admin.Investments(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}
}
