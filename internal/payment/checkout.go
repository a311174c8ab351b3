package payment

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

// ErrCheckoutNotConfigured не задан публичный ключ агрегатора
var ErrCheckoutNotConfigured = errors.New("payment checkout is not configured")

// CheckoutConfig параметры размещенной страницы оплаты
type CheckoutConfig struct {
	PublicKey   string
	Currency    string
	RedirectURL string
	MinDeposit  float64
	Title       string
}

// CheckoutCustomer данные плательщика
type CheckoutCustomer struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// CheckoutCustomizations оформление страницы оплаты
type CheckoutCustomizations struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Checkout параметры вызова SDK агрегатора (Flutterwave inline/hosted checkout)
type Checkout struct {
	PublicKey      string                 `json:"public_key"`
	TxRef          string                 `json:"tx_ref"`
	Amount         float64                `json:"amount"`
	Currency       string                 `json:"currency"`
	PaymentOptions string                 `json:"payment_options"`
	RedirectURL    string                 `json:"redirect_url,omitempty"`
	Customer       CheckoutCustomer       `json:"customer"`
	Customizations CheckoutCustomizations `json:"customizations"`
	Meta           map[string]interface{} `json:"meta,omitempty"`
}

// BuildCheckout собирает параметры пополнения. Сам платеж подтверждается
// бэкендом через Client.VerifyDeposit по tx_ref.
func BuildCheckout(cfg CheckoutConfig, user models.User, amount float64) (*Checkout, error) {
	if strings.TrimSpace(cfg.PublicKey) == "" {
		return nil, ErrCheckoutNotConfigured
	}
	if err := validators.CheckMinimum("amount", amount, cfg.MinDeposit); err != nil {
		return nil, err
	}
	if err := validators.CheckRequired("email", user.Email); err != nil {
		return nil, err
	}

	currency := cfg.Currency
	if currency == "" {
		currency = "XOF"
	}
	title := cfg.Title
	if title == "" {
		title = "Dépôt"
	}

	return &Checkout{
		PublicKey:      cfg.PublicKey,
		TxRef:          "dep-" + uuid.NewString(),
		Amount:         amount,
		Currency:       currency,
		PaymentOptions: "card,mobilemoney,ussd",
		RedirectURL:    cfg.RedirectURL,
		Customer: CheckoutCustomer{
			Email:       user.Email,
			Name:        user.Name,
			PhoneNumber: user.Phone,
		},
		Customizations: CheckoutCustomizations{Title: title},
		Meta:           map[string]interface{}{"user_id": user.ID},
	}, nil
}
