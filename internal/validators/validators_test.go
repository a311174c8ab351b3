package validators

import (
	"fmt"
	"math"
	"testing"

	"github.com/cloud-ru/invest-client-go/internal/config"
	"github.com/cloud-ru/invest-client-go/internal/models"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     1000000.0,
			wantError: false,
		},
		{
			name:      "zero principal allowed for preview",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid principal negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     -1000.0,
			wantError: true,
		},
		{
			name:      "invalid principal NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "valid rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     2.5,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "valid days",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDays(cfg, v.(int)) },
			value:     40,
			wantError: false,
		},
		{
			name:      "invalid days zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDays(cfg, v.(int)) },
			value:     0,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestCheckAmountInPack(t *testing.T) {
	pack := models.InvestmentPack{Name: "Starter", MinAmount: 5000, MaxAmount: 50000}

	tests := []struct {
		amount    float64
		wantError bool
	}{
		{amount: 5000, wantError: false},
		{amount: 50000, wantError: false},
		{amount: 4999, wantError: true},
		{amount: 50001, wantError: true},
		{amount: math.Inf(1), wantError: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.amount), func(t *testing.T) {
			err := CheckAmountInPack(pack, tt.amount)
			if (err != nil) != tt.wantError {
				t.Errorf("CheckAmountInPack() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCheckBalance(t *testing.T) {
	if err := CheckBalance(10000, 10000); err != nil {
		t.Errorf("exact balance should pass, got %v", err)
	}
	err := CheckBalance(9999, 10000)
	if err == nil {
		t.Fatal("expected error for insufficient balance")
	}
	wrapped := fmt.Errorf("submit: %w", err)
	if !IsValidationError(wrapped) {
		t.Error("wrapped error should still be a ValidationError")
	}
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantError bool
	}{
		{name: "valid", email: "ama@example.com", password: "secret1", wantError: false},
		{name: "empty email", email: " ", password: "secret1", wantError: true},
		{name: "bad email", email: "ama-at-example", password: "secret1", wantError: true},
		{name: "short password", email: "ama@example.com", password: "123", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCredentials(tt.email, tt.password)
			if (err != nil) != tt.wantError {
				t.Errorf("CheckCredentials() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCheckMinimum(t *testing.T) {
	if err := CheckMinimum("amount", 1000, 1000); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := CheckMinimum("amount", 999, 1000); err == nil {
		t.Error("expected error below minimum")
	}
	if err := CheckMinimum("amount", 0, 0); err == nil {
		t.Error("expected error for zero amount")
	}
}

func TestValidateWholeNumber(t *testing.T) {
	tests := []struct {
		input     float64
		wantError bool
	}{
		{input: 40, wantError: false},
		{input: 0, wantError: false},
		{input: 40.9, wantError: true},
		{input: 0.5, wantError: true},
		{input: math.NaN(), wantError: true},
		{input: math.Inf(1), wantError: true},
	}

	for _, tt := range tests {
		err := ValidateWholeNumber("duration_days", tt.input)
		if (err != nil) != tt.wantError {
			t.Errorf("ValidateWholeNumber(%v) error = %v, wantError %v", tt.input, err, tt.wantError)
		}
	}
}

func TestValidationMessages(t *testing.T) {
	pack := models.InvestmentPack{Name: "Starter", MinAmount: 5000, MaxAmount: 50000}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "balance", err: CheckBalance(9999, 10000), want: "amount: solde insuffisant: solde 9999, requis 10000"},
		{name: "pack bounds", err: CheckAmountInPack(pack, 100), want: "amount: le montant pour Starter doit être compris entre 5000 et 50000"},
		{name: "required", err: CheckRequired("tx_ref", " "), want: "tx_ref: champ obligatoire"},
		{name: "minimum", err: CheckMinimum("amount", 500, 1000), want: "amount: montant minimum 1000"},
		{name: "password", err: CheckCredentials("ama@example.com", "123"), want: "password: 6 caractères minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected error")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
