package validators

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/cloud-ru/invest-client-go/internal/config"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// ValidationError ошибка локальной проверки: показывается пользователю и не уходит на бэкенд
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError сообщает, что err (или обернутая в нем ошибка) является ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return invalid(name, "la valeur n'est pas un nombre fini")
	}
	if value < minInclusive {
		return invalid(name, "la valeur doit être ≥ %.0f", minInclusive)
	}
	if value > maxInclusive {
		return invalid(name, "valeur trop élevée (>%.0f)", maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return invalid(name, "la valeur doit être comprise entre %d et %d", minInclusive, maxInclusive)
	}
	return nil
}

// ValidateWholeNumber проверяет, что число из JSON не имеет дробной части
func ValidateWholeNumber(name string, value float64) error {
	if !utils.IsFinite(value) || value != math.Trunc(value) {
		return invalid(name, "un nombre entier est attendu")
	}
	return nil
}

// CheckPrincipal проверяет сумму для предварительного расчета
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 0.0, cfg.MaxPrincipal)
}

// CheckRate проверяет дневную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("daily_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckDays проверяет срок в днях
func CheckDays(cfg *config.Config, days int) error {
	return ValidateIntRange("duration_days", days, 1, cfg.MaxDays)
}

// CheckAmountInPack проверяет, что сумма лежит в границах пакета
func CheckAmountInPack(pack models.InvestmentPack, amount float64) error {
	if !utils.IsFinite(amount) {
		return invalid("amount", "la valeur n'est pas un nombre fini")
	}
	if !pack.InBounds(amount) {
		return invalid("amount", "le montant pour %s doit être compris entre %.0f et %.0f",
			pack.Name, pack.MinAmount, pack.MaxAmount)
	}
	return nil
}

// CheckBalance проверяет, что сумма не превышает известный баланс кошелька
func CheckBalance(balance, amount float64) error {
	if amount > balance {
		return invalid("amount", "solde insuffisant: solde %.0f, requis %.0f", balance, amount)
	}
	return nil
}

// CheckMinimum проверяет нижнюю границу суммы операции
func CheckMinimum(name string, amount, minimum float64) error {
	if !utils.IsFinite(amount) || amount <= 0 {
		return invalid(name, "le montant doit être positif")
	}
	if amount < minimum {
		return invalid(name, "montant minimum %.0f", minimum)
	}
	return nil
}

// CheckCredentials проверяет email и пароль перед отправкой
func CheckCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "champ obligatoire")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email", "format invalide")
	}
	if len(password) < 6 {
		return invalid("password", "6 caractères minimum")
	}
	return nil
}

// CheckRequired проверяет, что строковое поле не пустое
func CheckRequired(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(name, "champ obligatoire")
	}
	return nil
}
