package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySuffix используется, если суффикс не задан в конфигурации
const DefaultCurrencySuffix = "FCFA"

// CurrencyFormatter превращает сумму в строку для отображения: целые единицы,
// разделители разрядов по локали и суффикс валюты.
type CurrencyFormatter struct {
	printer *message.Printer
	suffix  string
}

// NewCurrencyFormatter создает форматтер. Неизвестная локаль заменяется на французскую.
func NewCurrencyFormatter(locale, suffix string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		suffix = DefaultCurrencySuffix
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		suffix:  suffix,
	}
}

// Format форматирует decimal-сумму
func (f *CurrencyFormatter) Format(amount decimal.Decimal) string {
	units := amount.Round(0).BigInt()
	if units.IsInt64() {
		return f.printer.Sprintf("%d", units.Int64()) + " " + f.suffix
	}
	return f.groupDigits(units.String()) + " " + f.suffix
}

// groupDigits группирует по три цифры с разделителем локали.
// Нужен для сумм за пределами int64.
func (f *CurrencyFormatter) groupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	sep := strings.TrimSuffix(strings.TrimPrefix(f.printer.Sprintf("%d", 1000), "1"), "000")

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatFloat форматирует float64; NaN и бесконечность отображаются как ноль
func (f *CurrencyFormatter) FormatFloat(amount float64) string {
	if !IsFinite(amount) {
		return f.Format(decimal.Zero)
	}
	return f.Format(decimal.NewFromFloat(amount))
}

// Suffix возвращает суффикс валюты
func (f *CurrencyFormatter) Suffix() string {
	return f.suffix
}
