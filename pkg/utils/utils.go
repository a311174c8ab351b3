package utils

import (
	"math"
	"strconv"
)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// IsFiniteNonNegative проверяет, что число конечное и не меньше нуля
func IsFiniteNonNegative(value float64) bool {
	return IsFinite(value) && value >= 0
}

// FormatPercent форматирует процент с точностью до сотых
func FormatPercent(value float64) string {
	if !IsFinite(value) {
		value = 0
	}
	return strconv.FormatFloat(Round2(value), 'f', -1, 64) + " %"
}
