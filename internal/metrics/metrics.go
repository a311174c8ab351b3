package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик запросов к бэкенду
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Запросы к REST API бэкенда",
		},
		[]string{"service", "endpoint", "status"},
	)

	// InvestSubmissions исходы отправки инвестиций
	InvestSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invest_submissions_total",
			Help: "Попытки инвестировать по исходу",
		},
		[]string{"outcome"},
	)
)
