package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/invest-client-go/internal/calculations"
	"github.com/cloud-ru/invest-client-go/internal/config"
	"github.com/cloud-ru/invest-client-go/internal/metrics"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/render"
	"github.com/cloud-ru/invest-client-go/internal/validators"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// ToolHandler обработчик именованного инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// PackSource источник каталога пакетов
type PackSource interface {
	ListPacks(ctx context.Context) ([]models.InvestmentPack, error)
}

// ProjectionResult ответ project_return
type ProjectionResult struct {
	Projection         calculations.Projection `json:"projection"`
	View               render.ProjectionView   `json:"view"`
	TotalReturnPercent string                  `json:"total_return_percent"`
}

// Registry возвращает все инструменты по имени
func Registry(cfg *config.Config, tracer trace.Tracer, packs PackSource, f *utils.CurrencyFormatter) map[string]ToolHandler {
	return map[string]ToolHandler{
		"project_return":    ProjectReturnHandler(cfg, tracer, f),
		"pack_catalog":      PackCatalogHandler(tracer, packs, f),
		"investment_detail": InvestmentDetailHandler(tracer, f),
		"referral_progress": ReferralProgressHandler(tracer),
	}
}

func validationFailed(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("tool", toolName, "error").Inc()
	return fmt.Errorf("paramètres invalides: %w", err)
}

func succeeded(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("tool", toolName, "success").Inc()
}

// ProjectReturnHandler считает прогноз доходности по сумме, ставке и сроку
func ProjectReturnHandler(cfg *config.Config, tracer trace.Tracer, f *utils.CurrencyFormatter) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "project_return"

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		principal, ok := params["principal"].(float64)
		if !ok {
			return nil, fmt.Errorf("paramètre invalide: principal")
		}
		rate, ok := params["daily_rate_percent"].(float64)
		if !ok {
			return nil, fmt.Errorf("paramètre invalide: daily_rate_percent")
		}
		daysFloat, ok := params["duration_days"].(float64)
		if !ok {
			return nil, fmt.Errorf("paramètre invalide: duration_days")
		}
		if err := validators.ValidateWholeNumber("duration_days", daysFloat); err != nil {
			return nil, validationFailed(span, toolName, err)
		}
		days := int(daysFloat)

		span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("daily_rate_percent", rate),
			attribute.Int("duration_days", days),
		)

		metrics.APICalls.WithLabelValues("tool", toolName, "started").Inc()

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, validationFailed(span, toolName, err)
		}
		if err := validators.CheckRate(cfg, rate); err != nil {
			return nil, validationFailed(span, toolName, err)
		}
		if err := validators.CheckDays(cfg, days); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		projection := calculations.ProjectReturn(principal, rate, float64(days))
		if !projection.Valid {
			span.SetAttributes(attribute.String("error", "calculation_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
			return nil, fmt.Errorf("erreur de calcul: données d'entrée incorrectes")
		}

		span.SetAttributes(attribute.String("total_return", projection.TotalReturn.String()))
		succeeded(span, toolName)

		return &ProjectionResult{
			Projection:         projection,
			View:               render.Projection(projection, f),
			TotalReturnPercent: render.Percent(calculations.DerivedReturnPercentage(rate, days)),
		}, nil
	}
}

// PackCatalogHandler загружает каталог и строит карточки пакетов
func PackCatalogHandler(tracer trace.Tracer, packs PackSource, f *utils.CurrencyFormatter) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "pack_catalog"

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("tool", toolName, "started").Inc()

		list, err := packs.ListPacks(ctx)
		if err != nil {
			span.SetAttributes(attribute.String("error", "backend_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			metrics.APICalls.WithLabelValues("tool", toolName, "error").Inc()
			return nil, fmt.Errorf("impossible de charger le catalogue: %w", err)
		}

		cards := render.RenderCatalog(list, f)
		span.SetAttributes(attribute.Int("cards", len(cards)))
		succeeded(span, toolName)

		return cards, nil
	}
}

// InvestmentDetailHandler строит экран позиции. Параметры: investment (объект), now (RFC3339, необязательно)
func InvestmentDetailHandler(tracer trace.Tracer, f *utils.CurrencyFormatter) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "investment_detail"

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		raw, ok := params["investment"]
		if !ok {
			return nil, fmt.Errorf("paramètre invalide: investment")
		}
		var inv models.Investment
		if err := remarshal(raw, &inv); err != nil {
			return nil, validationFailed(span, toolName, &validators.ValidationError{Field: "investment", Message: err.Error()})
		}

		now := time.Now()
		if s, ok := params["now"].(string); ok && s != "" {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, validationFailed(span, toolName, &validators.ValidationError{Field: "now", Message: "format RFC3339 attendu"})
			}
			now = parsed
		}

		span.SetAttributes(attribute.Int64("investment_id", inv.ID))

		detail := render.RenderInvestment(inv, now, f)
		succeeded(span, toolName)

		return detail, nil
	}
}

// ReferralProgressHandler считает прогресс по уровням. Параметры: count, levels (необязательно)
func ReferralProgressHandler(tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := "referral_progress"

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		countFloat, ok := params["count"].(float64)
		if !ok {
			return nil, fmt.Errorf("paramètre invalide: count")
		}
		if err := validators.ValidatePositiveNumber("count", countFloat, 0, 1e9); err != nil {
			return nil, validationFailed(span, toolName, err)
		}
		if err := validators.ValidateWholeNumber("count", countFloat); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		var levels []models.ReferralLevel
		if raw, ok := params["levels"]; ok && raw != nil {
			if err := remarshal(raw, &levels); err != nil {
				return nil, validationFailed(span, toolName, &validators.ValidationError{Field: "levels", Message: err.Error()})
			}
		}

		progress := calculations.ReferralProgress(int(countFloat), levels)
		span.SetAttributes(attribute.Float64("percent", progress.Percent))
		succeeded(span, toolName)

		return progress, nil
	}
}

// remarshal переводит произвольное значение из params в типизированную структуру
func remarshal(in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
