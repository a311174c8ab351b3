package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cloud-ru/invest-client-go/internal/calculations"
	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/metrics"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/tracing"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

var (
	// ErrNotAuthenticated нет токена или снимка пользователя: нужен вход
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrSubmissionInFlight предыдущая отправка еще не завершилась
	ErrSubmissionInFlight = errors.New("an investment submission is already in progress")
	// ErrFlowClosed сценарий закрыт, новые отправки не принимаются
	ErrFlowClosed = errors.New("payment flow closed")
)

// Investor отправляет инвестицию на бэкенд
type Investor interface {
	Invest(ctx context.Context, packID int64, amount float64) (*models.InvestmentReceipt, error)
}

// BalanceUpdater обновляет известный баланс после успешной операции
type BalanceUpdater interface {
	UpdateBalance(balance float64) error
}

// Flow сценарий инвестирования: предпросмотр, локальная проверка и ровно один POST
// на подтверждение. Пока запрос в пути, повторные подтверждения отклоняются.
type Flow struct {
	investor Investor
	sessions session.Store

	inFlight atomic.Bool

	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFlow создает сценарий. Все запросы привязаны к parent и отменяются Close.
func NewFlow(parent context.Context, investor Investor, sessions session.Store) *Flow {
	ctx, cancel := context.WithCancel(parent)
	return &Flow{
		investor: investor,
		sessions: sessions,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Preview прогноз доходности для введенной суммы. Границы пакета не проверяются.
func (f *Flow) Preview(pack models.InvestmentPack, amount float64) calculations.Projection {
	return calculations.ProjectPack(pack, amount)
}

// InFlight сообщает, что отправка сейчас выполняется (кнопка должна быть неактивна)
func (f *Flow) InFlight() bool {
	return f.inFlight.Load()
}

// Validate выполняет локальные проверки без обращения к сети
func (f *Flow) Validate(pack models.InvestmentPack, amount float64) error {
	s, err := f.sessions.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	if !pack.IsActive {
		return &validators.ValidationError{Field: "pack", Message: "pack indisponible"}
	}
	if err := validators.CheckAmountInPack(pack, amount); err != nil {
		return err
	}
	return validators.CheckBalance(s.User.Balance, amount)
}

// Submit проверяет сумму и отправляет ее на бэкенд. Квитанция бэкенда
// возвращается без пересчета. Автоматических повторов нет.
func (f *Flow) Submit(ctx context.Context, pack models.InvestmentPack, amount float64) (*models.InvestmentReceipt, error) {
	if f.isClosed() {
		return nil, ErrFlowClosed
	}

	if err := f.Validate(pack, amount); err != nil {
		outcome := "invalid"
		if errors.Is(err, ErrNotAuthenticated) {
			outcome = "unauthenticated"
		}
		metrics.InvestSubmissions.WithLabelValues(outcome).Inc()
		return nil, err
	}

	if !f.inFlight.CompareAndSwap(false, true) {
		metrics.InvestSubmissions.WithLabelValues("duplicate").Inc()
		return nil, ErrSubmissionInFlight
	}
	defer f.inFlight.Store(false)

	if !f.acquire() {
		return nil, ErrFlowClosed
	}
	defer f.wg.Done()

	ctx, stop := mergeCancel(ctx, f.ctx)
	defer stop()

	ctx, span := tracing.Tracer.Start(ctx, "invest_submit")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("pack_id", pack.ID),
		attribute.Float64("amount", amount),
	)

	receipt, err := f.investor.Invest(ctx, pack.ID, amount)
	if err != nil {
		span.SetAttributes(attribute.String("error", err.Error()))
		metrics.InvestSubmissions.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("invest in %s: %w", pack.Name, err)
	}

	metrics.InvestSubmissions.WithLabelValues("success").Inc()
	logging.Info.Printf("investment created: pack=%d amount=%.2f", pack.ID, receipt.Amount)

	if receipt.NewBalance != nil {
		if updater, ok := f.investor.(BalanceUpdater); ok {
			if err := updater.UpdateBalance(*receipt.NewBalance); err != nil {
				logging.Error.Printf("failed to store new balance: %v", err)
			}
		}
	}

	return receipt, nil
}

func (f *Flow) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.wg.Add(1)
	return true
}

// Close отменяет выполняющиеся запросы и ждет их завершения
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.cancel()
	f.wg.Wait()
}

// mergeCancel возвращает контекст ctx, который также отменяется вместе с scope
func mergeCancel(ctx, scope context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(scope, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
