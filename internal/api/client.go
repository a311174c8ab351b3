package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/metrics"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/tracing"
)

const maxResponseBytes = 4 << 20

// Options параметры подключения к бэкенду
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64
	RateBurst  int
	HTTPClient *http.Client
}

// Client REST-клиент бэкенда. Токен берется из session.Store
// и прикладывается к каждому авторизованному запросу.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	store   session.Store
	service string
}

// envelope общий формат ответа бэкенда
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// New создает клиент пользовательского API
func New(opts Options, store session.Store) *Client {
	return newClient(opts, store, "user")
}

func newClient(opts Options, store session.Store, service string) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, burst),
		store:   store,
		service: service,
	}
}

// Session возвращает текущую сохраненную сессию
func (c *Client) Session() (session.Session, error) {
	return c.store.Load()
}

// request описывает один вызов: endpoint - шаблон пути для метрик и трейсов
type request struct {
	method   string
	endpoint string
	path     string
	body     interface{}
	auth     bool
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	ctx, span := tracing.Tracer.Start(ctx, c.service+" "+req.method+" "+req.endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("http.route", req.endpoint),
	)

	status := "error"
	defer func() {
		metrics.APICalls.WithLabelValues(c.service, req.endpoint, status).Inc()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.endpoint, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.auth {
		s, err := c.store.Load()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if s.Token == "" {
			status = "no_session"
			return ErrNoSession
		}
		httpReq.Header.Set("Authorization", "Bearer "+s.Token)
	}

	logging.Debug.Printf("[API] %s %s", req.method, req.path)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("%s %s: %w", req.method, req.endpoint, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		status = "unauthorized"
		span.SetStatus(codes.Error, "unauthorized")
		if req.auth {
			if err := c.store.Clear(); err != nil {
				logging.Error.Printf("[API] failed to clear session after 401: %v", err)
			}
			return ErrUnauthorized
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.text()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status = "rejected"
		span.SetStatus(codes.Error, "rejected")
		logging.Info.Printf("[API] %s %s rejected: status=%d message=%q", req.method, req.endpoint, resp.StatusCode, env.text())
		return &APIError{StatusCode: resp.StatusCode, Message: env.text()}
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response (status=%d): %w", resp.StatusCode, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		status = "rejected"
		return &APIError{StatusCode: resp.StatusCode, Message: env.text()}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	status = "success"
	return nil
}
