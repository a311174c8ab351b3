package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/cloud-ru/invest-client-go/internal/api"
	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/tools"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

const maxBodyBytes = 1 << 20

// Server локальный сервер предпросмотра: инструменты и /metrics
type Server struct {
	router  *mux.Router
	tools   map[string]tools.ToolHandler
	limiter *visitorLimiter
}

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// New собирает маршруты
func New(handlers map[string]tools.ToolHandler) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		tools:   handlers,
		limiter: newVisitorLimiter(rate.Limit(5), 20),
	}

	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	toolRouter := s.router.PathPrefix("/tools").Subrouter()
	toolRouter.Use(s.limiter.middleware)
	toolRouter.Use(logRequests)
	toolRouter.HandleFunc("", s.listTools).Methods(http.MethodGet)
	toolRouter.HandleFunc("/{name}", s.callTool).Methods(http.MethodPost)

	return s
}

// ServeHTTP делает Server обычным http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      s,
	}

	go s.limiter.cleanup(ctx)

	errc := make(chan error, 1)
	go func() {
		logging.Info.Printf("preview server listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info.Println("preview server stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: names})
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	handler, ok := s.tools[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, response{Success: false, Message: "unknown tool: " + name})
		return
	}

	params := map[string]interface{}{}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "cannot read body"})
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "Not valid JSON"})
			return
		}
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		writeJSON(w, statusFor(err), response{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func statusFor(err error) int {
	var apiErr *api.APIError
	switch {
	case validators.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error.Printf("encode response: %v", err)
	}
}
