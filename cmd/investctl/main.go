package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/cloud-ru/invest-client-go/internal/api"
	"github.com/cloud-ru/invest-client-go/internal/config"
	"github.com/cloud-ru/invest-client-go/internal/logging"
	"github.com/cloud-ru/invest-client-go/internal/payment"
	"github.com/cloud-ru/invest-client-go/internal/session"
	"github.com/cloud-ru/invest-client-go/internal/tracing"
	"github.com/cloud-ru/invest-client-go/internal/validators"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// app зависимости, общие для всех команд
type app struct {
	cfg      *config.Config
	client   *api.Client
	admin    *api.AdminClient
	sessions session.Store
	format   *utils.CurrencyFormatter
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":             {"login -email E -password P", runLogin},
	"register":          {"register -name N -email E -password P [-phone] [-ref CODE]", runRegister},
	"logout":            {"logout", runLogout},
	"dashboard":         {"dashboard", runDashboard},
	"packs":             {"packs", runPacks},
	"pack":              {"pack -id ID", runPack},
	"project":           {"project -principal X -rate R -days D", runProject},
	"invest":            {"invest -pack ID -amount X", runInvest},
	"claim":             {"claim -investment ID", runClaim},
	"transactions":      {"transactions", runTransactions},
	"referral":          {"referral", runReferral},
	"deposit":           {"deposit -amount X | deposit -verify TX_REF -transaction ID", runDeposit},
	"withdraw":          {"withdraw -amount X -method M -account A", runWithdraw},
	"admin-login":       {"admin-login -email E -password P", runAdminLogin},
	"admin-stats":       {"admin-stats", runAdminStats},
	"admin-investments": {"admin-investments [-status active|completed|cancelled]", runAdminInvestments},
	"admin-logout":      {"admin-logout", runAdminLogout},
	"serve":             {"serve [-addr HOST:PORT]", runServe},
}

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return 2
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	shutdown, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		logging.Error.Printf("tracing disabled: %v", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := api.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.APIRateLimit,
		RateBurst: cfg.APIRateBurst,
	}
	sessions := session.NewFileStore(cfg.SessionFile)
	a := &app{
		cfg:      cfg,
		client:   api.New(opts, sessions),
		admin:    api.NewAdmin(opts, session.NewFileStore(cfg.AdminSessionFile)),
		sessions: sessions,
		format:   utils.NewCurrencyFormatter(cfg.Locale, cfg.CurrencySuffix),
	}

	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		return 1
	}
	return 0
}

// describe переводит ошибку в сообщение для пользователя по категориям
func describe(err error) string {
	var apiErr *api.APIError
	switch {
	case validators.IsValidationError(err):
		return "Erreur de saisie: " + err.Error()
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrNoSession), errors.Is(err, payment.ErrNotAuthenticated):
		return "Veuillez vous connecter: investctl login"
	case errors.As(err, &apiErr):
		return "Erreur: " + apiErr.Error()
	case errors.Is(err, context.Canceled):
		return "Opération annulée"
	default:
		logging.Error.Printf("%v", err)
		return "Une erreur est survenue, veuillez réessayer"
	}
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "usage: investctl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}
