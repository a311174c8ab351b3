package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/cloud-ru/invest-client-go/internal/api"
	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/internal/payment"
	"github.com/cloud-ru/invest-client-go/internal/render"
	"github.com/cloud-ru/invest-client-go/internal/server"
	"github.com/cloud-ru/invest-client-go/internal/tools"
	"github.com/cloud-ru/invest-client-go/internal/tracing"
	"github.com/cloud-ru/invest-client-go/internal/validators"
)

var stdout io.Writer = os.Stdout

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Bienvenue %s. Solde: %s\n", auth.User.Name, a.format.FormatFloat(auth.User.Balance))
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	var req api.RegisterRequest
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.ReferralCode, "ref", "", "referral code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Compte créé pour %s\n", auth.User.Email)
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Déconnecté")
	return nil
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	d, err := a.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	return printJSON(render.RenderDashboard(*d, time.Now(), a.format))
}

func runPacks(ctx context.Context, a *app, args []string) error {
	packs, err := a.client.ListPacks(ctx)
	if err != nil {
		return err
	}
	return printJSON(render.RenderCatalog(packs, a.format))
}

func runPack(ctx context.Context, a *app, args []string) error {
	fs := newFlags("pack")
	id := fs.Int64("id", 0, "pack id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pack, err := a.client.GetPack(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(render.RenderPack(*pack, a.format))
}

func runProject(ctx context.Context, a *app, args []string) error {
	fs := newFlags("project")
	principal := fs.Float64("principal", 0, "amount to invest")
	rate := fs.Float64("rate", 0, "daily rate, percent")
	days := fs.Int("days", 0, "duration in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	handler := tools.ProjectReturnHandler(a.cfg, tracing.Tracer, a.format)
	out, err := handler(ctx, map[string]interface{}{
		"principal":          *principal,
		"daily_rate_percent": *rate,
		"duration_days":      float64(*days),
	})
	if err != nil {
		return err
	}

	res := out.(*tools.ProjectionResult)
	fmt.Fprintf(stdout, "Montant:          %s\n", res.View.Principal)
	fmt.Fprintf(stdout, "Gain journalier:  %s\n", res.View.DailyReturn)
	fmt.Fprintf(stdout, "Bénéfice:         %s\n", res.View.Profit)
	fmt.Fprintf(stdout, "Retour total:     %s (%s)\n", res.View.TotalReturn, res.TotalReturnPercent)
	return nil
}

func runInvest(ctx context.Context, a *app, args []string) error {
	fs := newFlags("invest")
	packID := fs.Int64("pack", 0, "pack id")
	amount := fs.Float64("amount", 0, "amount to invest")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pack, err := a.client.GetPack(ctx, *packID)
	if err != nil {
		return err
	}

	flow := payment.NewFlow(ctx, a.client, a.sessions)
	defer flow.Close()

	if err := flow.Validate(*pack, *amount); err != nil {
		return err
	}

	preview := render.Projection(flow.Preview(*pack, *amount), a.format)
	fmt.Fprintf(stdout, "%s: %s sur %d jours\n", pack.Name, preview.Principal, pack.DurationDays)
	fmt.Fprintf(stdout, "Gain journalier estimé: %s, retour total estimé: %s\n", preview.DailyReturn, preview.TotalReturn)

	if !*yes && !confirm("Confirmer l'investissement ? [o/N] ") {
		fmt.Fprintln(stdout, "Annulé")
		return nil
	}

	receipt, err := flow.Submit(ctx, *pack, *amount)
	if err != nil {
		return err
	}

	if receipt.Message != "" {
		fmt.Fprintln(stdout, receipt.Message)
	}
	fmt.Fprintf(stdout, "Investi: %s\n", a.format.FormatFloat(receipt.Amount))
	fmt.Fprintf(stdout, "Gain journalier: %s\n", a.format.FormatFloat(receipt.DailyReturn))
	fmt.Fprintf(stdout, "Retour total: %s\n", a.format.FormatFloat(receipt.TotalReturn))
	return nil
}

func confirm(prompt string) bool {
	fmt.Fprint(stdout, prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

func runClaim(ctx context.Context, a *app, args []string) error {
	fs := newFlags("claim")
	id := fs.Int64("investment", 0, "investment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return &validators.ValidationError{Field: "investment", Message: "champ obligatoire"}
	}

	res, err := a.client.ClaimEarnings(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Réclamé: %s.%s\n", a.format.FormatFloat(res.ClaimedAmount), a.balanceNote(res.NewBalance))
	return nil
}

// balanceNote пустая строка, если бэкенд не вернул баланс
func (a *app) balanceNote(balance *float64) string {
	if balance == nil {
		return ""
	}
	return " Nouveau solde: " + a.format.FormatFloat(*balance)
}

func runTransactions(ctx context.Context, a *app, args []string) error {
	txs, err := a.client.Transactions(ctx)
	if err != nil {
		return err
	}
	return printJSON(render.RenderTransactions(txs, a.format))
}

func runReferral(ctx context.Context, a *app, args []string) error {
	snap, err := a.client.Referral(ctx)
	if err != nil {
		return err
	}
	return printJSON(render.RenderReferral(*snap, a.format))
}

func runDeposit(ctx context.Context, a *app, args []string) error {
	fs := newFlags("deposit")
	amount := fs.Float64("amount", 0, "amount to deposit")
	txRef := fs.String("verify", "", "tx_ref to verify after payment")
	transactionID := fs.String("transaction", "", "aggregator transaction id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *txRef != "" {
		v, err := a.client.VerifyDeposit(ctx, *txRef, *transactionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Dépôt %s: %s.%s\n", v.TxRef, v.Status, a.balanceNote(v.NewBalance))
		return nil
	}

	s, err := a.sessions.Load()
	if err != nil {
		return err
	}
	if !s.Authenticated() {
		return payment.ErrNotAuthenticated
	}

	checkout, err := payment.BuildCheckout(payment.CheckoutConfig{
		PublicKey:   a.cfg.FlutterwavePublicKey,
		RedirectURL: a.cfg.DepositRedirectURL,
		Currency:    a.cfg.CheckoutCurrency,
		MinDeposit:  a.cfg.MinDeposit,
	}, *s.User, *amount)
	if err != nil {
		return err
	}
	return printJSON(checkout)
}

func runWithdraw(ctx context.Context, a *app, args []string) error {
	fs := newFlags("withdraw")
	var req models.WithdrawalRequest
	fs.Float64Var(&req.Amount, "amount", 0, "amount to withdraw")
	fs.StringVar(&req.Method, "method", "mobile_money", "payout method")
	fs.StringVar(&req.Account, "account", "", "payout account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx, err := payment.RequestWithdrawal(ctx, a.client, a.sessions, a.cfg.MinWithdrawal, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Demande de retrait #%d: %s (%s)\n", tx.ID, a.format.FormatFloat(tx.Amount), tx.Status)
	return nil
}

func runAdminLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("admin-login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.admin.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Connecté à l'administration")
	return nil
}

func runAdminStats(ctx context.Context, a *app, args []string) error {
	stats, err := a.admin.Stats(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runServe(ctx context.Context, a *app, args []string) error {
	fs := newFlags("serve")
	addr := fs.String("addr", a.cfg.PreviewAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	handlers := tools.Registry(a.cfg, tracing.Tracer, a.client, a.format)
	return server.New(handlers).Run(ctx, *addr)
}

func runAdminInvestments(ctx context.Context, a *app, args []string) error {
	fs := newFlags("admin-investments")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := models.InvestmentStatus(strings.TrimSpace(*status))
	switch st {
	case "", models.InvestmentStatusActive, models.InvestmentStatusCompleted, models.InvestmentStatusCancelled:
	default:
		return &validators.ValidationError{Field: "status", Message: "statut inconnu"}
	}

	list, err := a.admin.Investments(ctx, st)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func runAdminLogout(ctx context.Context, a *app, args []string) error {
	if err := a.admin.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Déconnecté de l'administration")
	return nil
}
