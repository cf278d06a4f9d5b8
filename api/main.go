package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/rogerio-castellano/inventory-sheets/internal/auth"
	"github.com/rogerio-castellano/inventory-sheets/internal/config"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/ban"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-sheets/internal/http/middleware"
	rl "github.com/rogerio-castellano/inventory-sheets/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/router"
	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
	"github.com/rogerio-castellano/inventory-sheets/internal/metrics"
	"github.com/rogerio-castellano/inventory-sheets/internal/redissvc"
	"github.com/rogerio-castellano/inventory-sheets/internal/repo"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

const usage = `usage: inventory-sheets [command]

commands:
  serve                 run the HTTP server (default)
  token [-ttl d] EMAIL  print a signed identity token
  export FILE.xlsx      copy every table into a new workbook
`

// @title Inventory Sheets API
// @version 1.0
// @description Action dispatcher over the inventory row store.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "inventory-sheets",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	ctx := context.Background()
	switch cmd {
	case "serve":
		err = serve(ctx, cfg, logg)
	case "token":
		err = issueToken(cfg, args)
	case "export":
		err = export(ctx, cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logg.Error(logg.WithField(ctx, "command", cmd), "command failed", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	service := inventory.NewService(inventory.Options{
		Items:        repo.NewSheetItemRepository(store),
		Suppliers:    repo.NewSheetSupplierRepository(store),
		Transactions: repo.NewSheetTransactionRepository(store),
		Audit:        repo.NewSheetAuditRepository(store),
		Logger:       logg,
	})
	handlers.SetInventoryService(service)
	handlers.SetLogger(logg)
	handlers.SetDispatchMetrics(metrics.NewDispatchMetrics(prometheus.DefaultRegisterer))

	visitors := rl.NewVisitors(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go visitors.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	var strikes mw.StrikeTracker
	if cfg.RedisAddr != "" {
		var rs *redissvc.RedisService
		rs, err = redissvc.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, rs.Close()) }()

		banner := ban.NewBanner(rs, logg)
		go banner.StartDailyBanSummary(ctx)
		strikes = banner
	} else {
		logg.Warn(ctx, "redis not configured, strike tracking disabled")
	}

	signer := auth.NewSigner(cfg.JWTSecret)
	if !signer.Enabled() {
		logg.Warn(ctx, "jwt secret not configured, callers are identified by header")
	}

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: router.NewRouter(router.Options{
			Logger:      logg,
			Signer:      signer,
			DefaultUser: cfg.DefaultUser,
			Limiter:     visitors,
			Strikes:     strikes,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{"addr": cfg.Addr, "store": cfg.StoreDriver}), "server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logg.Info(ctx, "server stopped")
	return nil
}

func issueToken(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("token: expected exactly one email")
	}

	token, err := auth.NewSigner(cfg.JWTSecret).GenerateToken(fs.Arg(0), *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func export(ctx context.Context, cfg config.Config, args []string) (err error) {
	if len(args) != 1 {
		return errors.New("export: expected the output file")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	if err := rowstore.ExportWorkbook(ctx, store, args[0]); err != nil {
		return err
	}
	fmt.Println("exported to", args[0])
	return nil
}
