// Command server runs the Settlr ledger API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/settlr/settlr/internal/api"
	"github.com/settlr/settlr/internal/auth"
	"github.com/settlr/settlr/internal/config"
	"github.com/settlr/settlr/internal/notify"
	"github.com/settlr/settlr/internal/service"
	"github.com/settlr/settlr/internal/storage/sqlite"
	"github.com/settlr/settlr/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("store ready", "path", cfg.SQLiteDBPath)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		notifier = amqpNotifier
		slog.Info("notification sink connected", "exchange", cfg.AMQPExchange)
	} else {
		slog.Info("no AMQP_URL set, notifications disabled")
	}
	defer notifier.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	guard := service.NewMembershipGuard(store)
	server := api.NewServer(
		service.NewAuthService(store, jwtManager),
		service.NewGroupService(store, guard, notifier),
		service.NewExpenseService(store, guard, notifier),
		service.NewDashboardService(store),
		jwtManager,
	)

	httpServer := &http.Server{
		Addr: net.JoinHostPort("", cfg.Port),
		// h2c lets local clients and proxies speak HTTP/2 without TLS.
		Handler:           h2c.NewHandler(server.Routes(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
