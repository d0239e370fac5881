package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/api"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/metrics"
	"github.com/afjrotc/logistics/internal/notify"
	"github.com/afjrotc/logistics/internal/store"
	"github.com/afjrotc/logistics/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("session-secret", "", "token signing secret (default: generated and stored)")
	cmd.Flags().Bool("cookie-secure", false, "mark the session cookie Secure")
	bindFlags(a.v, cmd.Flags(), map[string]string{
		"addr":                  "addr",
		"session.secret":        "session-secret",
		"session.cookie_secure": "cookie-secure",
	})
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	m := metrics.New()

	kvStore, err := a.openStore(ctx, m.KVOperations)
	if err != nil {
		return err
	}

	svc := logistics.New(kvStore, logistics.Options{
		Logger:   a.log.Named("logistics"),
		Notifier: notify.Log{Logger: a.log.Named("notify")},
	})
	// Load failures are already logged; the service runs on seed data.
	_ = svc.Init(ctx)
	defer svc.Close()
	m.RegisterInventory(svc)

	secret := a.cfg.Session.Secret
	if secret == "" {
		secret, err = store.SessionSecret(ctx, kvStore)
		if err != nil {
			return err
		}
	}

	handler, err := newHandler(svc, m, secret, a.cfg.Session.CookieSecure, a.log)
	if err != nil {
		return fmt.Errorf("setting up routes: %w", err)
	}

	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return listenAndServe(ctx, server, a.log)
}

// newHandler combines the API, the web pages and the operational endpoints.
// API routes take priority, web routes handle the rest.
func newHandler(svc *logistics.Service, m *metrics.Metrics, secret string, cookieSecure bool, logger *zap.Logger) (http.Handler, error) {
	webRouter, err := web.NewRouter(svc, web.Options{
		JWTSecret:    secret,
		CookieSecure: cookieSecure,
		Logger:       logger.Named("web"),
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.LoggingMiddleware(logger.Named("http"), m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", m.Handler())
	r.Mount("/api", api.NewRouter(svc, secret, logger.Named("api")))
	r.Mount("/", webRouter)
	return r, nil
}

// listenAndServe runs server until ctx ends, then shuts it down gracefully.
func listenAndServe(ctx context.Context, server *http.Server, logger *zap.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	logger.Info("server started", zap.String("addr", server.Addr))

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	}
}
