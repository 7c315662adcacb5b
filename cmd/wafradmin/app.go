package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wafr/wafradmin/internal/handlers"
	"github.com/wafr/wafradmin/internal/logger"
	"github.com/wafr/wafradmin/internal/mockgen"
	"github.com/wafr/wafradmin/internal/repository/memstore"
	"github.com/wafr/wafradmin/internal/repository/sessionfile"
	"github.com/wafr/wafradmin/internal/service/auth"
	"github.com/wafr/wafradmin/internal/service/directory"
	"github.com/wafr/wafradmin/internal/statement"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Seed the record set. This is the whole "database": fresh random
	// records on every start, nothing persisted.
	gen := mockgen.New()
	userRepo := memstore.NewUserRepo(gen.Users(c.UserCount))

	// Sessions are the one thing that survives a restart
	sessionRepo, err := sessionfile.New(c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error while opening session store: %w", err)
	}

	// Initialize services
	authService, err := auth.NewService(auth.Config{
		SecretKey:     c.SecretKey,
		AdminEmail:    c.AdminEmail,
		AdminPassword: c.AdminPassword,
	}, sessionRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	directoryService, err := directory.NewService(userRepo, gen)
	if err != nil {
		return nil, fmt.Errorf("error while creating directory service. Err: %w", err)
	}
	builder, err := statement.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("error while creating statement builder. Err: %w", err)
	}

	mux := handlers.NewRouter(
		authService,
		directoryService,
		builder,
		log,
	)

	log.Info("roster seeded", "users", c.UserCount)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "addr", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
