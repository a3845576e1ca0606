package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/adapter/postgres"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/bookwords"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/glossary"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/wordknowledge"
	"github.com/readwell/readwell-backend/internal/adapter/provider/freedict"
	"github.com/readwell/readwell-backend/internal/auth"
	"github.com/readwell/readwell-backend/internal/config"
	"github.com/readwell/readwell-backend/internal/lexicon"
	"github.com/readwell/readwell-backend/internal/service/cueing"
	"github.com/readwell/readwell-backend/internal/service/definitions"
	"github.com/readwell/readwell-backend/internal/service/simplify"
	"github.com/readwell/readwell-backend/internal/service/vocab"
	"github.com/readwell/readwell-backend/internal/transport/middleware"
	"github.com/readwell/readwell-backend/internal/transport/rest"
)

// tokenValidatorAdapter bridges the HTTP middleware's validator interface to
// the JWT manager.
type tokenValidatorAdapter struct {
	jwt *auth.JWTManager
}

func (a tokenValidatorAdapter) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	return a.jwt.ValidateAccessToken(token)
}

// Run is the application entry point. It loads configuration, builds the
// lexicon, connects to the database, wires services and handlers, and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	lex, err := lexicon.New(lexicon.Options{
		WordNetPath:   cfg.Lexicon.WordNetPath,
		FrequencyPath: cfg.Lexicon.FrequencyPath,
	})
	if err != nil {
		return fmt.Errorf("build lexicon: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	knowledgeRepo := wordknowledge.New(pool)
	bookRepo := bookwords.New(pool)
	glossaryRepo := glossary.New(pool)

	// External providers
	dictProvider := freedict.NewProvider(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, logger)

	// Services
	defsSvc := definitions.NewService(logger, glossaryRepo, dictProvider)
	vocabSvc := vocab.NewService(logger, knowledgeRepo, lex)
	cueSvc := cueing.NewService(logger, bookRepo, vocabSvc, lex, defsSvc, cueing.Config{
		CueTarget:       cfg.Vocabulary.CueTarget,
		ChecklistTarget: cfg.Vocabulary.ChecklistTarget,
	})
	simplifySvc := simplify.NewService(logger, lex, vocabSvc, simplify.Config{
		Percent: cfg.Simplify.Percent,
		Epsilon: cfg.Simplify.Epsilon,
	})

	// HTTP handlers and routing
	healthHandler := rest.NewHealthHandler(pool, lex, BuildVersion())
	wordsHandler := rest.NewWordsHandler(logger, vocabSvc, defsSvc)
	booksHandler := rest.NewBooksHandler(logger, cueSvc, vocabSvc)
	simplifyHandler := rest.NewSimplifyHandler(logger, simplifySvc)

	mux := rest.NewRouter(healthHandler, wordsHandler, booksHandler, simplifyHandler)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(5 * time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	mws = append(mws, middleware.Auth(tokenValidatorAdapter{jwt: jwtManager}))

	handler := middleware.Chain(mws...)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
