package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipebook/internal/config"
	apphttp "recipebook/internal/http"
	"recipebook/internal/repository"
	redisrepo "recipebook/internal/repository/redis"
	"recipebook/internal/repository/sqlite"
	"recipebook/internal/service"
	"recipebook/internal/session"
)

const janitorInterval = 10 * time.Minute

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	} else {
		logger.SetLevel(level)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	recipeRepo := sqlite.NewRecipeRepository(db)

	sessionRepo, closer, err := buildSessionStore(ctx, cfg, db, logger)
	if err != nil {
		logger.Fatalf("setup session store: %v", err)
	}
	defer closer.Close()

	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		logger.Fatalf("session codec: %v", err)
	}
	authority := session.NewAuthority(sessionRepo, codec, cfg.SessionTTL())
	if cfg.Session.Backend == config.SessionBackendSQLite {
		go authority.RunJanitor(ctx, janitorInterval, logger)
	}

	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(recipeRepo, userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		recipeService,
		authority,
		apphttp.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		cfg.Server.CORSOrigins,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func buildSessionStore(ctx context.Context, cfg config.Config, db *sql.DB, logger *logrus.Logger) (repository.SessionRepository, io.Closer, error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		logger.Info("storing sessions in sqlite")
		return sqlite.NewSessionRepository(db), nopCloser{}, nil
	}

	client, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("storing sessions in redis at %s (db %d)", cfg.Redis.Addr, cfg.Redis.DB)
	return redisrepo.NewSessionRepository(client), client, nil
}
