package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cardset"
	"reskin/backend/internal/config"
	"reskin/backend/internal/database"
	"reskin/backend/internal/deck"
	"reskin/backend/internal/game"
	"reskin/backend/internal/handler"
	"reskin/backend/internal/logging"
	"reskin/backend/internal/router"
	"reskin/backend/internal/user"
	"reskin/backend/pkg/jwt"
)

const shutdownTimeout = 10 * time.Second

// @title           Reskin API
// @version         1.0
// @description     Games, card definition tables, card sets and decks.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}()

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database migrated.")
	}

	cards := carddef.NewStore(carddef.NewGormRepository(db))
	games := game.NewRegistry(game.NewGormRepository(db), cards)
	sets := cardset.NewService(cardset.NewGormRepository(db))
	decks := deck.NewService(deck.NewGormRepository(db), sets, games, cards)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	users := user.NewService(user.NewGormRepository(db), tokens)

	h := handler.New(handler.Services{
		Games:    games,
		Cards:    cards,
		CardSets: sets,
		Decks:    decks,
		Users:    users,
	}, logger)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Options{
			Handler:     h,
			Tokens:      tokens,
			Roles:       users,
			Logger:      logger,
			CORSOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Server is running on :%s", cfg.Port)
		logger.Infof("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
