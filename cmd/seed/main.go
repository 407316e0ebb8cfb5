// Command seed upserts the TokenEngine game, its card definition tables and
// their reference rows. Running it again leaves the database unchanged.
//
// Usage:
//
//	seed [-admin <username|email>]
//
// With -admin the named account is also granted the admin role.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"reskin/backend/internal/carddef"
	"reskin/backend/internal/config"
	"reskin/backend/internal/database"
	"reskin/backend/internal/game"
	"reskin/backend/internal/logging"
	"reskin/backend/internal/user"
)

func main() {
	admin := flag.String("admin", "", "username or email of an account to promote to admin")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	if err := run(cfg, logger, *admin); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}
	logger.Info("Database seeded successfully!")
}

func run(cfg *config.Config, logger *logrus.Logger, admin string) (err error) {
	db, err := database.Connect(cfg.DatabaseURL, database.PoolConfig{}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cards := carddef.NewStore(carddef.NewGormRepository(db))
	registry := game.NewRegistry(game.NewGormRepository(db), cards)
	if err := seed(ctx, cards, registry, logger); err != nil {
		return err
	}
	if admin == "" {
		return nil
	}
	return promote(ctx, user.NewService(user.NewGormRepository(db), nil), admin, logger)
}

func promote(ctx context.Context, users *user.Service, login string, logger *logrus.Logger) error {
	u, err := users.Promote(ctx, login)
	if err != nil {
		return fmt.Errorf("failed to promote %q: %w", login, err)
	}
	logger.WithField("user_id", u.ID).Infof("User %q is now an admin.", u.Username)
	return nil
}

func seed(ctx context.Context, cards *carddef.Store, registry *game.Registry, logger *logrus.Logger) error {
	if err := cards.SeedTokenCards(ctx, tokenCards); err != nil {
		return err
	}
	if err := cards.SeedDiscoveryCards(ctx, discoveryCards); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"token_cards":     len(tokenCards),
		"discovery_cards": len(discoveryCards),
	}).Info("Card definitions seeded.")

	g, err := registry.CreateOrUpdateGame(ctx, tokenEngine)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"game_id":     g.ID,
		"descriptors": len(g.CardDefinitions),
	}).Infof("Game %q seeded.", g.Name)
	return nil
}
