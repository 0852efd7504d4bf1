package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/config"
	"github.com/spec-kit/portfolio-backend/internal/observability"
	"github.com/spec-kit/portfolio-backend/internal/persistence"
	"github.com/spec-kit/portfolio-backend/internal/repository"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

func main() {
	var email, password, username string
	var migrate bool

	flagSet := pflag.NewFlagSet("seed-admin", pflag.ContinueOnError)
	flagSet.StringVarP(&email, "email", "e", os.Getenv("ADMIN_EMAIL"), "admin account email")
	flagSet.StringVarP(&password, "password", "p", os.Getenv("ADMIN_PASSWORD"), "admin account password")
	flagSet.StringVarP(&username, "username", "u", "", "display name (default: the email local part)")
	flagSet.BoolVar(&migrate, "migrate", true, "apply migrations before seeding")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printUsage(flagSet)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if email == "" || password == "" {
		printUsage(flagSet)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if migrate {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	users := service.NewUserService(repository.NewUserRepository(pg.PoolHandle()), cfg.Auth.BcryptCost)
	user, created, err := users.EnsureAdmin(ctx, service.UserInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	action := "updated"
	if created {
		action = "created"
	}
	logger.Info("admin account "+action, zap.String("user_id", user.ID), zap.String("email", user.Email))
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: seed-admin --email admin@example.com --password <secret>")
	flagSet.PrintDefaults()
}
