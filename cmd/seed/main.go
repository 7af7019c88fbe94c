// Команда seed очищает базу и заполняет её демонстрационными данными.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/magabrotheeeer/store-rating/internal/config"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/migrations"
	"github.com/magabrotheeeer/store-rating/internal/seed"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

func main() {
	randSeed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for rating values")
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)

	if err := run(cfg, logger, *randSeed); err != nil {
		logger.Error("seed failed", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("demo accounts",
		slog.String("admin", "admin@test.com / "+seed.AdminPassword),
		slog.String("user", "user@test.com / "+seed.UserPassword),
		slog.String("owner", "owner@test.com / "+seed.OwnerPassword),
	)
}

func run(cfg *config.Config, logger *slog.Logger, randSeed uint64) error {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewPCG(randSeed, randSeed>>1))
	_, err = seed.Run(ctx, db, rng, logger)
	return err
}
