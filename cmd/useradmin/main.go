package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userbase/internal/admin/cli"
	"github.com/dmitrijs2005/userbase/internal/cryptox"
	"github.com/dmitrijs2005/userbase/internal/logging"
	"github.com/dmitrijs2005/userbase/internal/server/config"
	"github.com/dmitrijs2005/userbase/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userbase/internal/server/services"
)

func main() {
	ctx := context.Background()

	// The console shares the server's configuration so both hash passwords
	// with the same Argon2id parameters.
	cfg := config.LoadConfig()

	logger, err := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Printf("%v", err)
		return
	}

	hasher, err := cryptox.NewHasher(cfg.HashParams())
	if err != nil {
		log.Printf("%v", err)
		return
	}

	console := cli.NewConsole(
		services.NewUserService(db, rm, hasher),
		services.NewAuthService(db, rm, hasher),
		logger, os.Stdin, os.Stdout,
	)
	console.Run(ctx)
}
