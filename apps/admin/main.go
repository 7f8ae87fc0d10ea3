package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/location"
	"github.com/trezcool/aimforms/services/dataset"
	"github.com/trezcool/aimforms/services/logger"
	"github.com/trezcool/aimforms/storage/database"
	"github.com/trezcool/aimforms/storage/database/sqlx"
)

var logger *logsvc.RollbarLogger

func main() {
	os.Exit(run())
}

func run() int {
	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger("admin", conf)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// set up DB
	if conf.Database.Engine == "postgres" {
		errAndDie(database.CreateIfNotExist(ctx, conf))
	}
	db, err := database.Open(ctx, conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		db:     db,
		conf:   conf,
		seeder: location.NewService(sqlxrepos.NewLocationRepository(db), dataset.NewSource(conf), logger),
		out:    os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		return 1
	}
	return 0
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal("admin setup failed", err)
	}
}
