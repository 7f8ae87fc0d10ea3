package main

import (
	"context"

	"github.com/pressly/goose/v3"

	"github.com/trezcool/aimforms/storage/database"
)

var gooseRunFunc = goose.RunContext // mockable

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if err := database.SetupMigrations(cli.db.DriverName()); err != nil {
		return err
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(ctx, args[0], cli.db.DB, database.MigrationsDir, arguments...)
}
