package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/location"
)

var errHelp = errors.New("help provided")

type seeder interface {
	Seed(ctx context.Context, countryCode, countryName string) (location.SeedReport, error)
}

type commandLine struct {
	db     *sqlx.DB
	conf   *core.Config
	seeder seeder
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]             - run a goose command (up, up-to, down, status, ...) against the embedded migrations")
	fmt.Fprintln(cli.out, "  seed [-country CODE] [-name NAME]  - load every country, then the states and cities of one country")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.out)
	seedCountry := seedCmd.String("country", cli.conf.Seed.CountryCode, "ISO 3166-1 alpha-2 code of the country whose states and cities are loaded.")
	seedName := seedCmd.String("name", cli.conf.Seed.CountryName, "The country's name in the database. Defaults to its name in the dataset.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: migrate COMMAND [ARGS]")
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return errHelp
			}
			return err
		}
		code := strings.ToUpper(strings.TrimSpace(*seedCountry))
		if code == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(ctx, code, strings.TrimSpace(*seedName))
	default:
		cli.printUsage()
		return errHelp
	}
}
