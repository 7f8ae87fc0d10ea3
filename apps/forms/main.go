package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/course"
	"github.com/trezcool/aimforms/core/school"
	"github.com/trezcool/aimforms/services/apiclient"
	"github.com/trezcool/aimforms/services/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "forms must be run from an interactive terminal")
		return 1
	}

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger("forms", conf)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := apiclient.NewFromConfig(conf, logger)
	if err != nil {
		logger.Error("forms setup failed", err)
		return 1
	}

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	course.InitValidators(validate, translator)
	school.InitValidators(validate, translator)

	cli := commandLine{
		api:        client,
		validate:   validate,
		translator: translator,
		driver:     surveyDriver{},
		out:        os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp && err != errAborted {
			logger.Error("forms command failed", err)
		}
		return 1
	}
	return 0
}
