package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bndr/gotabulate"

	"github.com/trezcool/aimforms/core/location"
)

func (cli *commandLine) seed(ctx context.Context, code, name string) error {
	if cli.conf.Seed.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cli.conf.Seed.Timeout)
		defer cancel()
	}

	report, err := cli.seeder.Seed(ctx, code, name)
	fmt.Fprintf(cli.out, "countries: %d added, %d already present\n", report.CountriesAdded, report.CountriesSkipped)
	if len(report.States) > 0 {
		fmt.Fprintln(cli.out, renderReport(report))
	}
	if err != nil {
		return err
	}

	var failed int
	for _, st := range report.States {
		if st.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d states of %s failed", failed, len(report.States), report.Country.Name)
	}
	return nil
}

func renderReport(report location.SeedReport) string {
	rows := make([][]string, 0, len(report.States))
	for _, st := range report.States {
		status := "ok"
		if st.Err != nil {
			status = st.Err.Error()
		}
		rows = append(rows, []string{st.Name, strconv.Itoa(st.Cities), strconv.Itoa(st.Total), status})
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"State", "Cities added", "Cities total", "Status"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return fmt.Sprintf("%s:\n%s", report.Country.Name, t.Render("grid"))
}
