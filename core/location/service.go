package location

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
)

type (
	StateReport struct {
		Name   string
		Cities int // inserted by this run
		Total  int // stored for the state once this run is done
		Err    error
	}

	SeedReport struct {
		Country          Country
		CountriesAdded   int
		CountriesSkipped int
		States           []StateReport
	}

	Service struct {
		repo   Repository
		data   Dataset
		logger core.Logger
	}
)

func NewService(repo Repository, data Dataset, logger core.Logger) *Service {
	return &Service{repo: repo, data: data, logger: logger}
}

// Seed inserts every country of the dataset, then the states of the country
// identified by `countryCode` along with their cities. Rows that already
// exist are skipped so seeding can be run again safely.
// A failing state is logged and reported, it does not stop the run.
func (svc *Service) Seed(ctx context.Context, countryCode, countryName string) (SeedReport, error) {
	var report SeedReport

	if countryName == "" {
		name, err := svc.data.CountryName(countryCode)
		if err != nil {
			return report, errors.Wrapf(err, "resolving country %q", countryCode)
		}
		countryName = name
	}

	for _, name := range svc.data.Countries() {
		if _, err := svc.repo.CreateCountry(ctx, name); err != nil {
			if errors.Is(err, ErrDuplicate) {
				report.CountriesSkipped++
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			svc.logger.Error(fmt.Sprintf("Failed to add country %s", name), err)
			continue
		}
		report.CountriesAdded++
	}
	svc.logger.Info(fmt.Sprintf("Added %d countries (%d already present)", report.CountriesAdded, report.CountriesSkipped))

	country, err := svc.repo.GetCountryByName(ctx, countryName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return report, errors.Errorf("%s not found in database", countryName)
		}
		return report, errors.Wrapf(err, "getting country %s", countryName)
	}
	report.Country = country

	states, err := svc.data.States(ctx, countryCode)
	if err != nil {
		return report, errors.Wrap(err, "fetching states")
	}
	cities, err := svc.data.Cities(ctx, countryCode)
	if err != nil {
		return report, errors.Wrap(err, "fetching cities")
	}
	citiesByState := make(map[string][]string, len(states))
	for _, city := range cities {
		citiesByState[city.StateCode] = append(citiesByState[city.StateCode], city.Name)
	}

	for _, src := range states {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		stReport := StateReport{Name: src.Name}

		state, err := svc.repo.GetOrCreateState(ctx, country.ID, src.Name)
		if err != nil {
			stReport.Err = err
			report.States = append(report.States, stReport)
			svc.logger.Error(fmt.Sprintf("Failed to add state %s", src.Name), err)
			continue
		}

		n, err := svc.repo.CreateCities(ctx, state.ID, citiesByState[src.StateCode]...)
		stReport.Cities = n
		if err != nil {
			stReport.Err = err
			svc.logger.Error(fmt.Sprintf("Failed to add cities for %s", src.Name), err)
			report.States = append(report.States, stReport)
			continue
		}
		svc.logger.Info(fmt.Sprintf("Added %d cities for %s", n, state.Name))

		stored, err := svc.repo.QueryCities(ctx, state.ID)
		if err != nil {
			stReport.Err = errors.Wrap(err, "counting cities")
			svc.logger.Error(fmt.Sprintf("Failed to count cities of %s", src.Name), err)
		} else {
			stReport.Total = len(stored)
		}
		report.States = append(report.States, stReport)
	}

	svc.logger.Info("All data seeded!")
	return report, nil
}
