package location

import (
	"context"

	"github.com/trezcool/aimforms/core/form"
)

// Levels of the address chain.
const (
	LevelCountry = iota
	LevelState
	LevelCity
)

// OptionsAPI lists the selectable locations.
type OptionsAPI interface {
	ListCountries(ctx context.Context) ([]form.Option, error)
	ListStates(ctx context.Context, countryID string) ([]form.Option, error)
	ListCities(ctx context.Context, stateID string) ([]form.Option, error)
}

// NewChain returns the country > state > city selection chain backed by `api`.
func NewChain(api OptionsAPI) *form.Chain {
	return form.NewChain(func(ctx context.Context, level int, parentID string) ([]form.Option, error) {
		switch level {
		case LevelCountry:
			return api.ListCountries(ctx)
		case LevelState:
			return api.ListStates(ctx, parentID)
		default:
			return api.ListCities(ctx, parentID)
		}
	}, "country", "state", "city")
}
