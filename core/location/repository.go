package location

import "context"

type Repository interface {
	// CreateCountry returns ErrDuplicate when a country with the same name exists.
	CreateCountry(ctx context.Context, name string) (Country, error)
	GetCountryByName(ctx context.Context, name string) (Country, error)
	// GetOrCreateState returns the existing state of that name, creating it if needed.
	GetOrCreateState(ctx context.Context, countryID int, name string) (State, error)
	// CreateCities inserts the cities of a state, skipping duplicates.
	// It returns the number of rows actually inserted.
	CreateCities(ctx context.Context, stateID int, names ...string) (int, error)
	QueryCities(ctx context.Context, stateID int) ([]City, error)
}

// Dataset provides the reference data the database is seeded from.
type Dataset interface {
	Countries() []string
	// CountryName resolves an ISO 3166-1 alpha-2 code.
	CountryName(code string) (string, error)
	States(ctx context.Context, countryCode string) ([]SourceState, error)
	Cities(ctx context.Context, countryCode string) ([]SourceCity, error)
}
