package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/aimforms/core/location"
)

type locationRepository struct {
	db *DB
}

var _ location.Repository = (*locationRepository)(nil)

func NewLocationRepository(db *DB) location.Repository {
	return &locationRepository{db: db}
}

func (repo *locationRepository) CreateCountry(_ context.Context, name string) (location.Country, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, c := range repo.db.countries {
		if c.Name == name {
			return location.Country{}, location.ErrDuplicate
		}
	}
	c := location.Country{ID: repo.db.nextID(), Name: name}
	repo.db.countries[c.ID] = &c
	return c, nil
}

func (repo *locationRepository) GetCountryByName(_ context.Context, name string) (location.Country, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, c := range repo.db.countries {
		if c.Name == name {
			return *c, nil
		}
	}
	return location.Country{}, location.ErrNotFound
}

func (repo *locationRepository) GetOrCreateState(_ context.Context, countryID int, name string) (location.State, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.countries[countryID]; !ok {
		return location.State{}, location.ErrNotFound
	}
	for _, s := range repo.db.states {
		if s.CountryID == countryID && s.Name == name {
			return *s, nil
		}
	}
	s := location.State{ID: repo.db.nextID(), Name: name, CountryID: countryID}
	repo.db.states[s.ID] = &s
	return s, nil
}

func (repo *locationRepository) CreateCities(_ context.Context, stateID int, names ...string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.states[stateID]; !ok {
		return 0, location.ErrNotFound
	}
	existing := make(map[string]bool)
	for _, c := range repo.db.cities {
		if c.StateID == stateID {
			existing[c.Name] = true
		}
	}
	var n int
	for _, name := range names {
		if existing[name] {
			continue
		}
		c := location.City{ID: repo.db.nextID(), Name: name, StateID: stateID}
		repo.db.cities[c.ID] = &c
		existing[name] = true
		n++
	}
	return n, nil
}

func (repo *locationRepository) QueryCities(_ context.Context, stateID int) ([]location.City, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cities := make([]location.City, 0)
	for _, c := range repo.db.cities {
		if c.StateID == stateID {
			cities = append(cities, *c)
		}
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
	return cities, nil
}
