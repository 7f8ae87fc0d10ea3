package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/location"
)

const pqUniqueViolation = "23505"

type locationRepository struct {
	db core.DB
}

var _ location.Repository = (*locationRepository)(nil)

func NewLocationRepository(db core.DB) location.Repository {
	return &locationRepository{db: db}
}

func (repo *locationRepository) CreateCountry(ctx context.Context, name string) (location.Country, error) {
	c := location.Country{Name: name}
	q := repo.db.Rebind(`INSERT INTO country (country_name) VALUES (?) ON CONFLICT DO NOTHING RETURNING id`)
	if err := repo.db.GetContext(ctx, &c.ID, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return location.Country{}, location.ErrDuplicate
		}
		return location.Country{}, errors.Wrap(err, "inserting country")
	}
	return c, nil
}

func (repo *locationRepository) GetCountryByName(ctx context.Context, name string) (location.Country, error) {
	var c location.Country
	q := repo.db.Rebind(`SELECT id, country_name FROM country WHERE country_name = ?`)
	if err := repo.db.GetContext(ctx, &c, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return location.Country{}, location.ErrNotFound
		}
		return location.Country{}, errors.Wrap(err, "selecting country")
	}
	return c, nil
}

func (repo *locationRepository) GetOrCreateState(ctx context.Context, countryID int, name string) (location.State, error) {
	s := location.State{Name: name, CountryID: countryID}
	q := repo.db.Rebind(`INSERT INTO state (state_name, country_id) VALUES (?, ?) ON CONFLICT DO NOTHING RETURNING id`)
	err := repo.db.GetContext(ctx, &s.ID, q, name, countryID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) && !isUniqueViolation(err) {
		return location.State{}, errors.Wrap(err, "inserting state")
	}

	q = repo.db.Rebind(`SELECT id, state_name, country_id FROM state WHERE country_id = ? AND state_name = ?`)
	if err = repo.db.GetContext(ctx, &s, q, countryID, name); err != nil {
		return location.State{}, errors.Wrap(err, "selecting state")
	}
	return s, nil
}

func (repo *locationRepository) CreateCities(ctx context.Context, stateID int, names ...string) (n int, err error) {
	if len(names) == 0 {
		return 0, nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO city (city_name, state_id) VALUES (?, ?) ON CONFLICT DO NOTHING`))
	if err != nil {
		return 0, errors.Wrap(err, "preparing city insert")
	}
	defer func() { _ = stmt.Close() }()

	for _, name := range names {
		res, err := stmt.ExecContext(ctx, name, stateID)
		if err != nil {
			return 0, errors.Wrapf(err, "inserting city %s", name)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(err, "counting inserted cities")
		}
		n += int(affected)
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing cities")
	}
	return n, nil
}

func (repo *locationRepository) QueryCities(ctx context.Context, stateID int) ([]location.City, error) {
	cities := make([]location.City, 0)
	q := repo.db.Rebind(`SELECT id, city_name, state_id FROM city WHERE state_id = ? ORDER BY id`)
	if err := repo.db.SelectContext(ctx, &cities, q, stateID); err != nil {
		return nil, errors.Wrap(err, "selecting cities")
	}
	return cities, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
