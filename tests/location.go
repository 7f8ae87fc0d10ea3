package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/aimforms/core/location"
)

// RunLocationRepositoryTests checks the behaviour every location.Repository shares.
func RunLocationRepositoryTests(t *testing.T, newRepo func(t *testing.T) location.Repository) {
	ctx := context.Background()

	t.Run("countries", func(t *testing.T) {
		repo := newRepo(t)
		india := CreateCountry(t, repo, "India")
		assert.NotZero(t, india.ID)

		_, err := repo.CreateCountry(ctx, "India")
		assert.ErrorIs(t, err, location.ErrDuplicate)

		got, err := repo.GetCountryByName(ctx, "India")
		require.NoError(t, err)
		assert.Equal(t, india, got)

		_, err = repo.GetCountryByName(ctx, "Atlantis")
		assert.ErrorIs(t, err, location.ErrNotFound)
	})

	t.Run("states", func(t *testing.T) {
		repo := newRepo(t)
		india := CreateCountry(t, repo, "India")
		nepal := CreateCountry(t, repo, "Nepal")

		kerala := CreateState(t, repo, india.ID, "Kerala")
		assert.Equal(t, location.State{ID: kerala.ID, Name: "Kerala", CountryID: india.ID}, kerala)

		again := CreateState(t, repo, india.ID, "Kerala")
		assert.Equal(t, kerala, again)

		other := CreateState(t, repo, nepal.ID, "Kerala")
		assert.NotEqual(t, kerala.ID, other.ID)
	})

	t.Run("cities", func(t *testing.T) {
		repo := newRepo(t)
		india := CreateCountry(t, repo, "India")
		kerala := CreateState(t, repo, india.ID, "Kerala")

		n, err := repo.CreateCities(ctx, kerala.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.CreateCities(ctx, kerala.ID, "Kochi", "Thrissur", "Kochi")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.CreateCities(ctx, kerala.ID, "Kochi", "Kollam")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		cities, err := repo.QueryCities(ctx, kerala.ID)
		require.NoError(t, err)
		names := make([]string, 0, len(cities))
		for _, c := range cities {
			assert.Equal(t, kerala.ID, c.StateID)
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"Kochi", "Thrissur", "Kollam"}, names)
	})
}
