package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/location"
)

const (
	statesJSON = `[
		{"id": 4008, "name": "Kerala", "country_id": 101, "country_code": "IN", "state_code": "KL", "type": "state"},
		{"id": 4009, "name": "Bagmati", "country_id": 153, "country_code": "NP", "state_code": "P3", "type": "province"},
		{"id": 4010, "name": "Goa", "country_id": 101, "country_code": "IN", "state_code": "GA", "latitude": "15.29"}
	]`
	citiesJSON = `[
		{"id": 1, "name": "Kochi", "state_id": 4008, "state_code": "KL", "country_id": 101, "country_code": "IN"},
		{"id": 2, "name": "Kathmandu", "state_id": 4009, "state_code": "P3", "country_id": 153, "country_code": "NP"},
		{"id": 3, "name": "Panaji", "state_id": 4010, "state_code": "GA", "country_id": 101, "country_code": "IN"}
	]`
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSource(&core.Config{Seed: core.SeedConfig{
		StatesURL: srv.URL + "/states.json",
		CitiesURL: srv.URL + "/cities.json",
		Timeout:   5 * time.Second,
	}})
}

func feedHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/states.json":
		_, _ = w.Write([]byte(statesJSON))
	case "/cities.json":
		_, _ = w.Write([]byte(citiesJSON))
	default:
		http.NotFound(w, r)
	}
}

func TestSource_States(t *testing.T) {
	src := newTestSource(t, feedHandler)

	states, err := src.States(context.Background(), "IN")
	require.NoError(t, err)
	assert.Equal(t, []location.SourceState{
		{Name: "Kerala", CountryCode: "IN", StateCode: "KL"},
		{Name: "Goa", CountryCode: "IN", StateCode: "GA"},
	}, states)
}

func TestSource_Cities(t *testing.T) {
	src := newTestSource(t, feedHandler)

	cities, err := src.Cities(context.Background(), "IN")
	require.NoError(t, err)
	assert.Equal(t, []location.SourceCity{
		{Name: "Kochi", CountryCode: "IN", StateCode: "KL"},
		{Name: "Panaji", CountryCode: "IN", StateCode: "GA"},
	}, cities)

	none, err := src.Cities(context.Background(), "FR")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSource_errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "not found", handler: func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{name: "not an array", handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"error": "rate limited"}`)) }},
		{name: "truncated", handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[{"name": "Kerala"`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(t, tt.handler)
			_, err := src.States(context.Background(), "IN")
			assert.Error(t, err)
		})
	}
}

func TestSource_Countries(t *testing.T) {
	src := NewSource(&core.Config{})
	names := src.Countries()
	assert.Contains(t, names, "India")
	assert.Greater(t, len(names), 200)

	name, err := src.CountryName("IN")
	require.NoError(t, err)
	assert.Equal(t, "India", name)

	_, err = src.CountryName("ZZ")
	assert.Error(t, err)
}
