package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/biter777/countries"
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/location"
)

// Source serves the static country list and the published states/cities feeds.
type Source struct {
	statesURL string
	citiesURL string
	client    *http.Client
}

var _ location.Dataset = (*Source)(nil)

func NewSource(conf *core.Config) *Source {
	return &Source{
		statesURL: conf.Seed.StatesURL,
		citiesURL: conf.Seed.CitiesURL,
		client:    &http.Client{Timeout: conf.Seed.Timeout},
	}
}

// Countries returns the english names of every ISO 3166-1 country.
func (src *Source) Countries() []string {
	all := countries.All()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.String())
	}
	return names
}

func (src *Source) CountryName(code string) (string, error) {
	for _, c := range countries.All() {
		if c.Alpha2() == code {
			return c.String(), nil
		}
	}
	return "", errors.Errorf("unknown country code %q", code)
}

func (src *Source) States(ctx context.Context, countryCode string) ([]location.SourceState, error) {
	states := make([]location.SourceState, 0)
	err := src.stream(ctx, src.statesURL, func(dec *json.Decoder) error {
		var s location.SourceState
		if err := dec.Decode(&s); err != nil {
			return err
		}
		if s.CountryCode == countryCode {
			states = append(states, s)
		}
		return nil
	})
	return states, err
}

func (src *Source) Cities(ctx context.Context, countryCode string) ([]location.SourceCity, error) {
	cities := make([]location.SourceCity, 0)
	err := src.stream(ctx, src.citiesURL, func(dec *json.Decoder) error {
		var c location.SourceCity
		if err := dec.Decode(&c); err != nil {
			return err
		}
		if c.CountryCode == countryCode {
			cities = append(cities, c)
		}
		return nil
	})
	return cities, err
}

// stream fetches a JSON array and hands each element to `decode` without
// holding the whole document in memory (cities.json is large).
func (src *Source) stream(ctx context.Context, url string, decode func(*json.Decoder) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := src.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		return errors.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(err, "decoding %s", url)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return errors.Errorf("decoding %s: expected an array, got %v", url, tok)
	}
	var n int
	for dec.More() {
		if err := decode(dec); err != nil {
			return errors.Wrapf(err, "decoding %s element %d", url, n)
		}
		n++
	}
	if _, err := dec.Token(); err != nil {
		return errors.Wrapf(err, "decoding %s", url)
	}
	return nil
}
