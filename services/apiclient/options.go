package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/trezcool/aimforms/core/form"
	"github.com/trezcool/aimforms/core/location"
)

var _ location.OptionsAPI = (*Client)(nil)

func (c *Client) ListCountries(ctx context.Context) ([]form.Option, error) {
	return c.listOptions(ctx, c.endpoint(nil, "countries"))
}

func (c *Client) ListStates(ctx context.Context, countryID string) ([]form.Option, error) {
	return c.listOptions(ctx, c.endpoint(url.Values{"countryId": {countryID}}, "states"))
}

func (c *Client) ListCities(ctx context.Context, stateID string) ([]form.Option, error) {
	return c.listOptions(ctx, c.endpoint(url.Values{"stateId": {stateID}}, "cities"))
}

func (c *Client) listOptions(ctx context.Context, endpoint string) ([]form.Option, error) {
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeOptions(data), nil
}

type rawOption struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	CountryName string          `json:"country_name"`
	StateName   string          `json:"state_name"`
	CityName    string          `json:"city_name"`
}

func (o rawOption) label() string {
	for _, l := range []string{o.Label, o.Name, o.CountryName, o.StateName, o.CityName} {
		if l != "" {
			return l
		}
	}
	return ""
}

// decodeOptions reads a list of {id, name}-shaped objects. Anything that is
// not such a list gives an empty result.
func decodeOptions(data []byte) []form.Option {
	opts := make([]form.Option, 0)
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return opts
	}
	var raws []rawOption
	if err := json.Unmarshal(data, &raws); err != nil {
		return opts
	}
	for _, raw := range raws {
		id := rawID(raw.ID)
		if id == "" {
			continue
		}
		opts = append(opts, form.Option{ID: id, Label: raw.label()})
	}
	return opts
}

// rawID accepts numeric and string ids.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
