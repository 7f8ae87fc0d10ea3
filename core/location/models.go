package location

import "github.com/pkg/errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Country struct {
	ID   int    `db:"id"`
	Name string `db:"country_name"`
}

type State struct {
	ID        int    `db:"id"`
	Name      string `db:"state_name"`
	CountryID int    `db:"country_id"`
}

type City struct {
	ID      int    `db:"id"`
	Name    string `db:"city_name"`
	StateID int    `db:"state_id"`
}

// SourceState is a state as published by the reference dataset.
type SourceState struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	StateCode   string `json:"state_code"`
}

// SourceCity is a city as published by the reference dataset.
type SourceCity struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	StateCode   string `json:"state_code"`
}
