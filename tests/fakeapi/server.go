// Package fakeapi serves an in-memory version of the forms REST API for tests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type (
	Options struct {
		EnableReqLogs bool
	}

	// Submission is a create/update request received by the server.
	Submission struct {
		Method   string
		Resource string
		ID       string
		Body     json.RawMessage
	}

	country struct {
		ID   int    `json:"id"`
		Name string `json:"country_name"`
	}

	state struct {
		ID        int    `json:"id"`
		Name      string `json:"state_name"`
		CountryID int    `json:"countryId"`
	}

	city struct {
		ID      int    `json:"id"`
		Name    string `json:"city_name"`
		StateID int    `json:"stateId"`
	}

	override struct {
		code int
		body string
	}

	Server struct {
		*httptest.Server

		app *echo.Echo

		mu          sync.Mutex
		countries   []country
		states      []state
		cities      []city
		records     map[string]map[string]json.RawMessage
		submissions []Submission
		requests    []string
		overrides   map[string]override
		pkCount     int
	}
)

// New starts a server that is closed when the test ends.
func New(t *testing.T, opts ...Options) *Server {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	s := &Server{
		app:       echo.New(),
		records:   make(map[string]map[string]json.RawMessage),
		overrides: make(map[string]override),
		pkCount:   1000,
	}
	s.setup(opt)
	s.Server = httptest.NewServer(s.app)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) setup(opt Options) {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if opt.EnableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	s.app.Use(s.record)

	s.app.HTTPErrorHandler = appHTTPErrorHandler

	api := s.app.Group("/api")
	api.GET("/countries", s.listCountries)
	api.GET("/states", s.listStates)
	api.GET("/cities", s.listCities)
	api.GET("/:resource/:id", s.getRecord)
	api.POST("/:resource", s.createRecord)
	api.PUT("/:resource/:id", s.updateRecord)
}

// record logs the request URI and short-circuits requests with a canned response.
func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		s.mu.Lock()
		s.requests = append(s.requests, req.Method+" "+req.URL.RequestURI())
		ovr, ok := s.overrides[req.Method+" "+req.URL.Path]
		s.mu.Unlock()

		if ok {
			return ctx.Blob(ovr.code, echo.MIMEApplicationJSON, []byte(ovr.body))
		}
		return next(ctx)
	}
}

// Respond makes every `method` request on `path` answer `code` with the raw `body`.
func (s *Server) Respond(method, path string, code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{code: code, body: body}
}

// Fail makes every `method` request on `path` fail with `code` and the optional `message`.
func (s *Server) Fail(method, path string, code int, message string) {
	body := `{}`
	if message != "" {
		data, _ := json.Marshal(echo.Map{"message": message})
		body = string(data)
	}
	s.Respond(method, path, code, body)
}

// Reset removes every canned response.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]override)
}

func (s *Server) AddCountry(id int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = append(s.countries, country{ID: id, Name: name})
}

func (s *Server) AddState(countryID, id int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state{ID: id, Name: name, CountryID: countryID})
}

func (s *Server) AddCity(stateID, id int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = append(s.cities, city{ID: id, Name: name, StateID: stateID})
}

// PutRecord stores `v` as the JSON record `resource/id`.
func (s *Server) PutRecord(t *testing.T, resource, id string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("PutRecord() failed: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[resource] == nil {
		s.records[resource] = make(map[string]json.RawMessage)
	}
	s.records[resource][id] = data
}

func (s *Server) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.submissions...)
}

// Requests returns "METHOD /uri?query" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) listCountries(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ctx.JSON(http.StatusOK, append([]country{}, s.countries...))
}

func (s *Server) listStates(ctx echo.Context) error {
	countryID, err := strconv.Atoi(ctx.QueryParam("countryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid countryId")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	states := make([]state, 0)
	for _, st := range s.states {
		if st.CountryID == countryID {
			states = append(states, st)
		}
	}
	return ctx.JSON(http.StatusOK, states)
}

func (s *Server) listCities(ctx echo.Context) error {
	stateID, err := strconv.Atoi(ctx.QueryParam("stateId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid stateId")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cities := make([]city, 0)
	for _, c := range s.cities {
		if c.StateID == stateID {
			cities = append(cities, c)
		}
	}
	return ctx.JSON(http.StatusOK, cities)
}

func (s *Server) getRecord(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[ctx.Param("resource")][ctx.Param("id")]
	if !ok {
		return errHTTPNotFound
	}
	return ctx.JSONBlob(http.StatusOK, rec)
}

func (s *Server) createRecord(ctx echo.Context) error {
	body, err := readJSON(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pkCount++
	id := strconv.Itoa(s.pkCount)
	resource := ctx.Param("resource")
	s.submissions = append(s.submissions, Submission{Method: http.MethodPost, Resource: resource, ID: id, Body: body})
	if s.records[resource] == nil {
		s.records[resource] = make(map[string]json.RawMessage)
	}
	s.records[resource][id] = body
	return ctx.JSON(http.StatusCreated, echo.Map{"id": s.pkCount})
}

func (s *Server) updateRecord(ctx echo.Context) error {
	body, err := readJSON(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	resource, id := ctx.Param("resource"), ctx.Param("id")
	if _, ok := s.records[resource][id]; !ok {
		return errHTTPNotFound
	}
	s.submissions = append(s.submissions, Submission{Method: http.MethodPut, Resource: resource, ID: id, Body: body})
	return ctx.JSON(http.StatusOK, echo.Map{"id": id})
}

func readJSON(ctx echo.Context) (json.RawMessage, error) {
	if ctx.Request().Header.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
		return nil, echo.NewHTTPError(http.StatusUnsupportedMediaType, "expected a JSON body")
	}
	var body json.RawMessage
	if err := json.NewDecoder(ctx.Request().Body).Decode(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body").SetInternal(err)
	}
	return body, nil
}
