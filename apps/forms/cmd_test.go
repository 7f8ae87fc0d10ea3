package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/course"
	"github.com/trezcool/aimforms/core/school"
	"github.com/trezcool/aimforms/services/apiclient"
	"github.com/trezcool/aimforms/tests/fakeapi"
)

// scriptedDriver answers prompts by message, in order. Unscripted prompts
// take their default.
type scriptedDriver struct {
	answers map[string][]interface{}
	asked   []string
}

func (d *scriptedDriver) next(msg string) (interface{}, bool) {
	d.asked = append(d.asked, msg)
	queue := d.answers[msg]
	if len(queue) == 0 {
		return nil, false
	}
	d.answers[msg] = queue[1:]
	return queue[0], true
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if v, ok := d.next(cfg.Message); ok {
		return v.(string), nil
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if v, ok := d.next(cfg.Message); ok {
		return v.(bool), nil
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if v, ok := d.next(cfg.Message); ok {
		idx := indexOf(cfg.Options, v.(string))
		if idx < 0 {
			return 0, fmt.Errorf("%q: %q is not offered", cfg.Message, v)
		}
		return idx, nil
	}
	if cfg.DefaultIndex < 0 {
		return 0, nil
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if v, ok := d.next(cfg.Message); ok {
		return indicesOf(cfg.Options, v.([]string)), nil
	}
	return cfg.Defaults, nil
}

func setup(t *testing.T, answers map[string][]interface{}) (*commandLine, *fakeapi.Server, *bytes.Buffer) {
	srv := fakeapi.New(t)
	srv.AddCountry(5, "India")
	srv.AddState(5, 12, "Kerala")
	srv.AddState(5, 13, "Goa")
	srv.AddCity(12, 44, "Kochi")
	srv.AddCity(12, 45, "Thrissur")
	srv.AddCity(13, 50, "Panaji")

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	course.InitValidators(validate, translator)
	school.InitValidators(validate, translator)

	out := new(bytes.Buffer)
	return &commandLine{
		api:        client,
		validate:   validate,
		translator: translator,
		driver:     &scriptedDriver{answers: answers},
		out:        out,
	}, srv, out
}

func Test_commandLine_run_usage(t *testing.T) {
	tests := []struct {
		name string
		args []string // without program name
	}{
		{name: "no command"},
		{name: "no mode", args: []string{"course"}},
		{name: "unknown mode", args: []string{"course", "delete"}},
		{name: "unknown form", args: []string{"user", "new"}},
		{name: "edit without id", args: []string{"school", "edit"}},
		{name: "edit with blank id", args: []string{"course", "edit", "-id", " "}},
		{name: "help flag", args: []string{"course", "edit", "-h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, srv, _ := setup(t, nil)
			err := cli.run(context.Background(), append([]string{"forms"}, tt.args...))
			assert.Equal(t, errHelp, err)
			assert.Empty(t, srv.Requests())
		})
	}
}

func courseAnswers() map[string][]interface{} {
	return map[string][]interface{}{
		"Course name":    {"Robotics 101"},
		"Description":    {"Build a line follower"},
		"Organized by":   {course.OrganizerExternal},
		"Organizer name": {"ISRO"},
		"Eligible from":  {"6th"},
		"Reference link": {"https://aim.gov.in/robotics"},
		"Requirement 1":  {"Laptop"},
		"Requirements":   {actionAdd, actionDone},
		"Requirement 2":  {"Internet"},
	}
}

func TestCourse_new(t *testing.T) {
	cli, srv, out := setup(t, courseAnswers())

	require.NoError(t, cli.run(context.Background(), []string{"forms", "course", "new"}))
	assert.Contains(t, out.String(), "Saved. Continue at /protected/course/report")

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, http.MethodPost, subs[0].Method)
	var got course.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	want := course.Payload{
		Name:            "Robotics 101",
		Description:     "Build a line follower",
		OrganizedBy:     "ISRO",
		EligibilityFrom: "6th",
		ReferenceLink:   "https://aim.gov.in/robotics",
		Requirements:    []string{"Laptop", "Internet"},
		CourseTags:      []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestCourse_new_retry(t *testing.T) {
	answers := courseAnswers()
	answers["Reference link"] = []interface{}{"", "https://aim.gov.in/robotics"}
	answers["Edit the form and try again?"] = []interface{}{true}
	cli, srv, out := setup(t, answers)

	require.NoError(t, cli.run(context.Background(), []string{"forms", "course", "new"}))
	assert.Contains(t, out.String(), "Error: reference_link")
	assert.Contains(t, out.String(), "Saved.")

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	var got course.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	assert.Equal(t, "ISRO", got.OrganizedBy, "free text kept across attempts")
	assert.Equal(t, []string{"Laptop", "Internet"}, got.Requirements)
}

func TestCourse_new_serverError(t *testing.T) {
	answers := courseAnswers()
	answers["Edit the form and try again?"] = []interface{}{false}
	cli, srv, out := setup(t, answers)
	srv.Fail(http.MethodPost, "/api/courses", http.StatusConflict, "Course already exists")

	require.NoError(t, cli.run(context.Background(), []string{"forms", "course", "new"}))
	assert.Contains(t, out.String(), "Error: Course already exists")
	assert.Contains(t, out.String(), "Cancelled. Back to /protected/course/report")
	assert.Empty(t, srv.Submissions())
}

func TestCourse_edit_loadFailed(t *testing.T) {
	cli, srv, out := setup(t, nil)

	err := cli.run(context.Background(), []string{"forms", "course", "edit", "-id", "404"})
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Contains(t, out.String(), "Error: Failed to load course. Try again.")
	assert.Empty(t, srv.Submissions())
}

func TestCourse_edit(t *testing.T) {
	cli, srv, out := setup(t, map[string][]interface{}{
		"Tags": {actionRemove, actionDone},
		"Remove which tag?": {"2. stem"},
	})
	srv.PutRecord(t, course.Resource, "3", map[string]interface{}{
		"id":                     3,
		"name":                   "Robotics 101",
		"description":            "Build a line follower",
		"organized_by":           "AIM",
		"application_start_date": "2024-03-04T18:30:00.000Z",
		"reference_link":         "https://aim.gov.in/robotics",
		"requirements":           []string{"Laptop"},
		"course_tags":            []string{"robotics", "stem"},
	})

	require.NoError(t, cli.run(context.Background(), []string{"forms", "course", "edit", "-id", "3"}))
	assert.Contains(t, out.String(), "Saved.")

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, http.MethodPut, subs[0].Method)
	assert.Equal(t, "3", subs[0].ID)
	var got course.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	assert.Equal(t, "AIM", got.OrganizedBy)
	assert.Equal(t, "2024-03-04", got.ApplicationStartDate)
	assert.Equal(t, []string{"robotics"}, got.CourseTags)
}

func TestSchool_new(t *testing.T) {
	cli, srv, out := setup(t, map[string][]interface{}{
		"School name":     {"GHSS Panaji"},
		"Is ATL school?":  {"Yes"},
		"Address line 1":  {"Church Square"},
		"Pincode":         {"403001"},
		"Country":         {"India"},
		"State":           {"Goa"},
		"City":            {"Panaji"},
		"Principal email": {"head@ghss.in"},
		"Syllabus":        {[]string{"CBSE", "IB"}},
		"Social link 1":   {"https://x.com/ghss"},
	})

	require.NoError(t, cli.run(context.Background(), []string{"forms", "school", "new"}))
	assert.Contains(t, out.String(), "Saved. Continue at /protected/school/report")

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, http.MethodPost, subs[0].Method)
	var got school.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	want := school.Payload{
		Name:  "GHSS Panaji",
		IsATL: true,
		Address: school.AddressPayload{
			AddressLine1: "Church Square",
			Pincode:      "403001",
			CityID:       50,
		},
		Principal:   school.Contact{Email: "head@ghss.in"},
		Syllabus:    []string{"CBSE", "IB"},
		SocialLinks: []string{"https://x.com/ghss"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func storedSchool() map[string]interface{} {
	return map[string]interface{}{
		"id":     7,
		"name":   "GHSS Kochi",
		"is_ATL": true,
		"address": map[string]interface{}{
			"address_line1": "MG Road",
			"pincode":       "682001",
			"city": map[string]interface{}{
				"id":       44,
				"state_id": 12,
				"state":    map[string]interface{}{"id": 12, "country_id": 5},
			},
		},
		"syllabus":          []string{"State"},
		"paid_subscription": true,
		"social_links":      []string{},
	}
}

func TestSchool_edit(t *testing.T) {
	cli, srv, _ := setup(t, map[string][]interface{}{
		"School name": {"GHSS Thrissur"},
		"City":        {"Thrissur"},
	})
	srv.PutRecord(t, school.Resource, "7", storedSchool())

	require.NoError(t, cli.run(context.Background(), []string{"forms", "school", "edit", "-id", "7"}))

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, http.MethodPut, subs[0].Method)
	var got school.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	assert.Equal(t, "GHSS Thrissur", got.Name)
	assert.Equal(t, 45, got.Address.CityID)
	assert.Equal(t, "MG Road", got.Address.AddressLine1)
	assert.True(t, got.IsATL)
	assert.True(t, got.PaidSubscription)
	assert.Equal(t, []string{"State"}, got.Syllabus)
	assert.Equal(t, []string{}, got.SocialLinks)
}

func TestSchool_new_statesFailed(t *testing.T) {
	cli, srv, out := setup(t, map[string][]interface{}{
		"School name":                  {"GHSS Panaji"},
		"Address line 1":               {"Church Square"},
		"Pincode":                      {"403001"},
		"Country":                      {"India"},
		"Edit the form and try again?": {false},
	})
	srv.Fail(http.MethodGet, "/api/states", http.StatusInternalServerError, "")

	require.NoError(t, cli.run(context.Background(), []string{"forms", "school", "new"}))
	assert.Contains(t, out.String(), "Error: Error loading states. Please try again.")
	assert.Contains(t, out.String(), "Error: address.city_id")
	assert.Empty(t, srv.Submissions())
}

func TestSchool_edit_citiesFailed(t *testing.T) {
	cli, srv, out := setup(t, nil)
	srv.PutRecord(t, school.Resource, "7", storedSchool())
	srv.Fail(http.MethodGet, "/api/cities", http.StatusInternalServerError, "")

	require.NoError(t, cli.run(context.Background(), []string{"forms", "school", "edit", "-id", "7"}))
	assert.Contains(t, out.String(), "Error: Error loading cities. Please try again.")
	assert.Contains(t, out.String(), "No city to choose from.")
	assert.Contains(t, out.String(), "Saved. Continue at /protected/school/report")

	subs := srv.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, http.MethodPut, subs[0].Method)
	var got school.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &got))
	assert.Equal(t, "GHSS Kochi", got.Name)
	assert.Equal(t, 44, got.Address.CityID, "stored city kept")
}

func TestSchool_edit_recordFailed(t *testing.T) {
	cli, srv, out := setup(t, nil)

	err := cli.run(context.Background(), []string{"forms", "school", "edit", "-id", "404"})
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Contains(t, out.String(), "Error: Error loading school data. Please try again.")
	assert.Empty(t, srv.Submissions())
}
