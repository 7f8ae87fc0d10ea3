package course_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/course"
	"github.com/trezcool/aimforms/core/form"
	"github.com/trezcool/aimforms/services/apiclient"
	"github.com/trezcool/aimforms/tests/fakeapi"
)

func setup(t *testing.T, id string) (*course.Form, *fakeapi.Server) {
	srv := fakeapi.New(t)
	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	course.InitValidators(validate, translator)
	return course.NewForm(client, validate, translator, id), srv
}

func fillRequired(f *course.Form) {
	f.Fields.Set(course.FieldName, "Robotics 101")
	f.Fields.Set(course.FieldDescription, "Build a line follower")
	f.Fields.Set(course.FieldReferenceLink, "https://aim.gov.in/robotics")
	f.Organizer.SelectPreset(course.OrganizerAIM)
}

func submitted(t *testing.T, srv *fakeapi.Server) (fakeapi.Submission, course.Payload) {
	subs := srv.Submissions()
	require.Len(t, subs, 1)
	var p course.Payload
	require.NoError(t, json.Unmarshal(subs[0].Body, &p))
	return subs[0], p
}

func TestForm_Submit_create(t *testing.T) {
	f, srv := setup(t, "")
	fillRequired(f)
	f.Fields.Set(course.FieldApplicationStartDate, "2024-03-05")
	f.Fields.Set(course.FieldEligibilityFrom, "6th")
	f.Fields.Set(course.FieldEligibilityTo, "12th")
	require.NoError(t, f.Requirements.Edit(0, "Laptop"))
	f.Requirements.Append()
	f.Requirements.Append()
	require.NoError(t, f.Requirements.Edit(2, "Internet"))
	require.NoError(t, f.Tags.Edit(0, " "))

	next, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/protected/course/report", next)
	assert.Equal(t, "", f.Err())
	assert.False(t, f.Loading())

	sub, got := submitted(t, srv)
	assert.Equal(t, http.MethodPost, sub.Method)
	want := course.Payload{
		Name:                 "Robotics 101",
		Description:          "Build a line follower",
		OrganizedBy:          "AIM",
		ApplicationStartDate: "2024-03-05",
		EligibilityFrom:      "6th",
		EligibilityTo:        "12th",
		ReferenceLink:        "https://aim.gov.in/robotics",
		Requirements:         []string{"Laptop", "Internet"},
		CourseTags:           []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_Submit_externalOrganizer(t *testing.T) {
	f, srv := setup(t, "")
	fillRequired(f)
	f.Organizer.SelectPreset(course.OrganizerExternal)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Equal(t, "organized_by: this field is required", f.Err())
	assert.Empty(t, srv.Submissions())

	f.Organizer.SetFreeText("ISRO")
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	_, got := submitted(t, srv)
	assert.Equal(t, "ISRO", got.OrganizedBy)
}

func TestForm_Submit_validation(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr string
	}{
		{name: "blank name", field: course.FieldName, value: "   ", wantErr: "name: this field is required"},
		{name: "bad date", field: course.FieldCourseStartDate, value: "05/03/2024", wantErr: "course_start_date: must be a date (YYYY-MM-DD)"},
		{name: "bad grade", field: course.FieldEligibilityFrom, value: "5th", wantErr: "eligibility_from: must be a grade between 6th and 12th"},
		{name: "bad link", field: course.FieldReferenceLink, value: "aim", wantErr: "reference_link: must be a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, srv := setup(t, "")
			fillRequired(f)
			f.Fields.Set(tt.field, tt.value)

			_, err := f.Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, f.Err())
			assert.Empty(t, srv.Submissions())
		})
	}
}

func TestForm_Submit_failure(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		path    string
		message string
		wantErr string
	}{
		{name: "create with message", path: "/api/courses", message: "Course already exists", wantErr: "Course already exists"},
		{name: "create without message", path: "/api/courses", wantErr: "Failed to submit the form"},
		{name: "update with message", id: "3", path: "/api/courses/3", message: "Course is archived", wantErr: "Course is archived"},
		{name: "update without message", id: "3", path: "/api/courses/3", wantErr: "Update failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, srv := setup(t, tt.id)
			fillRequired(f)
			method := http.MethodPost
			if tt.id != "" {
				method = http.MethodPut
			}
			srv.Fail(method, tt.path, http.StatusBadRequest, tt.message)

			next, err := f.Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, "", next)
			assert.Equal(t, tt.wantErr, f.Err())
			assert.False(t, f.Loading())

			// retryable
			srv.Reset()
			srv.PutRecord(t, course.Resource, "3", course.Snapshot{ID: 3})
			_, err = f.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "", f.Err())
		})
	}
}

func TestForm_Load(t *testing.T) {
	f, srv := setup(t, "3")
	srv.PutRecord(t, course.Resource, "3", map[string]interface{}{
		"id":                     3,
		"name":                   "Space Camp",
		"description":            "Rockets",
		"organized_by":           "ISRO",
		"application_start_date": "2024-03-05T00:00:00.000Z",
		"application_end_date":   "2024-03-20T00:00:00.000Z",
		"course_start_date":      nil,
		"eligibility_from":       "8th",
		"eligibility_to":         "10th",
		"reference_link":         "https://isro.gov.in",
		"requirements":           []string{},
		"course_tags":            []string{"space", "stem"},
	})

	require.NoError(t, f.Load(context.Background()))
	assert.Equal(t, "Space Camp", f.Fields.Get(course.FieldName))
	assert.Equal(t, "2024-03-05", f.Fields.Get(course.FieldApplicationStartDate))
	assert.Equal(t, "2024-03-20", f.Fields.Get(course.FieldApplicationEndDate))
	assert.Equal(t, "", f.Fields.Get(course.FieldCourseStartDate))
	assert.Equal(t, "", f.Fields.Get(course.FieldCourseEndDate))
	assert.Equal(t, []string{""}, f.Requirements.Values())
	assert.Equal(t, []string{"space", "stem"}, f.Tags.Values())
	assert.Equal(t, course.OrganizerExternal, f.Organizer.Selection())
	assert.Equal(t, "ISRO", f.Organizer.FreeText())

	next, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, course.ReportPath, next)
	sub, got := submitted(t, srv)
	assert.Equal(t, http.MethodPut, sub.Method)
	assert.Equal(t, "3", sub.ID)
	assert.Equal(t, "ISRO", got.OrganizedBy)
	assert.Equal(t, "2024-03-05", got.ApplicationStartDate)
}

func TestForm_Load_failure(t *testing.T) {
	f, _ := setup(t, "404")
	f.Fields.Set(course.FieldName, "kept")

	err := f.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load course. Try again.", f.Err())
	assert.Equal(t, "kept", f.Fields.Get(course.FieldName))
	assert.False(t, f.Loading())
}

func TestForm_Load_new(t *testing.T) {
	f, srv := setup(t, "")
	require.NoError(t, f.Load(context.Background()))
	assert.Empty(t, srv.Requests())
	assert.Equal(t, course.ReportPath, f.Cancel())
}

type blockingAPI struct {
	course.API
	started chan struct{}
	release chan struct{}
}

func (a blockingAPI) CreateCourse(context.Context, course.Payload) error {
	close(a.started)
	<-a.release
	return nil
}

func TestForm_Submit_busy(t *testing.T) {
	api := blockingAPI{started: make(chan struct{}), release: make(chan struct{})}
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	course.InitValidators(validate, translator)
	f := course.NewForm(api, validate, translator, "")
	fillRequired(f)

	done := make(chan error)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-api.started
	assert.True(t, f.Loading())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrBusy)

	close(api.release)
	require.NoError(t, <-done)
	assert.False(t, f.Loading())
}
