package course

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/form"
)

// Input names of the scalar fields.
const (
	FieldName                 = "name"
	FieldDescription          = "description"
	FieldApplicationStartDate = "applicationStartDate"
	FieldApplicationEndDate   = "applicationEndDate"
	FieldCourseStartDate      = "courseStartDate"
	FieldCourseEndDate        = "courseEndDate"
	FieldEligibilityFrom      = "eligibilityFrom"
	FieldEligibilityTo        = "eligibilityTo"
	FieldReferenceLink        = "referenceLink"
)

const (
	msgLoadFailed   = "Failed to load course. Try again."
	msgCreateFailed = "Failed to submit the form"
	msgUpdateFailed = "Update failed"
)

type API interface {
	GetCourse(ctx context.Context, id string) (Snapshot, error)
	CreateCourse(ctx context.Context, p Payload) error
	UpdateCourse(ctx context.Context, id string, p Payload) error
}

// Form is the course registration / edition form.
// It creates a course when built without an id and updates it otherwise.
type Form struct {
	Fields       form.Values
	Requirements *form.List
	Tags         *form.List
	Organizer    *form.Toggle

	api        API
	validate   *validator.Validate
	translator ut.Translator
	id         string
	status     form.Status
}

func NewForm(api API, validate *validator.Validate, translator ut.Translator, id string) *Form {
	return &Form{
		Fields:       form.Values{},
		Requirements: form.NewList(),
		Tags:         form.NewList(),
		Organizer:    form.NewToggle(OrganizerExternal, OrganizerAIM),
		api:          api,
		validate:     validate,
		translator:   translator,
		id:           id,
	}
}

func (f *Form) ID() string { return f.id }

func (f *Form) IsEdit() bool { return f.id != "" }

// Err returns the error shown to the user.
func (f *Form) Err() string { return f.status.Error() }

func (f *Form) Loading() bool { return f.status.Loading() }

// Load fetches the course being edited and fills the form with it.
// It does nothing for a new course.
func (f *Form) Load(ctx context.Context) error {
	if !f.IsEdit() {
		return nil
	}
	if err := f.status.Begin(); err != nil {
		return err
	}
	defer f.status.End()

	s, err := f.api.GetCourse(ctx, f.id)
	if err != nil {
		f.status.Fail(msgLoadFailed)
		return errors.Wrap(err, "loading course")
	}
	f.LoadSnapshot(s)
	return nil
}

// LoadSnapshot fills every field from a stored course.
func (f *Form) LoadSnapshot(s Snapshot) {
	f.Fields.Set(FieldName, s.Name)
	f.Fields.Set(FieldDescription, s.Description)
	f.Fields.Set(FieldApplicationStartDate, form.FormatDate(s.ApplicationStartDate))
	f.Fields.Set(FieldApplicationEndDate, form.FormatDate(s.ApplicationEndDate))
	f.Fields.Set(FieldCourseStartDate, form.FormatDate(s.CourseStartDate))
	f.Fields.Set(FieldCourseEndDate, form.FormatDate(s.CourseEndDate))
	f.Fields.Set(FieldEligibilityFrom, s.EligibilityFrom)
	f.Fields.Set(FieldEligibilityTo, s.EligibilityTo)
	f.Fields.Set(FieldReferenceLink, s.ReferenceLink)
	f.Requirements.Reset(s.Requirements)
	f.Tags.Reset(s.CourseTags)
	f.Organizer.Load(s.OrganizedBy)
}

// Payload merges the form state into the submitted body.
// Blank requirements and tags are left out.
func (f *Form) Payload() Payload {
	return Payload{
		Name:                 core.CleanString(f.Fields.Get(FieldName)),
		Description:          core.CleanString(f.Fields.Get(FieldDescription)),
		OrganizedBy:          core.CleanString(f.Organizer.Value()),
		ApplicationStartDate: f.Fields.Get(FieldApplicationStartDate),
		ApplicationEndDate:   f.Fields.Get(FieldApplicationEndDate),
		CourseStartDate:      f.Fields.Get(FieldCourseStartDate),
		CourseEndDate:        f.Fields.Get(FieldCourseEndDate),
		EligibilityFrom:      f.Fields.Get(FieldEligibilityFrom),
		EligibilityTo:        f.Fields.Get(FieldEligibilityTo),
		ReferenceLink:        core.CleanString(f.Fields.Get(FieldReferenceLink)),
		Requirements:         f.Requirements.NonBlank(),
		CourseTags:           f.Tags.NonBlank(),
	}
}

// Submit validates and sends the form. On success it returns the page to go to next.
// form.ErrBusy is returned while a submission is in flight.
func (f *Form) Submit(ctx context.Context) (string, error) {
	if err := f.status.Begin(); err != nil {
		return "", err
	}
	defer f.status.End()

	p := f.Payload()
	if err := f.validate.Struct(p); err != nil {
		err = core.TranslateValidationErrors(err, f.translator)
		f.status.Fail(form.MessageOf(err, err.Error()))
		return "", err
	}

	var err error
	fallback := msgCreateFailed
	if f.IsEdit() {
		fallback = msgUpdateFailed
		err = f.api.UpdateCourse(ctx, f.id, p)
	} else {
		err = f.api.CreateCourse(ctx, p)
	}
	if err != nil {
		f.status.Fail(form.MessageOf(err, fallback))
		return "", errors.Wrap(err, "submitting course")
	}
	return ReportPath, nil
}

// Cancel returns the page to go back to.
func (f *Form) Cancel() string {
	return ReportPath
}
