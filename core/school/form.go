package school

import (
	"context"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
	"github.com/trezcool/aimforms/core/form"
	"github.com/trezcool/aimforms/core/location"
)

// Input names of the scalar fields. Contact fields are named by ContactField.
const (
	FieldName         = "name"
	FieldWebsiteURL   = "websiteURL"
	FieldAddressLine1 = "addressLine1"
	FieldAddressLine2 = "addressLine2"
	FieldPincode      = "pincode"

	ContactInCharge      = "inCharge"
	ContactCorrespondent = "correspondent"
	ContactPrincipal     = "principal"

	PartFirstName = "FirstName"
	PartLastName  = "LastName"
	PartEmail     = "Email"
	PartWhatsapp  = "Whatsapp"
)

// Contacts and ContactParts list the contact blocks and their inputs, in display order.
var (
	Contacts     = []string{ContactInCharge, ContactCorrespondent, ContactPrincipal}
	ContactParts = []string{PartFirstName, PartLastName, PartEmail, PartWhatsapp}
)

// ContactField returns the input name of a contact part, eg. "principalEmail".
func ContactField(contact, part string) string {
	return contact + part
}

const (
	msgLoadFailed      = "Error loading school data. Please try again."
	msgCountriesFailed = "Error loading countries. Please try again."
	msgStatesFailed    = "Error loading states. Please try again."
	msgCitiesFailed    = "Error loading cities. Please try again."
	msgCreateFailed    = "Failed to register school"
	msgUpdateFailed    = "Failed to update school data"
)

type API interface {
	location.OptionsAPI

	GetSchool(ctx context.Context, id string) (Snapshot, error)
	CreateSchool(ctx context.Context, p Payload) error
	UpdateSchool(ctx context.Context, id string, p Payload) error
}

// Form is the school registration / edition form.
type Form struct {
	Fields           form.Values
	Address          *form.Chain
	Syllabus         *form.Choices
	IsATL            form.YesNo
	PaidSubscription form.YesNo
	SocialLinks      *form.List

	api        API
	validate   *validator.Validate
	translator ut.Translator
	id         string
	status     form.Status
}

func NewForm(api API, validate *validator.Validate, translator ut.Translator, id string) *Form {
	return &Form{
		Fields:           form.Values{},
		Address:          location.NewChain(api),
		Syllabus:         form.NewChoices(Syllabi...),
		IsATL:            form.No,
		PaidSubscription: form.No,
		SocialLinks:      form.NewList(),
		api:              api,
		validate:         validate,
		translator:       translator,
		id:               id,
	}
}

func (f *Form) ID() string { return f.id }

func (f *Form) IsEdit() bool { return f.id != "" }

// Err returns the error shown to the user.
func (f *Form) Err() string { return f.status.Error() }

func (f *Form) Loading() bool { return f.status.Loading() }

// Load fetches the countries and, when editing, the school with the options
// of its state and city.
func (f *Form) Load(ctx context.Context) error {
	if err := f.status.Begin(); err != nil {
		return err
	}
	defer f.status.End()

	var firstErr error
	if err := f.Address.LoadRoot(ctx); err != nil {
		f.status.Fail(msgCountriesFailed)
		firstErr = err
	}
	if !f.IsEdit() {
		return firstErr
	}

	s, err := f.api.GetSchool(ctx, f.id)
	if err != nil {
		f.status.Fail(msgLoadFailed)
		return errors.Wrap(err, "loading school")
	}
	if err = f.LoadSnapshot(ctx, s); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// LoadSnapshot fills every field from a stored school and loads the state and
// city options of its address.
func (f *Form) LoadSnapshot(ctx context.Context, s Snapshot) error {
	f.Fields.Set(FieldName, s.Name)
	f.Fields.Set(FieldWebsiteURL, s.WebsiteURL.String)
	f.IsATL = form.YesNoOf(s.IsATL)
	f.PaidSubscription = form.YesNoOf(s.PaidSubscription)
	f.Syllabus.Load(s.Syllabus)
	f.SocialLinks.Reset(s.SocialLinks)

	var addr AddressSnapshot
	if s.Address != nil {
		addr = *s.Address
	}
	f.Fields.Set(FieldAddressLine1, addr.AddressLine1)
	f.Fields.Set(FieldAddressLine2, addr.AddressLine2.String)
	f.Fields.Set(FieldPincode, addr.Pincode)

	for contact, c := range map[string]*Contact{
		ContactInCharge:      s.InCharge,
		ContactCorrespondent: s.Correspondent,
		ContactPrincipal:     s.Principal,
	} {
		if c == nil {
			c = &Contact{}
		}
		f.Fields.Set(ContactField(contact, PartFirstName), c.FirstName)
		f.Fields.Set(ContactField(contact, PartLastName), c.LastName)
		f.Fields.Set(ContactField(contact, PartEmail), c.Email)
		f.Fields.Set(ContactField(contact, PartWhatsapp), c.Whatsapp)
	}

	countryID, stateID, cityID := s.LocationPath()
	if err := f.Address.LoadPath(ctx, countryID, stateID, cityID); err != nil {
		f.status.Fail(chainMessage(err))
		return errors.Wrap(err, "loading school address")
	}
	return nil
}

func (f *Form) SelectCountry(ctx context.Context, id string) error {
	return f.selectLocation(ctx, location.LevelCountry, id)
}

func (f *Form) SelectState(ctx context.Context, id string) error {
	return f.selectLocation(ctx, location.LevelState, id)
}

func (f *Form) SelectCity(ctx context.Context, id string) error {
	return f.selectLocation(ctx, location.LevelCity, id)
}

func (f *Form) selectLocation(ctx context.Context, level int, id string) error {
	if err := f.Address.Select(ctx, level, id); err != nil {
		if !errors.Is(err, form.ErrParentUnselected) {
			f.status.Fail(chainMessage(err))
		}
		return err
	}
	return nil
}

func (f *Form) contact(name string) Contact {
	return Contact{
		FirstName: core.CleanString(f.Fields.Get(ContactField(name, PartFirstName))),
		LastName:  core.CleanString(f.Fields.Get(ContactField(name, PartLastName))),
		Email:     core.CleanString(f.Fields.Get(ContactField(name, PartEmail))),
		Whatsapp:  core.CleanString(f.Fields.Get(ContactField(name, PartWhatsapp))),
	}
}

// Payload merges the form state into the submitted body.
// Blank social links are left out; an unselected city gives a zero city_id.
func (f *Form) Payload() Payload {
	cityID, _ := strconv.Atoi(f.Address.Selected(location.LevelCity))
	return Payload{
		Name:  core.CleanString(f.Fields.Get(FieldName)),
		IsATL: f.IsATL.Bool(),
		Address: AddressPayload{
			AddressLine1: core.CleanString(f.Fields.Get(FieldAddressLine1)),
			AddressLine2: core.CleanString(f.Fields.Get(FieldAddressLine2)),
			Pincode:      core.CleanString(f.Fields.Get(FieldPincode)),
			CityID:       cityID,
		},
		InCharge:         f.contact(ContactInCharge),
		Correspondent:    f.contact(ContactCorrespondent),
		Principal:        f.contact(ContactPrincipal),
		Syllabus:         f.Syllabus.Values(),
		WebsiteURL:       core.CleanString(f.Fields.Get(FieldWebsiteURL)),
		PaidSubscription: f.PaidSubscription.Bool(),
		SocialLinks:      f.SocialLinks.NonBlank(),
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
		err = f.api.UpdateSchool(ctx, f.id, p)
	} else {
		err = f.api.CreateSchool(ctx, p)
	}
	if err != nil {
		f.status.Fail(form.MessageOf(err, fallback))
		return "", errors.Wrap(err, "submitting school")
	}
	return ReportPath, nil
}

// Cancel returns the page to go back to.
func (f *Form) Cancel() string {
	return ReportPath
}

func chainMessage(err error) string {
	var fErr *form.FetchError
	if !errors.As(err, &fErr) {
		return msgLoadFailed
	}
	switch fErr.Level {
	case location.LevelCountry:
		return msgCountriesFailed
	case location.LevelState:
		return msgStatesFailed
	default:
		return msgCitiesFailed
	}
}
