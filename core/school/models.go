package school

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

const (
	Resource   = "schools"
	ReportPath = "/protected/school/report"
)

// Syllabi are the boards a school can follow.
var Syllabi = []string{"CBSE", "State", "ICSE", "IGCSE", "IB"}

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Whatsapp  string `json:"whatsapp"`
}

type (
	// Snapshot is a school as returned by the API.
	Snapshot struct {
		ID               int              `json:"id"`
		Name             string           `json:"name"`
		IsATL            bool             `json:"is_ATL"`
		Address          *AddressSnapshot `json:"address"`
		InCharge         *Contact         `json:"in_charge"`
		Correspondent    *Contact         `json:"correspondent"`
		Principal        *Contact         `json:"principal"`
		Syllabus         []string         `json:"syllabus"`
		WebsiteURL       null.String      `json:"website_url"`
		PaidSubscription bool             `json:"paid_subscription"`
		SocialLinks      []string         `json:"social_links"`
	}

	AddressSnapshot struct {
		AddressLine1 string        `json:"address_line1"`
		AddressLine2 null.String   `json:"address_line2"`
		Pincode      string        `json:"pincode"`
		City         *CitySnapshot `json:"city"`
	}

	CitySnapshot struct {
		ID       int            `json:"id"`
		CityName string         `json:"city_name"`
		StateID  int            `json:"state_id"`
		State    *StateSnapshot `json:"state"`
	}

	StateSnapshot struct {
		ID        int    `json:"id"`
		StateName string `json:"state_name"`
		CountryID int    `json:"country_id"`
	}
)

// LocationPath returns the country, state and city ids of the school address.
// Missing parts are empty.
func (s Snapshot) LocationPath() (countryID, stateID, cityID string) {
	if s.Address == nil || s.Address.City == nil {
		return "", "", ""
	}
	city := s.Address.City
	cityID = itoa(city.ID)
	stateID = itoa(city.StateID)
	if city.State != nil {
		countryID = itoa(city.State.CountryID)
		if stateID == "" {
			stateID = itoa(city.State.ID)
		}
	}
	return countryID, stateID, cityID
}

func itoa(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

type (
	// Payload is the body sent to create or update a school.
	Payload struct {
		Name             string         `json:"name" validate:"required,notblank"`
		IsATL            bool           `json:"is_ATL"`
		Address          AddressPayload `json:"address"`
		InCharge         Contact        `json:"in_charge"`
		Correspondent    Contact        `json:"correspondent"`
		Principal        Contact        `json:"principal"`
		Syllabus         []string       `json:"syllabus" validate:"dive,syllabus"`
		WebsiteURL       string         `json:"website_url" validate:"omitempty,url"`
		PaidSubscription bool           `json:"paid_subscription"`
		SocialLinks      []string       `json:"social_links"`
	}

	AddressPayload struct {
		AddressLine1 string `json:"address_line1" validate:"required,notblank"`
		AddressLine2 string `json:"address_line2"`
		Pincode      string `json:"pincode" validate:"required,notblank"`
		CityID       int    `json:"city_id" validate:"required"`
	}
)
