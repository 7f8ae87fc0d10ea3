package course

import (
	"github.com/volatiletech/null/v8"
)

const (
	Resource   = "courses"
	ReportPath = "/protected/course/report"

	OrganizerAIM      = "AIM"
	OrganizerExternal = "External"
)

// Grades are the eligibility bounds a course can declare.
var Grades = []string{"6th", "7th", "8th", "9th", "10th", "11th", "12th"}

// Snapshot is a course as returned by the API.
type Snapshot struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	Description          string      `json:"description"`
	OrganizedBy          string      `json:"organized_by"`
	ApplicationStartDate null.String `json:"application_start_date"`
	ApplicationEndDate   null.String `json:"application_end_date"`
	CourseStartDate      null.String `json:"course_start_date"`
	CourseEndDate        null.String `json:"course_end_date"`
	EligibilityFrom      string      `json:"eligibility_from"`
	EligibilityTo        string      `json:"eligibility_to"`
	ReferenceLink        string      `json:"reference_link"`
	Requirements         []string    `json:"requirements"`
	CourseTags           []string    `json:"course_tags"`
}

// Payload is the body sent to create or update a course.
type Payload struct {
	Name                 string   `json:"name" validate:"required,notblank"`
	Description          string   `json:"description" validate:"required,notblank"`
	OrganizedBy          string   `json:"organized_by" validate:"required,notblank"`
	ApplicationStartDate string   `json:"application_start_date" validate:"omitempty,datetime=2006-01-02"`
	ApplicationEndDate   string   `json:"application_end_date" validate:"omitempty,datetime=2006-01-02"`
	CourseStartDate      string   `json:"course_start_date" validate:"omitempty,datetime=2006-01-02"`
	CourseEndDate        string   `json:"course_end_date" validate:"omitempty,datetime=2006-01-02"`
	EligibilityFrom      string   `json:"eligibility_from" validate:"omitempty,grade"`
	EligibilityTo        string   `json:"eligibility_to" validate:"omitempty,grade"`
	ReferenceLink        string   `json:"reference_link" validate:"required,url"`
	Requirements         []string `json:"requirements"`
	CourseTags           []string `json:"course_tags"`
}
