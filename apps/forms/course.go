package main

import (
	"context"

	"github.com/trezcool/aimforms/core/course"
)

const (
	dateHelp  = "YYYY-MM-DD, leave empty if not known yet"
	noneGrade = "(none)"
)

func (cli *commandLine) fillCourse(ctx context.Context, f *course.Form) error {
	if err := cli.ask(ctx, f.Fields, course.FieldName, "Course name", ""); err != nil {
		return err
	}
	if err := cli.ask(ctx, f.Fields, course.FieldDescription, "Description", ""); err != nil {
		return err
	}

	organizer, err := cli.choose(ctx, "Organized by", f.Organizer.Choices(), f.Organizer.Selection())
	if err != nil {
		return err
	}
	if organizer != f.Organizer.Selection() || !f.Organizer.IsFreeText() {
		f.Organizer.SelectPreset(organizer)
	}
	if f.Organizer.IsFreeText() {
		name, err := cli.driver.Input(ctx, InputConfig{Message: "Organizer name", Default: f.Organizer.FreeText()})
		if err != nil {
			return err
		}
		f.Organizer.SetFreeText(name)
	}

	for _, fld := range []struct{ name, msg string }{
		{course.FieldApplicationStartDate, "Application start date"},
		{course.FieldApplicationEndDate, "Application end date"},
		{course.FieldCourseStartDate, "Course start date"},
		{course.FieldCourseEndDate, "Course end date"},
	} {
		if err := cli.ask(ctx, f.Fields, fld.name, fld.msg, dateHelp); err != nil {
			return err
		}
	}

	grades := append([]string{noneGrade}, course.Grades...)
	for _, fld := range []struct{ name, msg string }{
		{course.FieldEligibilityFrom, "Eligible from"},
		{course.FieldEligibilityTo, "Eligible to"},
	} {
		current := f.Fields.Get(fld.name)
		if current == "" {
			current = noneGrade
		}
		grade, err := cli.choose(ctx, fld.msg, grades, current)
		if err != nil {
			return err
		}
		if grade == noneGrade {
			grade = ""
		}
		f.Fields.Set(fld.name, grade)
	}

	if err := cli.ask(ctx, f.Fields, course.FieldReferenceLink, "Reference link", ""); err != nil {
		return err
	}
	if err := cli.editList(ctx, "Requirements", "Requirement", f.Requirements); err != nil {
		return err
	}
	return cli.editList(ctx, "Tags", "Tag", f.Tags)
}
