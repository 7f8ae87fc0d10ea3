package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/trezcool/aimforms/core/form"
	"github.com/trezcool/aimforms/core/location"
	"github.com/trezcool/aimforms/core/school"
)

var (
	contactTitles = map[string]string{
		school.ContactInCharge:      "In-charge",
		school.ContactCorrespondent: "Correspondent",
		school.ContactPrincipal:     "Principal",
	}
	partTitles = map[string]string{
		school.PartFirstName: "first name",
		school.PartLastName:  "last name",
		school.PartEmail:     "email",
		school.PartWhatsapp:  "WhatsApp number",
	}
)

func (cli *commandLine) fillSchool(ctx context.Context, f *school.Form) error {
	if err := cli.ask(ctx, f.Fields, school.FieldName, "School name", ""); err != nil {
		return err
	}

	atl, err := cli.choose(ctx, "Is ATL school?", form.YesNoOptions(), string(f.IsATL))
	if err != nil {
		return err
	}
	f.IsATL = form.YesNo(atl)

	for _, fld := range []struct{ name, msg string }{
		{school.FieldAddressLine1, "Address line 1"},
		{school.FieldAddressLine2, "Address line 2"},
		{school.FieldPincode, "Pincode"},
	} {
		if err := cli.ask(ctx, f.Fields, fld.name, fld.msg, ""); err != nil {
			return err
		}
	}
	if err := cli.selectAddress(ctx, f); err != nil {
		return err
	}

	for _, contact := range school.Contacts {
		for _, part := range school.ContactParts {
			msg := fmt.Sprintf("%s %s", contactTitles[contact], partTitles[part])
			if err := cli.ask(ctx, f.Fields, school.ContactField(contact, part), msg, ""); err != nil {
				return err
			}
		}
	}

	options := f.Syllabus.Options()
	var checked []int
	for i, opt := range options {
		if f.Syllabus.IsChecked(opt) {
			checked = append(checked, i)
		}
	}
	picked, err := cli.driver.MultiSelect(ctx, SelectConfig{Message: "Syllabus", Options: options, Defaults: checked})
	if err != nil {
		return err
	}
	keep := make(map[int]bool, len(picked))
	for _, i := range picked {
		keep[i] = true
	}
	for i, opt := range options {
		f.Syllabus.Set(opt, keep[i])
	}

	if err := cli.ask(ctx, f.Fields, school.FieldWebsiteURL, "Website URL", ""); err != nil {
		return err
	}
	paid, err := cli.choose(ctx, "Paid subscription?", form.YesNoOptions(), string(f.PaidSubscription))
	if err != nil {
		return err
	}
	f.PaidSubscription = form.YesNo(paid)

	return cli.editList(ctx, "Social links", "Social link", f.SocialLinks)
}

// selectAddress walks the country > state > city chain. A level without
// options ends the walk; its fetch error is shown.
func (cli *commandLine) selectAddress(ctx context.Context, f *school.Form) error {
	selectors := []func(context.Context, string) error{f.SelectCountry, f.SelectState, f.SelectCity}

	for lvl := location.LevelCountry; lvl <= location.LevelCity; lvl++ {
		opts := f.Address.Options(lvl)
		if len(opts) == 0 {
			cli.printErr(f.Err())
			fmt.Fprintf(cli.out, "No %s to choose from.\n", f.Address.Levels()[lvl].Name)
			return nil
		}

		labels := make([]string, len(opts))
		current := -1
		for i, opt := range opts {
			labels[i] = opt.Label
			if opt.ID == f.Address.Selected(lvl) {
				current = i
			}
		}
		name := f.Address.Levels()[lvl].Name
		idx, err := cli.driver.Select(ctx, SelectConfig{
			Message:      strings.ToUpper(name[:1]) + name[1:],
			Options:      labels,
			DefaultIndex: current,
			PageSize:     15,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(opts) {
			return nil
		}
		if opts[idx].ID == f.Address.Selected(lvl) {
			continue
		}
		if err := selectors[lvl](ctx, opts[idx].ID); err != nil {
			cli.printErr(f.Err())
			return nil
		}
	}
	return nil
}
