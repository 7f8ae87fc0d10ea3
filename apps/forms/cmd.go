package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/aimforms/core/course"
	"github.com/trezcool/aimforms/core/form"
	"github.com/trezcool/aimforms/core/school"
)

var errHelp = errors.New("help provided")

type formsAPI interface {
	course.API
	school.API
}

type commandLine struct {
	api        formsAPI
	validate   *validator.Validate
	translator ut.Translator
	driver     PromptDriver
	out        io.Writer
}

// editor is the part of a form controller the prompt loop drives.
type editor interface {
	Load(ctx context.Context) error
	Submit(ctx context.Context) (string, error)
	Cancel() string
	Err() string
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  course new          - register a course")
	fmt.Fprintln(cli.out, "  course edit -id ID  - edit course ID")
	fmt.Fprintln(cli.out, "  school new          - register a school")
	fmt.Fprintln(cli.out, "  school edit -id ID  - edit school ID")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	var id string
	switch args[2] {
	case "new":
	case "edit":
		editCmd := flag.NewFlagSet(args[1]+" edit", flag.ContinueOnError)
		editCmd.SetOutput(cli.out)
		editID := editCmd.String("id", "", "The id of the record to edit.")
		if err := editCmd.Parse(args[3:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return errHelp
			}
			return err
		}
		if id = strings.TrimSpace(*editID); id == "" {
			editCmd.Usage()
			return errHelp
		}
	default:
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "course":
		f := course.NewForm(cli.api, cli.validate, cli.translator, id)
		return cli.edit(ctx, f, func(ctx context.Context) error { return cli.fillCourse(ctx, f) })
	case "school":
		f := school.NewForm(cli.api, cli.validate, cli.translator, id)
		return cli.edit(ctx, f, func(ctx context.Context) error { return cli.fillSchool(ctx, f) })
	default:
		cli.printUsage()
		return errHelp
	}
}

// edit loads the form, then prompts and submits until the submission succeeds
// or the user gives up. Options that failed to load leave the form usable;
// only a record that could not be loaded ends the session.
func (cli *commandLine) edit(ctx context.Context, f editor, fill func(ctx context.Context) error) error {
	if err := f.Load(ctx); err != nil {
		cli.printErr(f.Err())
		var fErr *form.FetchError
		if !errors.As(err, &fErr) {
			return err
		}
	}

	for {
		if err := fill(ctx); err != nil {
			return err
		}
		next, err := f.Submit(ctx)
		if err == nil {
			fmt.Fprintf(cli.out, "Saved. Continue at %s\n", next)
			return nil
		}
		cli.printErr(f.Err())

		retry, err := cli.driver.Confirm(ctx, ConfirmConfig{Message: "Edit the form and try again?"})
		if err != nil {
			return err
		}
		if !retry {
			fmt.Fprintf(cli.out, "Cancelled. Back to %s\n", f.Cancel())
			return nil
		}
	}
}

func (cli *commandLine) printErr(msg string) {
	if msg != "" {
		fmt.Fprintf(cli.out, "Error: %s\n", msg)
	}
}

// ask prompts for the field `name` of `vals`, offering its current value.
func (cli *commandLine) ask(ctx context.Context, vals form.Values, name, msg, help string) error {
	v, err := cli.driver.Input(ctx, InputConfig{Message: msg, Default: vals.Get(name), Help: help})
	if err != nil {
		return err
	}
	vals.Set(name, v)
	return nil
}

// choose prompts for one of `options` and returns it. `current` is preselected.
func (cli *commandLine) choose(ctx context.Context, msg string, options []string, current string) (string, error) {
	idx, err := cli.driver.Select(ctx, SelectConfig{Message: msg, Options: options, DefaultIndex: indexOf(options, current)})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return current, nil
	}
	return options[idx], nil
}

const (
	actionDone   = "Done"
	actionAdd    = "Add"
	actionRemove = "Remove"
)

// editList prompts for every entry of `l`, then lets the user add and remove
// entries until done.
func (cli *commandLine) editList(ctx context.Context, title, item string, l *form.List) error {
	for i, v := range l.Values() {
		v, err := cli.driver.Input(ctx, InputConfig{Message: item + " " + strconv.Itoa(i+1), Default: v})
		if err != nil {
			return err
		}
		if err = l.Edit(i, v); err != nil {
			return err
		}
	}

	for {
		actions := []string{actionDone, actionAdd}
		if l.CanRemove() {
			actions = append(actions, actionRemove)
		}
		action, err := cli.choose(ctx, title, actions, actionDone)
		if err != nil {
			return err
		}

		switch action {
		case actionAdd:
			l.Append()
			last := l.Len() - 1
			v, err := cli.driver.Input(ctx, InputConfig{Message: item + " " + strconv.Itoa(last+1)})
			if err != nil {
				return err
			}
			if err = l.Edit(last, v); err != nil {
				return err
			}
		case actionRemove:
			entries := make([]string, 0, l.Len())
			for i, v := range l.Values() {
				entries = append(entries, fmt.Sprintf("%d. %s", i+1, v))
			}
			idx, err := cli.driver.Select(ctx, SelectConfig{Message: "Remove which " + strings.ToLower(item) + "?", Options: entries, DefaultIndex: -1})
			if err != nil {
				return err
			}
			if idx >= 0 {
				if err = l.Remove(idx); err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}
