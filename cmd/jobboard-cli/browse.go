package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Kabuna254/Job-App/internal/domain/listing"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/http/ui/viewmodel"
	"github.com/Kabuna254/Job-App/internal/http/uiutil"
)

const descriptionExcerpt = 60

type jobsFlags struct {
	page    int
	asJSON  bool
	details bool
}

func parseJobsFlags(args []string) (jobsFlags, error) {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var f jobsFlags
	fs.IntVar(&f.page, "page", 1, "Page number")
	fs.BoolVar(&f.asJSON, "json", false, "Print the normalized listing as JSON")
	fs.BoolVar(&f.details, "details", false, "Include a description excerpt for each job")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}

func runJobs(ctx *commandContext, args []string) error {
	f, err := parseJobsFlags(args)
	if err != nil {
		return err
	}

	view := ctx.Listings.Page(ctx.Ctx, f.page)
	if f.asJSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return printListing(ctx, view, f.details)
}

func printListing(ctx *commandContext, view listing.View, details bool) error {
	if view.Error != "" {
		if err := writef(ctx.Out, "Failed to load jobs (%s). Showing demo content.\n\n", view.Error); err != nil {
			return err
		}
	}
	if len(view.Jobs) == 0 {
		return writeln(ctx.Out, "No jobs found.")
	}

	now := ctx.Now()
	tw := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tSALARY\tPOSTED"); err != nil {
		return err
	}
	for _, job := range view.Jobs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			job.Title, job.Company, job.Location, job.Salary, uiutil.PostedLabel(job.PostedAt, now)); err != nil {
			return err
		}
		if details && job.Description != "" {
			if _, err := fmt.Fprintf(tw, "  %s\t\t\t\t\n", uiutil.Excerpt(job.Description, descriptionExcerpt)); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if view.UseDemo {
		return writeln(ctx.Out, "\nThis is demo content. Register to see real job postings!")
	}
	if view.ShowPagination() {
		return writef(ctx.Out, "\nPage %d of %d\n", view.Page, view.TotalPages)
	}
	return nil
}

func runTheme(ctx *commandContext, args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	var (
		pref theme.Preference
		err  error
	)
	switch action {
	case "show":
		pref = ctx.Sessions.Theme(ctx.Ctx, ctx.prefersDark())
	case "toggle":
		pref, err = ctx.Sessions.ToggleTheme(ctx.Ctx, ctx.prefersDark())
		if err != nil {
			return fmt.Errorf("toggle theme: %w", err)
		}
	case "light", "dark":
		pref = theme.Preference(action)
		if err := ctx.Sessions.SetTheme(ctx.Ctx, pref); err != nil {
			return fmt.Errorf("set theme: %w", err)
		}
	default:
		return fmt.Errorf("%w: theme takes show, toggle, light, or dark", errUsage)
	}
	return writef(ctx.Out, "Theme: %s\n", pref)
}

type navFlags struct {
	mobile   bool
	dropdown string
}

func parseNavFlags(args []string) (navFlags, error) {
	fs := flag.NewFlagSet("nav", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var f navFlags
	fs.BoolVar(&f.mobile, "mobile", false, "Render the mobile menu open")
	fs.StringVar(&f.dropdown, "dropdown", "", "Expand the named dropdown (e.g. find-jobs)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}

func runNav(ctx *commandContext, args []string) error {
	f, err := parseNavFlags(args)
	if err != nil {
		return err
	}

	state := viewmodel.MenuState{}
	if f.mobile {
		state = state.ToggleMobile()
	}
	if f.dropdown != "" {
		state = state.ToggleDropdown(f.dropdown)
	}

	nav := viewmodel.BuildNav(ctx.Sessions.CurrentSession(ctx.Ctx))
	p := navPrinter{ctx: ctx, state: state}
	if state.MobileOpen {
		p.line("[mobile menu open]")
	}
	for _, m := range nav.Menus {
		p.menu(m)
	}
	for _, l := range nav.General {
		p.link("", l)
	}
	if nav.Account != nil {
		p.menu(*nav.Account)
	}
	for _, l := range nav.GuestLinks {
		p.link("", l)
	}
	return p.err
}

// navPrinter keeps the first write error so the walk above stays flat.
type navPrinter struct {
	ctx   *commandContext
	state viewmodel.MenuState
	err   error
}

func (p *navPrinter) line(s string) {
	if p.err == nil {
		p.err = writeln(p.ctx.Out, s)
	}
}

func (p *navPrinter) menu(m viewmodel.Menu) {
	if !p.state.IsOpen(m.Name) {
		p.line(fmt.Sprintf("%s ▸", m.Label))
		return
	}
	p.line(fmt.Sprintf("%s ▾", m.Label))
	for _, l := range m.Links {
		p.link("  ", l)
	}
}

func (p *navPrinter) link(indent string, l viewmodel.Link) {
	suffix := ""
	if l.Action {
		suffix = " (action)"
	}
	p.line(fmt.Sprintf("%s%s  %s%s", indent, l.Label, l.Href, suffix))
}
