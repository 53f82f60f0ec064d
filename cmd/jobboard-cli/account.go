package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/service"
)

type loginFlags struct {
	role     string
	email    string
	password string
}

func parseLoginFlags(args []string) (loginFlags, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var f loginFlags
	fs.StringVar(&f.role, "role", "seeker", "Account role: seeker or employer")
	fs.StringVar(&f.email, "email", "", "Account email")
	fs.StringVar(&f.password, "password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if strings.TrimSpace(f.email) == "" {
		return f, fmt.Errorf("%w: -email is required", errUsage)
	}
	return f, nil
}

func runLogin(ctx *commandContext, args []string) error {
	f, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	role, ok := domainauth.ParseRole(f.role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", errUsage, f.role)
	}
	if f.password == "" {
		if f.password, err = readLine(ctx.Out, ctx.In, "Password: "); err != nil {
			return err
		}
	}

	out, err := ctx.authFlow("login").SubmitLogin(ctx.Ctx, service.LoginInput{
		Role:     role,
		Email:    f.email,
		Password: f.password,
	})
	if err != nil {
		return submitError(err)
	}
	if out.State != service.FlowSuccess {
		return errors.New(out.Message)
	}
	id, _ := out.Session.Identity()
	return writef(ctx.Out, "Signed in as %s (%s)\n", id.Label(), id.Role)
}

func parseRegisterFlags(args []string) (registration.Form, error) {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		role string
		f    registration.Form
	)
	fs.StringVar(&role, "role", string(domainauth.UIRoleJobseeker), "Account type: jobseeker or employer")
	fs.StringVar(&f.Name, "name", "", "Full name (job seekers)")
	fs.StringVar(&f.Email, "email", "", "Email (job seekers)")
	fs.StringVar(&f.CompanyName, "company-name", "", "Company name (employers)")
	fs.StringVar(&f.CompanyEmail, "company-email", "", "Company email (employers)")
	fs.StringVar(&f.CompanyWebsite, "company-website", "", "Company website (employers, optional)")
	fs.StringVar(&f.Password, "password", "", "Password")
	fs.StringVar(&f.ConfirmPassword, "confirm-password", "", "Password confirmation")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.Role = domainauth.ParseUIRole(role)
	return f, nil
}

func runRegister(ctx *commandContext, args []string) error {
	form, err := parseRegisterFlags(args)
	if err != nil {
		return err
	}

	out, err := ctx.authFlow("register").SubmitRegistration(ctx.Ctx, form)
	if err != nil {
		return submitError(err)
	}
	if len(out.Errors) > 0 {
		if werr := printFieldErrors(ctx, out.Errors); werr != nil {
			return werr
		}
		return fmt.Errorf("%w: registration form is invalid", errUsage)
	}
	if !out.Registered {
		return errors.New(out.Message)
	}
	return writeln(ctx.Out, "Registration successful. Sign in with jobboard-cli login.")
}

func printFieldErrors(ctx *commandContext, errs registration.Errors) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if err := writef(ctx.Out, "  %-16s %s\n", field, errs[field]); err != nil {
			return err
		}
	}
	return nil
}

func submitError(err error) error {
	if errors.Is(err, service.ErrSubmissionInFlight) {
		return errors.New("another submission from this profile is still in progress")
	}
	return err
}

func runLogout(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ctx.Sessions.Logout(ctx.Ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return writeln(ctx.Out, "Signed out")
}

func runWhoAmI(ctx *commandContext, _ []string) error {
	sess := ctx.Sessions.CurrentSession(ctx.Ctx)
	return domainauth.Match(sess,
		func() error { return writeln(ctx.Out, "Not signed in") },
		func(id domainauth.Identity) error {
			return writef(ctx.Out, "%s <%s> (%s)\n", id.Label(), id.Email, id.Role)
		},
	)
}

func runDeleteAccount(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("delete-account", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		answer, err := readLine(ctx.Out, ctx.In, "This permanently deletes your account. Type 'yes' to confirm: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			return writeln(ctx.Out, "Aborted")
		}
	}

	if err := ctx.Sessions.DeleteAccount(ctx.Ctx); err != nil {
		if errors.Is(err, service.ErrNotSignedIn) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return writeln(ctx.Out, "Account deleted")
}
