package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/bootstrap"
	"github.com/Kabuna254/Job-App/internal/domain/theme"
	"github.com/Kabuna254/Job-App/internal/ports"
	"github.com/Kabuna254/Job-App/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

// commandContext is everything a command needs. The profile store stands in
// for the browser: one profile is one client scope.
type commandContext struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Config   config.AppConfig
	Out      io.Writer
	In       io.Reader
	Sessions *service.SessionStore
	Theme    *theme.Applied
	Accounts ports.AccountAPI
	Listings *service.ListingService
	Guard    ports.SubmissionGuard
	Now      func() time.Time
}

// errUsage marks argument errors; main exits with status 2 for them.
var errUsage = errors.New("usage error")

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	// Commands talk to the user on stdout; only problems go to the log.
	logger = quietLogger(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx, closeProfile, err := openCommandContext(ctx, &cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "open profile", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal profile failures to shell scripts
	}

	runErr := cmd.run(cmdCtx, os.Args[2:])
	if cerr := closeProfile(); cerr != nil {
		logger.WarnContext(ctx, "close profile", "error", cerr)
	}
	if runErr != nil {
		if errors.Is(runErr, flag.ErrHelp) {
			return
		}
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		if errors.Is(runErr, errUsage) {
			os.Exit(2) //nolint:forbidigo // CLI must propagate usage errors to callers
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func quietLogger(cfg *config.AppConfig) *slog.Logger {
	level := slog.LevelWarn
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in as a job seeker or employer",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create a job seeker or employer account",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and forget the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in user",
			run:         runWhoAmI,
		},
		"delete-account": {
			name:        "delete-account",
			description: "Delete the signed-in account",
			run:         runDeleteAccount,
		},
		"jobs": {
			name:        "jobs",
			description: "List the latest job opportunities",
			run:         runJobs,
		},
		"theme": {
			name:        "theme",
			description: "Show or toggle the light/dark theme",
			run:         runTheme,
		},
		"nav": {
			name:        "nav",
			description: "Show the navigation menus for the current user",
			run:         runNav,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: jobboard-cli <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}
