package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/config"
	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-service/internal/runner"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

const appVersion = "dev"

const usage = `usage:
  schedule range [-preseason] [-unfinished] FROM TO
  schedule games ID...

Dates are YYYY-MM-DD; game ids are 10-digit numbers. Records are written to
stdout as JSON lines.`

var errUsage = errors.New("invalid arguments")

// newRunner is swapped in tests to inject a page fetcher.
var newRunner = func(cfg config.Config, opts runner.Options, stderr io.Writer) (*runner.Runner, error) {
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "nhl-schedule-service",
		Version: appVersion,
		Output:  stderr,
	})
	return runner.New(cfg, logger, opts)
}

func main() {
	if os.Getenv("SKIP_SCHEDULE_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg := config.Load()
	r, err := newRunner(cfg, runner.Options{}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "schedule: %v\n", err)
		return 1
	}
	r.Start()
	defer r.Close()

	switch args[0] {
	case "range":
		err = runRange(ctx, r, args[1:], stdout)
	case "games":
		err = runGames(ctx, r, args[1:], stdout)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if err != nil {
		fmt.Fprintf(stderr, "schedule: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}

func runRange(ctx context.Context, r *runner.Runner, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("range", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	preseason := fs.Bool("preseason", false, "include preseason games")
	unfinished := fs.Bool("unfinished", false, "include games that are not final")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: range needs FROM and TO", errUsage)
	}

	from, err := parseDate(fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := parseDate(fs.Arg(1))
	if err != nil {
		return err
	}
	return r.Range(ctx, from, to, *preseason, *unfinished, stdout)
}

func runGames(ctx context.Context, r *runner.Runner, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: games needs at least one id", errUsage)
	}
	return r.Games(ctx, args, stdout)
}

func parseDate(value string) (time.Time, error) {
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", errUsage, value)
	}
	return t, nil
}
