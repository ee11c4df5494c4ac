package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/casegen/internal/e2etest"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/logging"
	"github.com/myrjola/casegen/internal/models"
)

func TestCaseGeneration(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute) //nolint:mnd // generation runs several model calls
	defer cancel()

	if err := client.WaitForReady(ctx); err != nil {
		return errors.Wrap(err, "wait for server")
	}

	doc, err := client.GenerateCase(ctx, models.CaseConfig{
		CaseType:    "murder",
		Scenario:    "harbour warehouse at midnight",
		Difficulty:  "medium",
		EntityCount: 3,
	})
	if err != nil {
		return errors.Wrap(err, "generate case")
	}
	if doc.ID == "" {
		return errors.New("generated case has no identifier")
	}

	fetched, err := client.GetCase(ctx, doc.ID)
	if err != nil {
		return errors.Wrap(err, "fetch generated case")
	}
	if fetched.Title != doc.Title {
		return errors.New("fetched case does not match generated case",
			slog.String("generated", doc.Title),
			slog.String("fetched", fetched.Title))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "http://" + hostname
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	client := e2etest.NewClient(url)
	if err := TestCaseGeneration(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing case generation", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
