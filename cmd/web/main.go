package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/casegen/internal/ai"
	"github.com/myrjola/casegen/internal/casegen"
	"github.com/myrjola/casegen/internal/envstruct"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/logging"
	"github.com/myrjola/casegen/internal/pprofserver"
	"github.com/myrjola/casegen/internal/repositories"
	"github.com/myrjola/casegen/internal/sqlite"
)

type config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo-1106"`
	BatchSize    int    `env:"CASEGEN_BATCH_SIZE" envDefault:"3"`
}

type application struct {
	logger   *slog.Logger
	pipeline *casegen.Pipeline
	cases    *repositories.CaseRepository
}

func main() {
	addr := flag.String("addr", "localhost:4000", "HTTP network address")
	pprofPort := flag.String("pprof-port", ":6060", "Port for pprof listening on localhost")
	dbURL := flag.String("sqlite-url", "./casegen.sqlite", "SQLite URL")
	flag.Parse()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{ //nolint:exhaustruct
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(*pprofPort, logger)

	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "no .env file loaded", errors.SlogError(err))
	}

	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to read configuration", errors.SlogError(err))
		os.Exit(1)
	}

	db, err := sqlite.NewDatabase(ctx, *dbURL, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to connect to database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")
	go db.StartDatabaseOptimizer(ctx)

	cases := repositories.NewCaseRepository(db, logger)
	catalog := repositories.NewCatalogRepository(db, logger)
	completer := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	pipeline := casegen.NewPipeline(completer, catalog, cases, casegen.NewAssigner(nil), cfg.BatchSize, logger)

	app := application{
		logger:   logger,
		pipeline: pipeline,
		cases:    cases,
	}

	if err = app.configureAndStartServer(ctx, *addr); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(err))
		os.Exit(1)
	}
}
