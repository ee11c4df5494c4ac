package casecmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/myrjola/casegen/internal/ai"
	"github.com/myrjola/casegen/internal/casegen"
	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/repositories"
	"github.com/myrjola/casegen/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "case",
	Title: "Case operations",
}

func init() {
	Generate.Flags().String("sqlite-url", "./casegen.sqlite", "SQLite URL")
	Generate.Flags().String("case-type", "murder", "type of crime the case revolves around")
	Generate.Flags().String("difficulty", "medium", "difficulty of the case")
	Generate.Flags().Int("entities", 4, "number of generated characters")
	List.Flags().String("sqlite-url", "./casegen.sqlite", "SQLite URL")
	List.Flags().Int("limit", 20, "maximum number of cases to list")
}

var Generate = &cobra.Command{
	Use:     "gen [scenario]",
	GroupID: "case",
	Short:   "Generate case",
	Long:    `Generates a complete case document for the given scenario and prints it as JSON`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		db, cases, catalog, err := connect(ctx, cmd, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Database error: %v\n", err)
			return
		}
		defer func() { _ = db.Close() }()

		cfg, err := configFromFlags(cmd, args)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
			return
		}

		completer := ai.NewClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
		pipeline := casegen.NewPipeline(completer, catalog, cases, casegen.NewAssigner(nil), casegen.DefaultBatchSize, logger)

		doc, err := pipeline.GenerateCase(ctx, cfg)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Case generation error: %v\n", err)
			return
		}

		if err := printJSON(os.Stdout, doc); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		}
	},
}

var List = &cobra.Command{
	Use:     "ls",
	GroupID: "case",
	Short:   "List cases",
	Long:    `Lists generated cases, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		db, cases, _, err := connect(ctx, cmd, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Database error: %v\n", err)
			return
		}
		defer func() { _ = db.Close() }()

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid limit flag: %v\n", err)
			return
		}

		summaries, err := cases.List(ctx, limit)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Listing error: %v\n", err)
			return
		}
		for _, summary := range summaries {
			fmt.Printf("%s\t%s\t%s\t%s\n", summary.ID, summary.CreatedAt, summary.CaseType, summary.Title)
		}
	},
}

func connect(
	ctx context.Context,
	cmd *cobra.Command,
	logger *slog.Logger,
) (*sqlite.Database, *repositories.CaseRepository, *repositories.CatalogRepository, error) {
	dbURL, err := cmd.Flags().GetString("sqlite-url")
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := sqlite.NewDatabase(ctx, dbURL, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, repositories.NewCaseRepository(db, logger), repositories.NewCatalogRepository(db, logger), nil
}

func configFromFlags(cmd *cobra.Command, args []string) (models.CaseConfig, error) {
	var cfg models.CaseConfig
	cfg.Scenario = strings.Join(args, " ")

	var err error
	if cfg.CaseType, err = cmd.Flags().GetString("case-type"); err != nil {
		return cfg, err
	}
	if cfg.Difficulty, err = cmd.Flags().GetString("difficulty"); err != nil {
		return cfg, err
	}
	if cfg.EntityCount, err = cmd.Flags().GetInt("entities"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
