package catalogcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/repositories"
	"github.com/myrjola/casegen/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Catalog operations",
}

func init() {
	List.Flags().String("sqlite-url", "./casegen.sqlite", "SQLite URL")
	List.Flags().String("kind", "portrait", "record kind, portrait or weapon")
	List.Flags().String("scene", "", "scene tag to filter by")
	List.Flags().Int("limit", 20, "maximum number of records to list")
}

var List = &cobra.Command{
	Use:     "catalog",
	GroupID: "catalog",
	Short:   "List catalog records",
	Long:    `Lists imagery catalog records, optionally filtered by kind and scene tag`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		dbURL, err := cmd.Flags().GetString("sqlite-url")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid sqlite-url flag: %v\n", err)
			return
		}
		db, err := sqlite.NewDatabase(ctx, dbURL, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Database error: %v\n", err)
			return
		}
		defer func() { _ = db.Close() }()

		filter, err := filterFromFlags(cmd)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
			return
		}

		catalog := repositories.NewCatalogRepository(db, logger)
		records, err := catalog.Query(ctx, filter)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Query error: %v\n", err)
			return
		}
		for _, record := range records {
			fmt.Printf("%s\t%s\t%s\t%s\n", record.ID, record.Kind, record.OccupationEn, record.ImageURL)
		}
	},
}

func filterFromFlags(cmd *cobra.Command) (models.CatalogFilter, error) {
	var (
		filter models.CatalogFilter
		err    error
	)
	var kind string
	if kind, err = cmd.Flags().GetString("kind"); err != nil {
		return filter, err
	}
	filter.Kind = models.CatalogRecordKind(kind)
	if filter.SceneTag, err = cmd.Flags().GetString("scene"); err != nil {
		return filter, err
	}
	if filter.Count, err = cmd.Flags().GetInt("limit"); err != nil {
		return filter, err
	}
	return filter, nil
}
