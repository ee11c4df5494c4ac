package repositories

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/sqlite"
)

const defaultCatalogQueryLimit = 20

// CatalogRepository reads the seeded, read-only catalog of portrait and weapon
// records. The generation pipeline only ever queries it; per-run "claimed"
// bookkeeping lives in the reconciler, not here.
type CatalogRepository struct {
	readOnly *sqlx.DB
	logger   *slog.Logger
}

func NewCatalogRepository(dbs *sqlite.Database, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		readOnly: sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:   logger.With("source", "CatalogRepository"),
	}
}

// Query returns up to filter.Count records matching the filter. Zero-valued
// filter fields are ignored. Callers must tolerate fewer results than requested,
// including none.
func (r *CatalogRepository) Query(ctx context.Context, filter models.CatalogFilter) ([]models.CatalogRecord, error) {
	stmt := `SELECT id, kind, image_url, gender, age, occupation_en, occupation_fi, tags, style
FROM catalog_records
WHERE kind = ?`
	args := []any{string(filter.Kind)}

	if filter.SceneTag != "" {
		stmt += ` AND (',' || tags || ',') LIKE ?`
		args = append(args, "%,"+filter.SceneTag+",%")
	}
	if filter.Style != "" {
		stmt += ` AND style = ?`
		args = append(args, filter.Style)
	}
	if len(filter.Genders) > 0 {
		inStmt, inArgs, err := sqlx.In(` AND gender IN (?)`, filter.Genders)
		if err != nil {
			return nil, errors.Wrap(err, "expand gender filter")
		}
		stmt += inStmt
		args = append(args, inArgs...)
	}

	limit := filter.Count
	if limit <= 0 {
		limit = defaultCatalogQueryLimit
	}
	stmt += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	var records []models.CatalogRecord
	if err := r.readOnly.SelectContext(ctx, &records, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "query catalog records",
			slog.String("kind", string(filter.Kind)))
	}
	return records, nil
}
