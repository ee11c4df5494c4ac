package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/sqlite"
)

// ErrCaseNotFound is returned when no case document exists for an identifier.
var ErrCaseNotFound = errors.NewSentinel("case not found")

// CaseRepository persists finished case documents. Saves are append-only: a
// document is never updated after it has been written.
type CaseRepository struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewCaseRepository(dbs *sqlite.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		readWrite: sqlx.NewDb(dbs.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:    logger.With("source", "CaseRepository"),
	}
}

// Save assigns the document a fresh identifier and creation time, freezes it as
// JSON and inserts it. The identifier is returned to the caller.
func (r *CaseRepository) Save(ctx context.Context, doc *models.CaseDocument) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	persisted := *doc
	persisted.ID = id
	persisted.CreatedAt = createdAt

	payload, err := json.Marshal(persisted)
	if err != nil {
		return "", errors.Wrap(err, "marshal case document")
	}

	stmt := `INSERT INTO cases (id, case_type, scenario, difficulty, document, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	if _, err = r.readWrite.ExecContext(ctx, stmt,
		id,
		persisted.Config.CaseType,
		persisted.Config.Scenario,
		persisted.Config.Difficulty,
		string(payload),
		createdAt.Format(time.RFC3339Nano),
	); err != nil {
		return "", errors.Wrap(err, "insert case document")
	}

	doc.CreatedAt = createdAt
	return id, nil
}

// Get loads a case document by identifier.
func (r *CaseRepository) Get(ctx context.Context, id string) (*models.CaseDocument, error) {
	var payload string
	err := r.readOnly.GetContext(ctx, &payload, `SELECT document FROM cases WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrCaseNotFound, "read case document", slog.String("id", id))
	}
	if err != nil {
		return nil, errors.Wrap(err, "read case document", slog.String("id", id))
	}

	var doc models.CaseDocument
	if err = json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal case document", slog.String("id", id))
	}
	return &doc, nil
}

// CaseSummary is a listing row for generated cases.
type CaseSummary struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	CaseType  string `db:"case_type"`
	CreatedAt string `db:"created_at"`
}

// List returns the most recently generated cases, newest first.
func (r *CaseRepository) List(ctx context.Context, limit int) ([]CaseSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	var summaries []CaseSummary
	stmt := `SELECT id, json_extract(document, '$.title') AS title, case_type, created_at
FROM cases
ORDER BY created_at DESC
LIMIT ?`
	if err := r.readOnly.SelectContext(ctx, &summaries, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "list case documents")
	}
	return summaries, nil
}
