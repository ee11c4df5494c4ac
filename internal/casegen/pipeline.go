package casegen

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/logging"
	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/reconcile"
)

// Catalog is the read-only record store the reconciler draws imagery from.
type Catalog interface {
	Query(ctx context.Context, filter models.CatalogFilter) ([]models.CatalogRecord, error)
}

// CaseStore persists finished case documents. Save is append-only: a regenerated
// case becomes a new document with a new identifier.
type CaseStore interface {
	Save(ctx context.Context, doc *models.CaseDocument) (string, error)
}

// Entity count bounds for one case. The batch summaries keep prompts bounded, but
// beyond single digits the narrative stops being coherent anyway.
const (
	MinEntityCount = 2
	MaxEntityCount = 8
)

// ErrInvalidConfig means the requested case configuration is out of bounds.
var ErrInvalidConfig = errors.NewSentinel("invalid case configuration")

// Pipeline wires role assignment, stage orchestration, catalog reconciliation and
// persistence into one entry point. All collaborators are injected so the
// pipeline is testable with fakes and carries no process-wide state.
type Pipeline struct {
	assigner     *Assigner
	orchestrator *Orchestrator
	catalog      Catalog
	cases        CaseStore
	logger       *slog.Logger
}

// NewPipeline constructs a Pipeline.
func NewPipeline(
	completer Completer,
	catalog Catalog,
	cases CaseStore,
	assigner *Assigner,
	batchSize int,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		assigner:     assigner,
		orchestrator: NewOrchestrator(completer, batchSize, logger),
		catalog:      catalog,
		cases:        cases,
		logger:       logger.With("source", "Pipeline"),
	}
}

// GenerateCase runs the full pipeline and returns the persisted document.
//
// Any stage failure aborts the run before persistence; no partial document is
// ever saved. Missing imagery is the only degradation tolerated.
func (p *Pipeline) GenerateCase(ctx context.Context, cfg models.CaseConfig) (*models.CaseDocument, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	roles, err := p.assigner.Assign(cfg.EntityCount, true)
	if err != nil {
		return nil, errors.Wrap(err, "assign roles")
	}
	ctx = logging.WithAttrs(ctx, slog.Int("culpritIndex", roles.CulpritIndex))

	doc, err := p.orchestrator.Run(ctx, cfg, roles)
	if err != nil {
		return nil, errors.Wrap(err, "orchestrate stages")
	}

	if err = p.assignImagery(ctx, cfg, doc); err != nil {
		return nil, err
	}

	id, err := p.cases.Save(ctx, doc)
	if err != nil {
		return nil, errors.Wrap(err, "save case document")
	}
	doc.ID = id
	p.logger.LogAttrs(ctx, slog.LevelInfo, "case generated",
		slog.String("id", id), slog.String("title", doc.Title))
	return doc, nil
}

// assignImagery reconciles generated entities and the weapon against the catalog.
// Catalog call failures are terminal for the run; an empty result set degrades to
// missing imagery instead.
func (p *Pipeline) assignImagery(ctx context.Context, cfg models.CaseConfig, doc *models.CaseDocument) error {
	portraits, err := p.queryWithFallback(ctx, models.CatalogFilter{ //nolint:exhaustruct // style unused
		Kind:     models.CatalogRecordKindPortrait,
		Count:    cfg.EntityCount,
		SceneTag: sceneTag(cfg),
		Genders:  entityGenders(doc.Entities),
	})
	if err != nil {
		return errors.Wrap(err, "query portrait records")
	}
	reconcile.Entities(ctx, p.logger, doc.Entities, portraits)

	if doc.Weapon != nil {
		var weapons []models.CatalogRecord
		weapons, err = p.queryWithFallback(ctx, models.CatalogFilter{ //nolint:exhaustruct // only kind and count
			Kind:  models.CatalogRecordKindWeapon,
			Count: 3,
		})
		if err != nil {
			return errors.Wrap(err, "query weapon records")
		}
		reconcile.Weapon(ctx, p.logger, doc.Weapon, weapons)
	}
	return nil
}

// queryWithFallback retries a zero-result filtered query without filters. The
// fallback is a documented degrade path and is logged so matching-quality
// regressions stay observable.
func (p *Pipeline) queryWithFallback(ctx context.Context, filter models.CatalogFilter) ([]models.CatalogRecord, error) {
	records, err := p.catalog.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}
	if filter.SceneTag == "" && filter.Style == "" && len(filter.Genders) == 0 {
		return records, nil
	}
	p.logger.LogAttrs(ctx, slog.LevelWarn, "filtered catalog query empty, falling back to unfiltered",
		slog.String("kind", string(filter.Kind)),
		slog.String("sceneTag", filter.SceneTag))
	return p.catalog.Query(ctx, models.CatalogFilter{ //nolint:exhaustruct // unfiltered
		Kind:  filter.Kind,
		Count: filter.Count,
	})
}

func validateConfig(cfg models.CaseConfig) error {
	if cfg.EntityCount < MinEntityCount || cfg.EntityCount > MaxEntityCount {
		return errors.Wrap(ErrInvalidConfig, "entity count out of bounds",
			slog.Int("entityCount", cfg.EntityCount),
			slog.Int("min", MinEntityCount),
			slog.Int("max", MaxEntityCount))
	}
	if cfg.CaseType == "" || cfg.Scenario == "" {
		return errors.Wrap(ErrInvalidConfig, "case type and scenario are required")
	}
	return nil
}

// sceneTag derives a catalog scene tag from the scenario's first word. Scenario
// texts are free-form; a miss simply triggers the unfiltered fallback.
func sceneTag(cfg models.CaseConfig) string {
	fields := strings.Fields(strings.ToLower(cfg.Scenario))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func entityGenders(entities []models.Entity) []string {
	seen := make(map[string]struct{})
	genders := make([]string, 0, 2)
	for _, entity := range entities {
		gender := strings.ToLower(strings.TrimSpace(entity.Gender))
		if gender == "" {
			continue
		}
		if _, ok := seen[gender]; ok {
			continue
		}
		seen[gender] = struct{}{}
		genders = append(genders, gender)
	}
	return genders
}
