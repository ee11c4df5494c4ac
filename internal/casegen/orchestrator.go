package casegen

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/casegen/internal/errors"
	"github.com/myrjola/casegen/internal/jsonrepair"
	"github.com/myrjola/casegen/internal/models"
)

// Completer is the text generation dependency of the orchestrator. Responses are
// nominally a single JSON object but may be truncated, malformed or wrapped in
// prose; they always go through the repair engine.
type Completer interface {
	Complete(ctx context.Context, system string, prompt string, maxTokens int) (string, error)
}

// DefaultBatchSize is how many entity dossiers one generation call is asked for.
// A single call requesting all entities at once tends to exceed the model's
// practical output-length reliability.
const DefaultBatchSize = 3

// Per-stage output-size hints.
const (
	coreMaxTokens          = 1024
	batchMaxTokens         = 2048
	hiddenContextMaxTokens = 1024
)

// completionTimeout bounds one text generation call. A timeout is treated the
// same as any other call failure: fatal to the run, with no automatic retry.
const completionTimeout = 90 * time.Second

// Orchestrator sequences the generation stages of one case:
// Core → EntityBatches → HiddenContext → Done.
//
// Transitions are strictly sequential and retry-free. A stage failure halts the
// run at that stage; later stages never run.
type Orchestrator struct {
	completer Completer
	batchSize int
	logger    *slog.Logger
}

// NewOrchestrator constructs an Orchestrator. A non-positive batchSize falls back
// to DefaultBatchSize.
func NewOrchestrator(completer Completer, batchSize int, logger *slog.Logger) *Orchestrator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Orchestrator{
		completer: completer,
		batchSize: batchSize,
		logger:    logger.With("source", "Orchestrator"),
	}
}

// Run generates a case document for the given config and frozen role assignment.
// The returned document has no imagery and no ID yet; reconciliation and
// persistence are the facade's concern.
func (o *Orchestrator) Run(
	ctx context.Context,
	cfg models.CaseConfig,
	roles RoleAssignment,
) (*models.CaseDocument, error) {
	doc := models.CaseDocument{Config: cfg} //nolint:exhaustruct // filled stage by stage

	core, err := o.runCore(ctx, cfg, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "core stage")
	}
	if err = o.runEntityBatches(ctx, cfg, roles, core, &doc); err != nil {
		return nil, errors.Wrap(err, "entity batch stage")
	}
	if err = o.runHiddenContext(ctx, roles, core, &doc); err != nil {
		return nil, errors.Wrap(err, "hidden context stage")
	}
	return &doc, nil
}

func (o *Orchestrator) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()
	return o.completer.Complete(ctx, systemPrompt, prompt, maxTokens)
}

func (o *Orchestrator) runCore(
	ctx context.Context,
	cfg models.CaseConfig,
	doc *models.CaseDocument,
) (coreResult, error) {
	var res coreResult
	raw, err := o.complete(ctx, corePrompt(cfg), coreMaxTokens)
	if err != nil {
		return res, errors.Wrap(err, "call text generation")
	}
	if err = jsonrepair.Decode(raw, &res); err != nil {
		return res, err
	}
	if err = validateCore(res); err != nil {
		return res, err
	}

	doc.Title = res.Title
	doc.Description = res.Description
	doc.Victim = models.Victim{
		Name:         res.Victim.Name,
		Age:          res.Victim.Age,
		Description:  res.Victim.Description,
		CauseOfDeath: res.Victim.CauseOfDeath,
	}
	if res.Weapon != nil {
		doc.Weapon = &models.Weapon{
			Name:        res.Weapon.Name,
			Description: res.Weapon.Description,
			ImageURL:    "",
		}
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "core stage complete", slog.String("title", doc.Title))
	return res, nil
}

// runEntityBatches requests entities in fixed-size batches. Identifiers are
// precomputed in sequence before any call is made and handed to each batch as an
// explicit checklist; they are never derived from generation output.
func (o *Orchestrator) runEntityBatches(
	ctx context.Context,
	cfg models.CaseConfig,
	roles RoleAssignment,
	core coreResult,
	doc *models.CaseDocument,
) error {
	for start := 1; start <= cfg.EntityCount; start += o.batchSize {
		end := start + o.batchSize - 1
		if end > cfg.EntityCount {
			end = cfg.EntityCount
		}
		ids := make([]string, 0, end-start+1)
		for i := start; i <= end; i++ {
			ids = append(ids, models.EntityID(i))
		}

		prompt := batchPrompt(cfg, ids, start, roles, core, doc.Entities)
		raw, err := o.complete(ctx, prompt, batchMaxTokens)
		if err != nil {
			return errors.Wrap(err, "call text generation",
				slog.String("firstID", ids[0]))
		}
		var res batchResult
		if err = jsonrepair.Decode(raw, &res); err != nil {
			return err
		}
		ordered, err := validateBatch(res, ids)
		if err != nil {
			return err
		}

		for i, entity := range ordered {
			index := start + i
			// The assignment is authoritative: the model was told the culprit, so a
			// drifted flag is overridden rather than trusted.
			isCulprit := index == roles.CulpritIndex
			if entity.IsCulprit != isCulprit {
				o.logger.LogAttrs(ctx, slog.LevelWarn, "culprit flag drifted, overriding",
					slog.String("id", entity.ID))
			}
			doc.Entities = append(doc.Entities, models.Entity{
				ID:          entity.ID,
				Name:        entity.Name,
				Age:         entity.Age,
				Role:        entity.Role,
				Description: entity.Description,
				Motive:      entity.Motive,
				Alibi:       entity.Alibi,
				IsCulprit:   isCulprit,
				Traits:      entity.Traits,
				Gender:      entity.Gender,
				ImageURL:    "",
			})
		}
		o.logger.LogAttrs(ctx, slog.LevelDebug, "entity batch complete",
			slog.String("firstID", ids[0]), slog.String("lastID", ids[len(ids)-1]))
	}

	if len(doc.Entities) != cfg.EntityCount {
		return errors.Wrap(ErrCountMismatch, "entity list incomplete after batches",
			slog.Int("want", cfg.EntityCount),
			slog.Int("got", len(doc.Entities)))
	}
	return nil
}

func (o *Orchestrator) runHiddenContext(
	ctx context.Context,
	roles RoleAssignment,
	core coreResult,
	doc *models.CaseDocument,
) error {
	culpritID := models.EntityID(roles.CulpritIndex)
	raw, err := o.complete(ctx, hiddenContextPrompt(core, doc.Entities, culpritID), hiddenContextMaxTokens)
	if err != nil {
		return errors.Wrap(err, "call text generation")
	}
	var res hiddenContextResult
	if err = jsonrepair.Decode(raw, &res); err != nil {
		return err
	}
	if err = validateHiddenContext(res); err != nil {
		return err
	}
	// Re-assert the pre-selected culprit to guard against model drift.
	if res.CulpritID != culpritID {
		o.logger.LogAttrs(ctx, slog.LevelWarn, "culprit identifier drifted, overriding",
			slog.String("got", res.CulpritID), slog.String("want", culpritID))
	}
	doc.HiddenContext = models.HiddenContext{
		CulpritID:     culpritID,
		Justification: res.Justification,
		KeyClues:      res.KeyClues,
		CulpritTraits: res.CulpritTraits,
	}
	return nil
}
