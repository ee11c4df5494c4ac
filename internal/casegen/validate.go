package casegen

import (
	"github.com/myrjola/casegen/internal/errors"
	"log/slog"
)

var (
	// ErrShapeMismatch means a parsed stage result is missing an expected field.
	ErrShapeMismatch = errors.NewSentinel("stage result has unexpected shape")
	// ErrCountMismatch means a batch or entity list has the wrong cardinality.
	ErrCountMismatch = errors.NewSentinel("stage result has wrong cardinality")
)

func missingField(field string) error {
	return errors.Wrap(ErrShapeMismatch, "missing field", slog.String("field", field))
}

func validateCore(res coreResult) error {
	switch {
	case res.Title == "":
		return missingField("title")
	case res.Description == "":
		return missingField("description")
	case res.Victim.Name == "":
		return missingField("victim.name")
	case res.Victim.Description == "":
		return missingField("victim.description")
	}
	if res.Weapon != nil && res.Weapon.Name == "" {
		return missingField("weapon.name")
	}
	return nil
}

// validateBatch checks the batch against its identifier checklist and returns the
// entities reordered to checklist order. Both an under/over-sized batch and an
// identifier collision are terminal; there is no partial acceptance.
func validateBatch(res batchResult, wantIDs []string) ([]batchEntityResult, error) {
	if len(res.Entities) != len(wantIDs) {
		return nil, errors.Wrap(ErrCountMismatch, "batch size violated",
			slog.Int("want", len(wantIDs)),
			slog.Int("got", len(res.Entities)))
	}
	byID := make(map[string]batchEntityResult, len(res.Entities))
	for _, entity := range res.Entities {
		if _, ok := byID[entity.ID]; ok {
			return nil, errors.Wrap(ErrCountMismatch, "duplicate entity identifier",
				slog.String("id", entity.ID))
		}
		byID[entity.ID] = entity
	}
	ordered := make([]batchEntityResult, 0, len(wantIDs))
	for _, id := range wantIDs {
		entity, ok := byID[id]
		if !ok {
			return nil, errors.Wrap(ErrCountMismatch, "entity identifier missing from batch",
				slog.String("id", id))
		}
		if entity.Name == "" {
			return nil, missingField("entities[].name")
		}
		if entity.Description == "" {
			return nil, missingField("entities[].description")
		}
		ordered = append(ordered, entity)
	}
	return ordered, nil
}

func validateHiddenContext(res hiddenContextResult) error {
	switch {
	case res.Justification == "":
		return missingField("justification")
	case len(res.KeyClues) == 0:
		return missingField("keyClues")
	}
	return nil
}
