package casegen

import (
	"github.com/myrjola/casegen/internal/errors"
	"log/slog"
	"math/rand"
)

// RoleAssignment fixes which entity index carries each narrative role before any
// generation call is made. Indexes are 1-based. The model is told, not asked, who
// the culprit is, so the assignment is computed once per pipeline run and frozen.
type RoleAssignment struct {
	// CulpritIndex is drawn uniformly from [1, entityCount].
	CulpritIndex int
	// DiscovererIndex is the entity that discovered the body. Zero means the case
	// has no designated discoverer. It always differs from CulpritIndex.
	DiscovererIndex int
}

// Assigner draws role assignments from an injectable randomness source so that
// tests can seed it while production stays wall-clock seeded.
type Assigner struct {
	intn func(n int) int
}

// NewAssigner constructs an Assigner. A nil intn falls back to [math/rand.Intn].
func NewAssigner(intn func(n int) int) *Assigner {
	if intn == nil {
		intn = rand.Intn
	}
	return &Assigner{intn: intn}
}

// Assign draws the culprit index and, when requested, a body-discoverer index that
// differs from the culprit. Redraws are expected O(1) since entity counts are
// small single digits.
func (a *Assigner) Assign(entityCount int, withDiscoverer bool) (RoleAssignment, error) {
	if entityCount < 1 {
		return RoleAssignment{}, errors.New("entity count must be positive",
			slog.Int("entityCount", entityCount))
	}
	assignment := RoleAssignment{
		CulpritIndex:    a.intn(entityCount) + 1,
		DiscovererIndex: 0,
	}
	if withDiscoverer {
		if entityCount < 2 {
			return RoleAssignment{}, errors.New("discoverer role requires at least two entities",
				slog.Int("entityCount", entityCount))
		}
		discoverer := assignment.CulpritIndex
		for discoverer == assignment.CulpritIndex {
			discoverer = a.intn(entityCount) + 1
		}
		assignment.DiscovererIndex = discoverer
	}
	return assignment, nil
}
