// Package reconcile matches generated entities to the best unused catalog record
// and copies catalog-owned imagery onto them.
//
// The assignment is greedy, order-dependent and one-pass rather than a global
// optimum, trading match quality for O(n·m) simplicity and determinism given a
// fixed iteration order.
package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/casegen/internal/models"
)

// Scoring weights for candidate catalog records.
const (
	occupationExactScore     = 10
	occupationSubstringScore = 3
	genderMatchScore         = 2
	ageCloseScore            = 2
	ageNearScore             = 1
	ageCloseYears            = 1
	ageNearYears             = 3
)

// Entities assigns each entity the imagery URL of its best-matching unclaimed
// catalog record. A record is claimed by exactly one entity per run. When the
// catalog is exhausted, the remaining entities are left without imagery rather
// than forcing a duplicate.
func Entities(ctx context.Context, logger *slog.Logger, entities []models.Entity, records []models.CatalogRecord) {
	claimed := make([]bool, len(records))

	for i := range entities {
		entity := &entities[i]

		candidates := unclaimedIndexes(records, claimed)
		if len(candidates) == 0 {
			logger.LogAttrs(ctx, slog.LevelWarn, "catalog exhausted, leaving imagery absent",
				slog.String("id", entity.ID))
			continue
		}

		// Restrict to matching gender when the entity specifies one and the
		// restriction leaves something to choose from.
		if gender := normalize(entity.Gender); gender != "" {
			matching := make([]int, 0, len(candidates))
			for _, idx := range candidates {
				if normalize(records[idx].Gender) == gender {
					matching = append(matching, idx)
				}
			}
			if len(matching) > 0 {
				candidates = matching
			} else {
				logger.LogAttrs(ctx, slog.LevelDebug, "no unclaimed record matches gender, using full set",
					slog.String("id", entity.ID), slog.String("gender", entity.Gender))
			}
		}

		best := candidates[0]
		bestScore := -1
		for _, idx := range candidates {
			if s := score(*entity, records[idx]); s > bestScore {
				best = idx
				bestScore = s
			}
		}

		claimed[best] = true
		entity.ImageURL = records[best].ImageURL
	}
}

// Weapon picks imagery for the case weapon from weapon-kind catalog records,
// preferring a record whose tags mention a word of the weapon's name.
func Weapon(ctx context.Context, logger *slog.Logger, weapon *models.Weapon, records []models.CatalogRecord) {
	if weapon == nil {
		return
	}
	if len(records) == 0 {
		logger.LogAttrs(ctx, slog.LevelWarn, "no weapon records, leaving imagery absent",
			slog.String("weapon", weapon.Name))
		return
	}
	best := 0
	bestScore := -1
	for idx, record := range records {
		s := 0
		tags := normalize(record.Tags)
		for _, word := range strings.Fields(normalize(weapon.Name)) {
			if strings.Contains(tags, word) {
				s += occupationSubstringScore
			}
		}
		if s > bestScore {
			best = idx
			bestScore = s
		}
	}
	weapon.ImageURL = records[best].ImageURL
}

// score rates how well a catalog record fits a generated entity.
func score(entity models.Entity, record models.CatalogRecord) int {
	s := 0

	role := normalize(entity.Role)
	occupations := []string{normalize(record.OccupationEn), normalize(record.OccupationFi)}
	if role != "" {
		exact := false
		for _, occupation := range occupations {
			if occupation != "" && occupation == role {
				exact = true
			}
		}
		if exact {
			s += occupationExactScore
		} else {
			for _, occupation := range occupations {
				if occupation != "" && (strings.Contains(occupation, role) || strings.Contains(role, occupation)) {
					s += occupationSubstringScore
					break
				}
			}
		}
	}

	if gender := normalize(entity.Gender); gender != "" && gender == normalize(record.Gender) {
		s += genderMatchScore
	}

	if entity.Age > 0 && record.Age > 0 {
		diff := entity.Age - record.Age
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= ageCloseYears:
			s += ageCloseScore
		case diff <= ageNearYears:
			s += ageNearScore
		}
	}

	return s
}

func unclaimedIndexes(records []models.CatalogRecord, claimed []bool) []int {
	indexes := make([]int, 0, len(records))
	for idx := range records {
		if !claimed[idx] {
			indexes = append(indexes, idx)
		}
	}
	return indexes
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
