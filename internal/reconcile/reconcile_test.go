package reconcile

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, gender string, age int, occupation, tags string) models.CatalogRecord {
	return models.CatalogRecord{ //nolint:exhaustruct
		ID:           id,
		Kind:         models.CatalogRecordKindPortrait,
		ImageURL:     "https://example.com/" + id + ".webp",
		Gender:       gender,
		Age:          age,
		OccupationEn: occupation,
		Tags:         tags,
	}
}

func TestEntities(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(io.Discard)

	t.Run("prefers exact occupation over substring and age", func(t *testing.T) {
		t.Parallel()
		entities := []models.Entity{
			{ID: "entity-1", Role: "librarian", Gender: "female", Age: 50}, //nolint:exhaustruct
		}
		records := []models.CatalogRecord{
			record("close-age", "female", 50, "archivist", ""),
			record("exact-occupation", "female", 30, "librarian", ""),
		}

		Entities(context.Background(), logger, entities, records)

		assert.Equal(t, "https://example.com/exact-occupation.webp", entities[0].ImageURL)
	})

	t.Run("claims each record at most once", func(t *testing.T) {
		t.Parallel()
		entities := []models.Entity{
			{ID: "entity-1", Role: "cook", Gender: "male", Age: 40}, //nolint:exhaustruct
			{ID: "entity-2", Role: "cook", Gender: "male", Age: 40}, //nolint:exhaustruct
		}
		records := []models.CatalogRecord{
			record("cook-a", "male", 40, "cook", ""),
			record("cook-b", "male", 41, "cook", ""),
		}

		Entities(context.Background(), logger, entities, records)

		assert.NotEmpty(t, entities[0].ImageURL)
		assert.NotEmpty(t, entities[1].ImageURL)
		assert.NotEqual(t, entities[0].ImageURL, entities[1].ImageURL)
	})

	t.Run("falls back to other genders when none match", func(t *testing.T) {
		t.Parallel()
		entities := []models.Entity{
			{ID: "entity-1", Role: "gardener", Gender: "female", Age: 60}, //nolint:exhaustruct
		}
		records := []models.CatalogRecord{
			record("only-male", "male", 60, "gardener", ""),
		}

		Entities(context.Background(), logger, entities, records)

		assert.Equal(t, "https://example.com/only-male.webp", entities[0].ImageURL)
	})

	t.Run("leaves imagery absent when the catalog is exhausted", func(t *testing.T) {
		t.Parallel()
		entities := []models.Entity{
			{ID: "entity-1", Role: "cook", Gender: "male", Age: 40}, //nolint:exhaustruct
			{ID: "entity-2", Role: "cook", Gender: "male", Age: 40}, //nolint:exhaustruct
		}
		records := []models.CatalogRecord{
			record("cook-a", "male", 40, "cook", ""),
		}

		Entities(context.Background(), logger, entities, records)

		assert.NotEmpty(t, entities[0].ImageURL)
		assert.Empty(t, entities[1].ImageURL)
	})

	t.Run("is deterministic for a fixed input order", func(t *testing.T) {
		t.Parallel()
		build := func() ([]models.Entity, []models.CatalogRecord) {
			entities := []models.Entity{
				{ID: "entity-1", Role: "journalist", Gender: "female", Age: 33}, //nolint:exhaustruct
				{ID: "entity-2", Role: "surgeon", Gender: "male", Age: 55},      //nolint:exhaustruct
			}
			records := []models.CatalogRecord{
				record("surgeon", "male", 54, "surgeon", ""),
				record("journalist", "female", 30, "journalist", ""),
				record("spare", "female", 33, "clerk", ""),
			}
			return entities, records
		}

		first, firstRecords := build()
		Entities(context.Background(), logger, first, firstRecords)
		second, secondRecords := build()
		Entities(context.Background(), logger, second, secondRecords)

		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, first[i].ImageURL, second[i].ImageURL)
		}
	})
}

func TestWeapon(t *testing.T) {
	t.Parallel()
	logger := testhelpers.NewLogger(io.Discard)

	t.Run("prefers a record whose tags mention the weapon", func(t *testing.T) {
		t.Parallel()
		weapon := &models.Weapon{Name: "brass candlestick", Description: "heavy", ImageURL: ""}
		records := []models.CatalogRecord{
			record("weapon-rope", "", 0, "", "rope,strangulation"),
			record("weapon-candlestick", "", 0, "", "candlestick,brass,blunt"),
		}

		Weapon(context.Background(), logger, weapon, records)

		assert.Equal(t, "https://example.com/weapon-candlestick.webp", weapon.ImageURL)
	})

	t.Run("tolerates a nil weapon", func(t *testing.T) {
		t.Parallel()
		Weapon(context.Background(), logger, nil, []models.CatalogRecord{record("weapon-rope", "", 0, "", "rope")})
	})

	t.Run("leaves imagery absent without records", func(t *testing.T) {
		t.Parallel()
		weapon := &models.Weapon{Name: "dagger", Description: "curved", ImageURL: ""}

		Weapon(context.Background(), logger, weapon, nil)

		assert.Empty(t, weapon.ImageURL)
	})
}
