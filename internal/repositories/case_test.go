package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/myrjola/casegen/internal/models"
	"github.com/myrjola/casegen/internal/repositories"
	"github.com/myrjola/casegen/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() models.CaseDocument {
	return models.CaseDocument{ //nolint:exhaustruct // ID and CreatedAt assigned on save
		Title:       "Death at the Docks",
		Description: "A shipping magnate lies dead in his own warehouse.",
		Victim: models.Victim{
			Name:         "Elias Kropp",
			Age:          52,
			Description:  "A magnate with enemies.",
			CauseOfDeath: "blunt trauma",
		},
		Weapon: &models.Weapon{
			Name:        "brass candlestick",
			Description: "Heavy and recently polished.",
			ImageURL:    "https://myrjola.twic.pics/casegen/weapon-candlestick.webp",
		},
		Entities: []models.Entity{
			{ //nolint:exhaustruct
				ID:          "entity-1",
				Name:        "Arvid Lehto",
				Age:         34,
				Role:        "dock worker",
				Description: "Nervous and in debt.",
				IsCulprit:   true,
				Gender:      "male",
			},
			{ //nolint:exhaustruct
				ID:          "entity-2",
				Name:        "Beatrice Holm",
				Age:         41,
				Role:        "harbourmaster",
				Description: "Cold and precise.",
				Gender:      "female",
			},
		},
		HiddenContext: models.HiddenContext{
			CulpritID:     "entity-1",
			Justification: "The debt ledger places him at the warehouse.",
			KeyClues:      []string{"torn ledger page"},
			CulpritTraits: []string{"nervous"},
		},
		Config: models.CaseConfig{
			CaseType:    "murder",
			Scenario:    "harbour warehouse at midnight",
			Difficulty:  "medium",
			EntityCount: 2,
		},
	}
}

func TestCaseRepository_SaveAndGet(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(dbs, logger)
	ctx := context.Background()

	doc := sampleDocument()
	id, err := repo.Save(ctx, &doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Victim, got.Victim)
	assert.Equal(t, doc.Entities, got.Entities)
	assert.Equal(t, doc.HiddenContext, got.HiddenContext)
	assert.Equal(t, doc.Config, got.Config)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCaseRepository_SaveAssignsDistinctIDs(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(dbs, logger)
	ctx := context.Background()

	first := sampleDocument()
	second := sampleDocument()

	firstID, err := repo.Save(ctx, &first)
	require.NoError(t, err)
	secondID, err := repo.Save(ctx, &second)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
}

func TestCaseRepository_GetUnknownID(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(dbs, logger)

	_, err := repo.Get(context.Background(), "no-such-case")

	assert.ErrorIs(t, err, repositories.ErrCaseNotFound)
}

func TestCaseRepository_List(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewCaseRepository(dbs, logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		doc := sampleDocument()
		_, err := repo.Save(ctx, &doc)
		require.NoError(t, err)
	}

	summaries, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	for _, summary := range summaries {
		assert.Equal(t, "Death at the Docks", summary.Title)
		assert.Equal(t, "murder", summary.CaseType)
	}
}
