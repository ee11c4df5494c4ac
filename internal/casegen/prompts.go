package casegen

import (
	"fmt"
	"strings"

	"github.com/myrjola/casegen/internal/models"
)

// systemPrompt is shared by every stage. The response-shape reminder matters more
// than the persona: the repair engine copes with truncation but not with prose.
const systemPrompt = `You are a mystery writer generating material for a detective game set in Helsinki.
Write vivid but concise English prose. Respond with a single JSON object only:
no markdown fences, no commentary before or after the JSON.`

func corePrompt(cfg models.CaseConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the framing of a new %s case with difficulty %q set in: %s.\n\n",
		cfg.CaseType, cfg.Difficulty, cfg.Scenario)
	b.WriteString(`Respond with this JSON shape:
{
  "title": "evocative case title",
  "description": "2-3 sentence public summary of the incident",
  "victim": {"name": "...", "age": 0, "description": "...", "causeOfDeath": "..."},
  "weapon": {"name": "...", "description": "..."}
}
Omit "weapon" only if the case has no physical weapon.`)
	return b.String()
}

func batchPrompt(cfg models.CaseConfig, ids []string, globalStart int, roles RoleAssignment,
	core coreResult, prior []models.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Case: %s - %s\nVictim: %s, %s\n\n",
		core.Title, core.Description, core.Victim.Name, core.Victim.CauseOfDeath)

	fmt.Fprintf(&b, "Generate exactly %d suspect dossiers for the following identifiers, in order:\n", len(ids))
	for i, id := range ids {
		index := globalStart + i
		notes := make([]string, 0, 2)
		if index == roles.CulpritIndex {
			notes = append(notes, "THIS ENTITY IS THE CULPRIT: set isCulprit to true")
		}
		if index == roles.DiscovererIndex {
			notes = append(notes, "this entity discovered the body")
		}
		if len(notes) == 0 {
			notes = append(notes, "not the culprit: set isCulprit to false")
		}
		fmt.Fprintf(&b, "- %s (%s)\n", id, strings.Join(notes, "; "))
	}

	if len(prior) > 0 {
		b.WriteString("\nAlready generated entities, keep cross-references consistent with them:\n")
		b.WriteString(entitySummary(prior))
	}

	b.WriteString(`
Respond with this JSON shape:
{
  "entities": [
    {"id": "use the identifiers listed above", "name": "...", "age": 0, "role": "occupation",
     "description": "...", "motive": "...", "alibi": "...", "isCulprit": false,
     "traits": ["..."], "gender": "male|female"}
  ]
}`)
	return b.String()
}

func hiddenContextPrompt(core coreResult, entities []models.Entity, culpritID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Case: %s - %s\nVictim: %s, %s\n\nAll entities:\n",
		core.Title, core.Description, core.Victim.Name, core.Victim.CauseOfDeath)
	for _, entity := range entities {
		fmt.Fprintf(&b, "- %s: %s, %d, %s. Motive: %s. Alibi: %s\n",
			entity.ID, entity.Name, entity.Age, entity.Role, entity.Motive, entity.Alibi)
	}
	fmt.Fprintf(&b, "\nThe culprit is %s. Write the hidden solution of the case.\n", culpritID)
	fmt.Fprintf(&b, `Respond with this JSON shape:
{
  "culpritId": %q,
  "justification": "how and why the culprit did it",
  "keyClues": ["clue pointing to the culprit", "..."],
  "culpritTraits": ["behavioural tell", "..."]
}`, culpritID)
	return b.String()
}

// entitySummary renders a compact one-line-per-entity digest so later batches stay
// consistent with earlier ones without re-sending full prior output.
func entitySummary(entities []models.Entity) string {
	var b strings.Builder
	for _, entity := range entities {
		fmt.Fprintf(&b, "- %s: %s, %d, %s - motive: %s\n",
			entity.ID, entity.Name, entity.Age, entity.Role, truncate(entity.Motive, 120))
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
