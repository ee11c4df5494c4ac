package casegen

// Per-stage result schemas. Each generation stage decodes into exactly one of
// these and is validated immediately after parsing so downstream code never
// handles an unvalidated shape.

type victimResult struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Description  string `json:"description"`
	CauseOfDeath string `json:"causeOfDeath"`
}

type weaponResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// coreResult is the shape of the first stage: the case framing.
type coreResult struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Victim      victimResult  `json:"victim"`
	Weapon      *weaponResult `json:"weapon"`
}

// batchEntityResult is one generated entity dossier within a batch.
type batchEntityResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Motive      string   `json:"motive"`
	Alibi       string   `json:"alibi"`
	IsCulprit   bool     `json:"isCulprit"`
	Traits      []string `json:"traits"`
	Gender      string   `json:"gender"`
}

// batchResult is the shape of one fixed-size entity batch.
type batchResult struct {
	Entities []batchEntityResult `json:"entities"`
}

// hiddenContextResult is the shape of the final stage: the solution.
type hiddenContextResult struct {
	CulpritID     string   `json:"culpritId"`
	Justification string   `json:"justification"`
	KeyClues      []string `json:"keyClues"`
	CulpritTraits []string `json:"culpritTraits"`
}
