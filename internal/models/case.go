package models

import (
	"fmt"
	"time"
)

// CaseConfig captures the requested parameters for a generated case.
type CaseConfig struct {
	CaseType    string `json:"caseType"`
	Scenario    string `json:"scenario"`
	Difficulty  string `json:"difficulty"`
	EntityCount int    `json:"entityCount"`
}

// Victim is the person the case revolves around.
type Victim struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Description  string `json:"description"`
	CauseOfDeath string `json:"causeOfDeath"`
}

// Weapon is the instrument of the crime, when the case has one.
type Weapon struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Entity is a generated character in the case, either a suspect or a player stand-in.
//
// The identifier is assigned before any generation call is made and never renumbered.
// ImageURL is written exclusively by the reconciler after generation completes.
type Entity struct {
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
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// HiddenContext is the solution to the case. It is generated in the final stage and
// read-only afterwards.
type HiddenContext struct {
	CulpritID     string   `json:"culpritId"`
	Justification string   `json:"justification"`
	KeyClues      []string `json:"keyClues"`
	CulpritTraits []string `json:"culpritTraits"`
}

// CaseDocument is the finished artifact assembled by the generation pipeline.
// It is frozen once persisted and never mutated afterwards.
type CaseDocument struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Victim        Victim        `json:"victim"`
	Weapon        *Weapon       `json:"weapon,omitempty"`
	Entities      []Entity      `json:"entities"`
	HiddenContext HiddenContext `json:"hiddenContext"`
	Config        CaseConfig    `json:"config"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// EntityID formats the stable identifier for the 1-indexed entity n.
func EntityID(n int) string {
	return fmt.Sprintf("entity-%d", n)
}
