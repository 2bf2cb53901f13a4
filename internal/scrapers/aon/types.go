package aon

import "fmt"

const BaseUrl = "https://2e.aonprd.com"

func SpellPath(id int) string {
	return fmt.Sprintf("/Spells.aspx?ID=%d", id)
}

const TraitsPath = "/Traits.aspx"

func TraitPath(id int) string {
	return fmt.Sprintf("%s?ID=%d", TraitsPath, id)
}

// SpellSeed is one row of the spell table export.
type SpellSeed struct {
	Id           int      `json:"id"`
	Name         string   `json:"name"`
	Rarity       string   `json:"rarity"`
	Traits       []string `json:"traits"`
	Level        int      `json:"level"`
	PfsLegality  string   `json:"pfsLegality,omitempty"`
	IsCantrip    bool     `json:"isCantrip"`
	IsFocusSpell bool     `json:"isFocusSpell"`
	IsHeightened bool     `json:"isHeightened"`
	Summary      string   `json:"summary"`
	Traditions   []string `json:"traditions"`
	Source       string   `json:"source"`
}

// SpellPage holds what could be read off a spell's own page. Every field
// is optional since not every page has every label.
type SpellPage struct {
	Id              int
	Name            string
	Bloodlines      []string
	Deities         []string
	Domains         []string
	NumberOfActions ActionCosts
	Components      []string
	Duration        *string
	Range           *string
	Area            *string
	Targets         *string
	Trigger         *string
	SavingThrow     *string
	IsBasicSave     bool
	Content         string
}

// Spell is a seed merged with its page.
type Spell struct {
	Id           int      `json:"id"`
	Name         string   `json:"name"`
	Rarity       string   `json:"rarity"`
	Traits       []string `json:"traits"`
	Level        int      `json:"level"`
	PfsLegality  string   `json:"pfsLegality,omitempty"`
	IsCantrip    bool     `json:"isCantrip"`
	IsFocusSpell bool     `json:"isFocusSpell"`
	IsHeightened bool     `json:"isHeightened"`
	Summary      string   `json:"summary"`
	Traditions   []string `json:"traditions"`
	Source       string   `json:"source"`

	Bloodlines      []string    `json:"bloodlines,omitempty"`
	Deities         []string    `json:"deities,omitempty"`
	Domains         []string    `json:"domains,omitempty"`
	NumberOfActions ActionCosts `json:"numberOfActions,omitempty"`
	Components      []string    `json:"components,omitempty"`
	Duration        *string     `json:"duration,omitempty"`
	Range           *string     `json:"range,omitempty"`
	Area            *string     `json:"area,omitempty"`
	Targets         *string     `json:"targets,omitempty"`
	Trigger         *string     `json:"trigger,omitempty"`
	SavingThrow     *string     `json:"savingThrow,omitempty"`
	IsBasicSave     bool        `json:"isBasicSave"`
	Content         string      `json:"content,omitempty"`
}

type Trait struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	// the groupings the trait is listed under, ex. "air" has ["elemental", "planar"]
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
}
