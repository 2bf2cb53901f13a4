package aon

import (
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"
)

// MergeByIdentity reduces items to one record per key in first-seen order,
// a later item sharing a key is folded into the earlier one with merge.
// The input is never modified.
func MergeByIdentity[T any, K comparable](items []T, key func(T) K, merge func(existing, next T) T) []T {
	var out []T
	index := map[K]int{}
	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = merge(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

// unionStrings appends every non-empty value of next missing from base,
// the result is a new slice.
func unionStrings(base, next []string) []string {
	out := make([]string, 0, len(base)+len(next))
	for _, v := range slices.Concat(base, next) {
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func spellFromSeed(seed SpellSeed) Spell {
	return Spell{
		Id:           seed.Id,
		Name:         seed.Name,
		Rarity:       seed.Rarity,
		Traits:       seed.Traits,
		Level:        seed.Level,
		PfsLegality:  seed.PfsLegality,
		IsCantrip:    seed.IsCantrip,
		IsFocusSpell: seed.IsFocusSpell,
		IsHeightened: seed.IsHeightened,
		Summary:      seed.Summary,
		Traditions:   seed.Traditions,
		Source:       seed.Source,
	}
}

func spellFromPage(page SpellPage) Spell {
	return Spell{
		Id:              page.Id,
		Name:            page.Name,
		Bloodlines:      page.Bloodlines,
		Deities:         page.Deities,
		Domains:         page.Domains,
		NumberOfActions: page.NumberOfActions,
		Components:      page.Components,
		Duration:        page.Duration,
		Range:           page.Range,
		Area:            page.Area,
		Targets:         page.Targets,
		Trigger:         page.Trigger,
		SavingThrow:     page.SavingThrow,
		IsBasicSave:     page.IsBasicSave,
		Content:         page.Content,
	}
}

// AssembleSpell overlays the page onto the seed, non-empty page fields win.
func AssembleSpell(seed SpellSeed, page SpellPage) (Spell, error) {
	out := spellFromSeed(seed)
	err := mergo.Merge(&out, spellFromPage(page), mergo.WithOverride)
	if err != nil {
		return spellFromSeed(seed), fmt.Errorf("assemble spell %d: %w", seed.Id, err)
	}
	return out, nil
}

// AssembleSpells assembles every seed in order, seeds without a page are
// kept as they are.
func AssembleSpells(seeds []SpellSeed, pages map[int]SpellPage) ([]Spell, error) {
	spells := make([]Spell, len(seeds))
	var errs []error
	for i, seed := range seeds {
		page, ok := pages[seed.Id]
		if !ok {
			spells[i] = spellFromSeed(seed)
			continue
		}
		spell, err := AssembleSpell(seed, page)
		if err != nil {
			errs = append(errs, err)
		}
		spells[i] = spell
	}
	return spells, errors.Join(errs...)
}
