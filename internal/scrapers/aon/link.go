package aon

import (
	"aonscraper/lib/textutil"

	"github.com/antzucaro/matchr"
)

// TraitLink ties a trait label used by spells to a trait record. Exact
// links have a correlation of 1, anything lower is only a suggestion.
type TraitLink struct {
	Label       string  `json:"label"`
	TraitId     int     `json:"traitId"`
	TraitName   string  `json:"traitName"`
	Correlation float64 `json:"correlation"`
}

func (l TraitLink) Exact() bool {
	return l.Correlation == 1
}

// SpellTraitLabels lists the distinct trait labels of the spells in
// first-seen order.
func SpellTraitLabels(spells []Spell) []string {
	var labels []string
	seen := map[string]struct{}{}
	for _, s := range spells {
		for _, t := range s.Traits {
			label := textutil.NormalizeName(t)
			if _, ok := seen[label]; ok || label == "" {
				continue
			}
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	return labels
}

// LinkTraits links each label to the trait of the same name, labels
// without one are linked to the most similar trait that was not linked
// exactly. A label is left out when there is nothing to suggest.
func LinkTraits(labels []string, traits []Trait) []TraitLink {
	byName := make(map[string]Trait, len(traits))
	var names []string
	for _, t := range traits {
		name := textutil.NormalizeName(t.Name)
		if _, ok := byName[name]; ok {
			continue
		}
		byName[name] = t
		names = append(names, name)
	}

	var result []TraitLink
	matchedLabel := make(map[string]struct{})
	matchedName := make(map[string]struct{})

	for _, label := range labels {
		trait, ok := byName[label]
		if !ok {
			continue
		}
		result = append(result, TraitLink{
			Label:       label,
			TraitId:     trait.Id,
			TraitName:   trait.Name,
			Correlation: 1,
		})
		matchedLabel[label] = struct{}{}
		matchedName[label] = struct{}{}
	}

	for _, label := range labels {
		if _, ok := matchedLabel[label]; ok {
			continue
		}

		var mostSimilarity float64
		var mostSimilarName string
		for _, name := range names {
			if _, ok := matchedName[name]; ok {
				continue
			}
			similarity := matchr.JaroWinkler(label, name, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarName = name
			}
		}

		if mostSimilarity > 0 {
			trait := byName[mostSimilarName]
			result = append(result, TraitLink{
				Label:       label,
				TraitId:     trait.Id,
				TraitName:   trait.Name,
				Correlation: mostSimilarity,
			})
		}
	}

	return result
}
