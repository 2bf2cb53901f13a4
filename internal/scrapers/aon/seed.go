package aon

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aonscraper/internal/telemetry"
	"aonscraper/lib/htmlutil"
	"aonscraper/lib/textutil"
)

const (
	report_seed_row = "seed.row"
)

// column order of the spell table export
const (
	col_name = iota
	col_pfs
	col_source
	col_traditions
	col_rarity
	col_traits
	col_cantrip
	col_focus
	col_level
	col_summary
	col_heightened
	seedColumns
)

var ErrMissingIdentity = errors.New("missing identity")

// ParseSeedRow reads one row of raw html fragments. Rows without a page
// id fail with ErrMissingIdentity.
func ParseSeedRow(row []string) (SpellSeed, error) {
	if len(row) < seedColumns {
		return SpellSeed{}, fmt.Errorf("expected %d columns, got %d", seedColumns, len(row))
	}

	fragments := make([]*htmlutil.Document, seedColumns)
	for i := col_name; i <= col_traits; i++ {
		doc, err := htmlutil.Load(row[i])
		if err != nil {
			return SpellSeed{}, fmt.Errorf("column %d: %w", i, err)
		}
		fragments[i] = doc
	}

	name := fragments[col_name]
	var id int
	if link, ok := name.First("a"); ok {
		id, _ = textutil.PageId(link.AttrOr("href", ""))
	}
	if id == 0 {
		return SpellSeed{}, fmt.Errorf("%w: %q", ErrMissingIdentity, strings.TrimSpace(name.Text()))
	}

	seed := SpellSeed{
		Id:           id,
		Name:         strings.TrimSpace(name.Text()),
		Rarity:       strings.ToLower(strings.TrimSpace(fragments[col_rarity].Text())),
		Source:       strings.TrimSpace(fragments[col_source].Text()),
		IsCantrip:    textutil.ParseBool(row[col_cantrip]),
		IsFocusSpell: textutil.ParseBool(row[col_focus]),
		IsHeightened: textutil.ParseBool(row[col_heightened]),
		Summary:      row[col_summary],
		Traits:       []string{},
		Traditions:   []string{},
	}

	if icon, ok := fragments[col_pfs].First("img"); ok {
		seed.PfsLegality = strings.ToLower(icon.AttrOr("alt", ""))
	}
	// a malformed level degrades to 0 instead of dropping the row
	seed.Level, _ = strconv.Atoi(strings.TrimSpace(row[col_level]))

	for _, a := range fragments[col_traits].Find("a") {
		seed.Traits = append(seed.Traits, strings.ToLower(strings.TrimSpace(a.Text())))
	}

	traditions := fragments[col_traditions]
	if strings.TrimSpace(traditions.Text()) != "Focus" {
		for _, u := range traditions.Find("u") {
			seed.Traditions = append(seed.Traditions, strings.ToLower(strings.TrimSpace(u.Text())))
		}
	}

	return seed, nil
}

// ParseSeeds parses every row (the header excluded), dropping and
// reporting the rows that cannot be read.
func ParseSeeds(rows [][]string, tel telemetry.API) []SpellSeed {
	seeds := make([]SpellSeed, 0, len(rows))
	for i, row := range rows {
		seed, err := ParseSeedRow(row)
		if err != nil {
			tel.ReportWarning(report_seed_row, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

// BaseSpells drops the heightened variants, only base entries have pages
// of their own worth scraping.
func BaseSpells(seeds []SpellSeed) []SpellSeed {
	var out []SpellSeed
	for _, s := range seeds {
		if s.IsHeightened {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterIds keeps the seeds whose id is in ids, an empty ids keeps all.
func FilterIds(seeds []SpellSeed, ids []int) []SpellSeed {
	if len(ids) == 0 {
		return seeds
	}
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []SpellSeed
	for _, s := range seeds {
		if _, ok := wanted[s.Id]; ok {
			out = append(out, s)
		}
	}
	return out
}
