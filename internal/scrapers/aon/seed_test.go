package aon

import (
	"testing"

	"aonscraper/internal/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func seedRow(name, heightened string) []string {
	return []string{
		name,
		`<img alt="PFS Standard" src="Images/Icons/PFS_Standard.png">`,
		`<a href="Sources.aspx?ID=1"><i>Core Rulebook</i></a>`,
		`<u><a href="Traditions.aspx?ID=1">Arcane</a></u>, <u><a href="Traditions.aspx?ID=4">Primal</a></u>`,
		`<span>Common</span>`,
		`<a href="Traits.aspx?ID=60">Evocation</a>, <a href="Traits.aspx?ID=65">Fire</a>`,
		"False",
		"False",
		"3",
		"A burst of flame explodes.",
		heightened,
	}
}

func TestParseSeedRow(t *testing.T) {
	seed, err := ParseSeedRow(seedRow(`<a href="Spells.aspx?ID=119">Fireball</a>`, "False"))
	require.NoError(t, err)

	expected := SpellSeed{
		Id:          119,
		Name:        "Fireball",
		Rarity:      "common",
		Traits:      []string{"evocation", "fire"},
		Level:       3,
		PfsLegality: "pfs standard",
		Summary:     "A burst of flame explodes.",
		Traditions:  []string{"arcane", "primal"},
		Source:      "Core Rulebook",
	}
	if diff := cmp.Diff(expected, seed); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSeedRowFlags(t *testing.T) {
	row := seedRow(`<a href="Spells.aspx?ID=5">Shield</a>`, "True")
	row[col_traditions] = "Focus"
	row[col_cantrip] = "True"
	row[col_focus] = "true"
	row[col_level] = "n/a"
	row[col_pfs] = ""

	seed, err := ParseSeedRow(row)
	require.NoError(t, err)
	require.True(t, seed.IsCantrip)
	require.False(t, seed.IsFocusSpell, "only the literal True is true")
	require.True(t, seed.IsHeightened)
	require.Equal(t, 0, seed.Level)
	require.Empty(t, seed.Traditions)
	require.Empty(t, seed.PfsLegality)
}

func TestParseSeedRowMissingIdentity(t *testing.T) {
	_, err := ParseSeedRow(seedRow(`<a href="Spells.aspx">Nameless</a>`, "False"))
	require.ErrorIs(t, err, ErrMissingIdentity)

	_, err = ParseSeedRow(seedRow(`Unlinked`, "False"))
	require.ErrorIs(t, err, ErrMissingIdentity)

	_, err = ParseSeedRow([]string{"too", "short"})
	require.Error(t, err)
}

func TestParseSeeds(t *testing.T) {
	rec := telemetry.NewRecorder()
	seeds := ParseSeeds([][]string{
		seedRow(`<a href="Spells.aspx?ID=1">Acid Splash</a>`, "False"),
		seedRow(`<b>broken</b>`, "False"),
		seedRow(`<a href="Spells.aspx?ID=2">Acid Splash</a>`, "True"),
	}, rec)

	require.Len(t, seeds, 2)
	require.Len(t, rec.Find(telemetry.LevelWarning, report_seed_row), 1)

	base := BaseSpells(seeds)
	require.Len(t, base, 1)
	require.Equal(t, 1, base[0].Id)
}

func TestFilterIds(t *testing.T) {
	seeds := []SpellSeed{{Id: 1}, {Id: 2}, {Id: 3}}
	require.Equal(t, seeds, FilterIds(seeds, nil))
	require.Equal(t, []SpellSeed{{Id: 1}, {Id: 3}}, FilterIds(seeds, []int{3, 1, 9}))
	require.Empty(t, FilterIds(seeds, []int{9}))
}
