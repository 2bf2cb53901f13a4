package aon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const spellFixture = `<html><body>
<h1 class="title"><a href="Spells.aspx?ID=484">Fireball</a></h1>
<span id="ctl00_MainContent_DetailedOutput">
<h1 class="title" style="color:red">Fireball</h1>
<b>Traditions</b> arcane, primal<br>
<b>Bloodline</b> <u><a href="Bloodline.aspx?ID=5">Draconic</a></u>, <u><a href="Bloodline.aspx?ID=7">Elemental</a></u>, <u><a href="Rules.aspx?ID=1">Not A Bloodline</a></u><br>
<b>Deities</b> <u><a href="Deities.aspx?ID=12">Asmodeus</a></u><br>
<b>Domain</b> <u><a href="Domains.aspx?ID=9">Fire</a></u><br>
<b>Cast</b> <img alt="Two Actions" class="actiondark"> somatic, verbal<br>
<b>Range</b> 500 feet; <b>Area</b> 20-foot burst<br>
<b>Saving Throw</b> <a href="Rules.aspx?ID=329">basic</a> Reflex<br>
<b>Duration</b> 1 round<hr>
A roaring blast of fire appears <a href="Rules.aspx?ID=2" class="link" target="_blank">here</a>.
</span>
</body></html>`

func TestParseSpellPage(t *testing.T) {
	page := ParseSpellPage(mustLoad(t, spellFixture))

	require.Equal(t, 484, page.Id)
	require.Equal(t, "Fireball", page.Name)
	require.Equal(t, []string{"draconic", "elemental"}, page.Bloodlines)
	require.Equal(t, []string{"Asmodeus"}, page.Deities)
	require.Equal(t, []string{"fire"}, page.Domains)
	require.Equal(t, ActionCosts{{From: ACTION_TWO}}, page.NumberOfActions)
	require.Equal(t, []string{"somatic", "verbal"}, page.Components)

	require.NotNil(t, page.Range)
	require.Equal(t, "500 feet", *page.Range)
	require.NotNil(t, page.Area)
	require.Equal(t, "20-foot burst", *page.Area)
	require.NotNil(t, page.Duration)
	require.Equal(t, "1 round", *page.Duration)
	require.Nil(t, page.Targets)
	require.Nil(t, page.Trigger)

	require.True(t, page.IsBasicSave)
	require.NotNil(t, page.SavingThrow)
	require.Equal(t, "Reflex", *page.SavingThrow)

	require.NotContains(t, page.Content, "style=")
	require.NotContains(t, page.Content, "class=")
	require.NotContains(t, page.Content, "target=")
	require.Contains(t, page.Content, `<a href="Rules.aspx?ID=2">here</a>`)
}

func TestParseSpellPageMissingLabels(t *testing.T) {
	page := ParseSpellPage(mustLoad(t, `<html><body><p>nothing to see</p></body></html>`))
	require.Equal(t, SpellPage{}, page)
}

func TestParseSpellPageFields(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
		check  func(t *testing.T, page SpellPage)
	}{
		{
			name:   "plain save",
			markup: `<div><b>Saving Throw</b> Will<br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.False(t, page.IsBasicSave)
				require.Equal(t, "Will", *page.SavingThrow)
			},
		},
		{
			name:   "other rule links are not basic",
			markup: `<div><b>Saving Throw</b> <a href="Rules.aspx?ID=330">special</a> Fortitude<br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.False(t, page.IsBasicSave)
				require.Nil(t, page.SavingThrow)
			},
		},
		{
			name:   "targets drop the bled semicolon",
			markup: `<div><b>Targets</b> 1 creature; <b>Duration</b> sustained<br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.Equal(t, "1 creature", *page.Targets)
				require.Equal(t, "sustained", *page.Duration)
			},
		},
		{
			name:   "label followed by an element has no text",
			markup: `<div><b>Trigger</b><i>you are hit</i><br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.Nil(t, page.Trigger)
			},
		},
		{
			name:   "labels are case sensitive",
			markup: `<div><b>duration</b> 1 minute<br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.Nil(t, page.Duration)
			},
		},
		{
			name:   "legacy components",
			markup: `<div><b>Cast</b> 10 minutes (material, somatic, Verbal, focus); <b>Cost</b> 5 gp of <i>somatic</i> dust<br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.Nil(t, page.NumberOfActions)
				require.Equal(t, []string{"material", "somatic", "verbal", "focus"}, page.Components)
			},
		},
		{
			name:   "plural bloodline label",
			markup: `<div><b>Bloodlines</b> <u><a href="Bloodline.aspx?ID=1">Aberrant</a></u><br></div>`,
			check: func(t *testing.T, page SpellPage) {
				require.Equal(t, []string{"aberrant"}, page.Bloodlines)
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, ParseSpellPage(mustLoad(t, test.markup)))
		})
	}
}
