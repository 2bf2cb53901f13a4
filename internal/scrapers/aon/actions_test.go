package aon

import (
	"encoding/json"
	"testing"

	"aonscraper/lib/htmlutil"

	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, markup string) *htmlutil.Document {
	t.Helper()
	doc, err := htmlutil.Load(markup)
	require.NoError(t, err)
	return doc
}

func castIcons(t *testing.T, markup string) []htmlutil.Element {
	t.Helper()
	doc := mustLoad(t, markup)
	cast, ok := htmlutil.FindLabel(doc, "Cast")
	require.True(t, ok)
	return cast.SiblingsUntil(fieldStop, actionIconSelector)
}

func TestDecodeActions(t *testing.T) {
	testCases := []struct {
		name     string
		markup   string
		expected ActionCosts
	}{
		{
			name:     "single icon",
			markup:   `<div><b>Cast</b> <img alt="Two Actions"> somatic, verbal<br></div>`,
			expected: ActionCosts{{From: ACTION_TWO}},
		},
		{
			name:     "one to three",
			markup:   `<div><b>Cast</b> <img alt="Single Action"> to <img alt="Three Actions"> somatic<br></div>`,
			expected: ActionCosts{{From: ACTION_ONE, To: ACTION_TWO}},
		},
		{
			name:     "one to two is not a range",
			markup:   `<div><b>Cast</b> <img alt="Single Action"> to <img alt="Two Actions"><br></div>`,
			expected: ActionCosts{{From: ACTION_ONE}, {From: ACTION_TWO}},
		},
		{
			name:     "separator must be exact",
			markup:   `<div><b>Cast</b> <img alt="Single Action">  to <img alt="Three Actions"><br></div>`,
			expected: ActionCosts{{From: ACTION_ONE}, {From: ACTION_THREE}},
		},
		{
			name:     "reaction and free",
			markup:   `<div><b>Cast</b> <img alt="Reaction"> or <img alt="Free Action"><br></div>`,
			expected: ActionCosts{{From: ACTION_REACTION}, {From: ACTION_FREE}},
		},
		{
			name:     "duplicates collapse",
			markup:   `<div><b>Cast</b> <img alt="Two Actions"> or <img alt="Two Actions"><br></div>`,
			expected: ActionCosts{{From: ACTION_TWO}},
		},
		{
			name:     "range then single",
			markup:   `<div><b>Cast</b> <img alt="Single Action"> to <img alt="Three Actions"> or <img alt="Two Actions"><br></div>`,
			expected: ActionCosts{{From: ACTION_ONE, To: ACTION_TWO}, {From: ACTION_TWO}},
		},
		{
			name:     "icons past the break are ignored",
			markup:   `<div><b>Cast</b> 1 minute (material)<br><img alt="Two Actions"></div>`,
			expected: nil,
		},
		{
			name:     "unknown icons are ignored",
			markup:   `<div><b>Cast</b> <img alt="Sustained"><hr></div>`,
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, DecodeActions(castIcons(t, test.markup)))
		})
	}
}

func TestActionCostsJSON(t *testing.T) {
	testCases := []struct {
		costs    ActionCosts
		expected string
	}{
		{costs: nil, expected: `null`},
		{costs: ActionCosts{{From: ACTION_TWO}}, expected: `"2A"`},
		{costs: ActionCosts{{From: ACTION_ONE, To: ACTION_TWO}}, expected: `{"from":"1A","to":"2A"}`},
		{costs: ActionCosts{{From: ACTION_ONE}, {From: ACTION_THREE}}, expected: `["1A","3A"]`},
		{
			costs:    ActionCosts{{From: ACTION_FREE}, {From: ACTION_ONE, To: ACTION_TWO}},
			expected: `["F",{"from":"1A","to":"2A"}]`,
		},
	}

	for _, test := range testCases {
		out, err := json.Marshal(test.costs)
		require.NoError(t, err)
		require.JSONEq(t, test.expected, string(out))

		var decoded ActionCosts
		require.NoError(t, json.Unmarshal(out, &decoded))
		require.Equal(t, test.costs, decoded)
	}
}

func TestActionCostsSingle(t *testing.T) {
	single, ok := ActionCosts{{From: ACTION_THREE}}.Single()
	require.True(t, ok)
	require.Equal(t, "3A", single.String())

	_, ok = ActionCosts{{From: ACTION_ONE}, {From: ACTION_TWO}}.Single()
	require.False(t, ok)
	_, ok = ActionCosts(nil).Single()
	require.False(t, ok)

	require.Equal(t, "1A to 2A", ActionCost{From: ACTION_ONE, To: ACTION_TWO}.String())
}
