package aon

import (
	"encoding/json"
	"fmt"
	"slices"

	"aonscraper/lib/htmlutil"

	"golang.org/x/net/html"
)

type Action string

const (
	ACTION_REACTION Action = "R"
	ACTION_FREE     Action = "F"
	ACTION_ONE      Action = "1A"
	ACTION_TWO      Action = "2A"
	ACTION_THREE    Action = "3A"
)

// icon alt text -> action
var iconActions = map[string]Action{
	"Reaction":      ACTION_REACTION,
	"Free Action":   ACTION_FREE,
	"Single Action": ACTION_ONE,
	"Two Actions":   ACTION_TWO,
	"Three Actions": ACTION_THREE,
}

const actionIconSelector = `img[alt="Single Action"], img[alt="Two Actions"], img[alt="Three Actions"], img[alt="Reaction"], img[alt="Free Action"]`

// the literal text the site puts between two icons of a variable cost
const rangeSeparator = " to "

// ActionCost is either a single action or a variable range, To is empty
// for single actions.
type ActionCost struct {
	From Action `json:"from"`
	To   Action `json:"to"`
}

func (c ActionCost) IsRange() bool {
	return c.To != ""
}

func (c ActionCost) String() string {
	if c.IsRange() {
		return fmt.Sprintf("%s to %s", c.From, c.To)
	}
	return string(c.From)
}

// single actions encode as "2A", ranges as {"from":"1A","to":"2A"}
func (c ActionCost) MarshalJSON() ([]byte, error) {
	if c.IsRange() {
		type plain ActionCost
		return json.Marshal(plain(c))
	}
	return json.Marshal(c.From)
}

func (c *ActionCost) UnmarshalJSON(data []byte) error {
	var single Action
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ActionCost{From: single}
		return nil
	}
	type plain ActionCost
	var pair plain
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode action cost: %w", err)
	}
	*c = ActionCost(pair)
	return nil
}

// ActionCosts is the decoded cost of a spell, a single value encodes as
// itself and several values encode as an array.
type ActionCosts []ActionCost

func (a ActionCosts) Single() (ActionCost, bool) {
	if len(a) != 1 {
		return ActionCost{}, false
	}
	return a[0], true
}

func (a ActionCosts) MarshalJSON() ([]byte, error) {
	switch len(a) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(a[0])
	}
	return json.Marshal([]ActionCost(a))
}

func (a *ActionCosts) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = nil
		return nil
	}
	var list []ActionCost
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var single ActionCost
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*a = ActionCosts{single}
	return nil
}

func iconAction(n htmlutil.Node) (Action, bool) {
	el, ok := n.(htmlutil.Element)
	if !ok || el.Tag() != "img" {
		return "", false
	}
	alt, _ := el.Attr("alt")
	action, ok := iconActions[alt]
	return action, ok
}

// rangeTarget returns the icon joined to icon by the literal " to ".
func rangeTarget(icon htmlutil.Element) (htmlutil.Element, Action, bool) {
	sep, ok := icon.Next().(htmlutil.Text)
	if !ok || sep.Data() != rangeSeparator {
		return htmlutil.Element{}, "", false
	}
	target, ok := htmlutil.Wrap(sep.Raw().NextSibling).(htmlutil.Element)
	if !ok {
		return htmlutil.Element{}, "", false
	}
	action, ok := iconAction(target)
	if !ok {
		return htmlutil.Element{}, "", false
	}
	return target, action, true
}

// the site renders "1 to 3 actions" spells as a single action icon joined
// to a three action icon, that adjacency is the only range it produces.
func rangeCost(from, to Action) (ActionCost, bool) {
	if from == ACTION_ONE && to == ACTION_THREE {
		return ActionCost{From: ACTION_ONE, To: ACTION_TWO}, true
	}
	return ActionCost{}, false
}

// DecodeActions turns the run of action icons after a "Cast" label into a
// cost. The result is deduplicated in first-occurrence order and is nil
// when no icon is recognized.
func DecodeActions(icons []htmlutil.Element) ActionCosts {
	var out ActionCosts
	push := func(c ActionCost) {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	consumed := map[*html.Node]struct{}{}
	for _, icon := range icons {
		if _, skip := consumed[icon.Raw()]; skip {
			continue
		}
		from, ok := iconAction(icon)
		if !ok {
			continue
		}

		target, to, ok := rangeTarget(icon)
		if ok {
			cost, isRange := rangeCost(from, to)
			if isRange {
				consumed[target.Raw()] = struct{}{}
				push(cost)
				continue
			}
		}
		push(ActionCost{From: from})
	}

	return out
}
