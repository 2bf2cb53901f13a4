package aon

import (
	"strings"

	"aonscraper/lib/htmlutil"
	"aonscraper/lib/textutil"
)

// traitMarker is one appearance of a trait on the index page, a trait
// listed under several headings has one marker per heading.
type traitMarker struct {
	id       int
	name     string
	category string
}

func traitMarkers(doc *htmlutil.Document) (markers []traitMarker, dropped int) {
	for _, span := range doc.Find("span.trait") {
		var id int
		if links := span.Find("a[href]"); len(links) > 0 {
			id, _ = textutil.PageId(links[0].AttrOr("href", ""))
		}
		if id == 0 {
			dropped++
			continue
		}

		var category string
		if heading, ok := span.PrevSiblingMatching("h2"); ok {
			category = textutil.CategoryFromHeading(heading.Text())
		}

		markers = append(markers, traitMarker{
			id:       id,
			name:     strings.ToLower(strings.TrimSpace(span.AttrOr("title", ""))),
			category: category,
		})
	}
	return markers, dropped
}

// ParseTraitIndex builds the bare trait records (no description) from the
// traits index. dropped counts the markers without a resolvable id.
func ParseTraitIndex(doc *htmlutil.Document) (traits []Trait, dropped int) {
	markers, dropped := traitMarkers(doc)
	return MergeTraits(markers), dropped
}

// MergeTraits collapses markers that share an id into one record whose
// categories are the union of every marker's category.
func MergeTraits(markers []traitMarker) []Trait {
	bare := make([]Trait, len(markers))
	for i, m := range markers {
		bare[i] = Trait{
			Id:         m.id,
			Name:       m.name,
			Categories: unionStrings(nil, []string{m.category}),
		}
	}
	return MergeByIdentity(
		bare,
		func(t Trait) int { return t.Id },
		func(existing, next Trait) Trait {
			existing.Categories = unionStrings(existing.Categories, next.Categories)
			return existing
		},
	)
}

// ParseTraitDescription returns the markup between the first line break
// of the main content and the next break, heading or rule. Text nodes are
// kept literally and elements keep only their links.
func ParseTraitDescription(doc *htmlutil.Document) string {
	main, ok := doc.First(mainContentSelector)
	if !ok {
		return ""
	}
	contents := main.Contents()

	start := -1
	for i, n := range contents {
		if el, ok := n.(htmlutil.Element); ok && el.Is("br") {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(contents)
	for i := start + 1; i < len(contents); i++ {
		if el, ok := contents[i].(htmlutil.Element); ok && el.Is("br, h2, hr") {
			end = i
			break
		}
	}

	var b strings.Builder
	for _, n := range contents[start+1 : end] {
		switch n := n.(type) {
		case htmlutil.Text:
			b.WriteString(n.Data())
		case htmlutil.Element:
			markup, err := htmlutil.Sanitize(n, "href").OuterHtml()
			if err != nil {
				continue
			}
			b.WriteString(markup)
		}
	}
	return b.String()
}
