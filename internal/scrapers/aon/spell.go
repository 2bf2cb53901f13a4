package aon

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"aonscraper/lib/htmlutil"
	"aonscraper/lib/textutil"
)

const (
	mainContentSelector = `[id*="MainContent_DetailedOutput"]`
	// a field's run ends at the next line break or rule
	fieldStop = "br, hr"
	// Rules.aspx?ID=329 is the "Basic Saving Throws" rule page
	basicSaveRuleId = 329
)

var ErrIdentityMismatch = errors.New("page identity does not match requested id")

var componentRegex = regexp.MustCompile(`(?i)\b(material|somatic|verbal|focus)\b`)

// ParseSpellPage reads every enrichment field off a spell page. Each label
// is located independently, a missing label leaves its field empty.
func ParseSpellPage(doc *htmlutil.Document) SpellPage {
	labels := htmlutil.IndexLabels(doc)

	page := SpellPage{}
	page.Id, page.Name = pageTitle(doc)

	page.Bloodlines = linkedList(labels, `a[href*="Bloodline"]`, strings.ToLower, "Bloodline", "Bloodlines")
	page.Deities = linkedList(labels, `a[href*="Deities"]`, nil, "Deities")
	page.Domains = linkedList(labels, `a[href*="Domains"]`, strings.ToLower, "Domain", "Domains")

	if cast, ok := labels.Find("Cast"); ok {
		page.NumberOfActions = DecodeActions(cast.SiblingsUntil(fieldStop, actionIconSelector))
		page.Components = components(cast)
	}

	page.Duration = textField(labels, "Duration")
	page.Range = textField(labels, "Range")
	page.Area = textField(labels, "Area")
	page.Targets = textField(labels, "Targets")
	page.Trigger = textField(labels, "Trigger")
	page.SavingThrow, page.IsBasicSave = savingThrow(labels)
	page.Content = mainContent(doc)

	return page
}

// pageTitle reads the id and name off the page heading link, 0 when the
// heading has none.
func pageTitle(doc *htmlutil.Document) (int, string) {
	for _, a := range doc.Find(`h1.title a[href*="ID="]`) {
		id, ok := textutil.PageId(a.AttrOr("href", ""))
		if !ok {
			continue
		}
		return id, htmlutil.NormalizeText(a.Text())
	}
	return 0, ""
}

// linkedList collects the underlined entries after a label that link to
// the pages matching link.
func linkedList(labels htmlutil.Labels, link string, transform func(string) string, label ...string) []string {
	anchor, ok := labels.First(label...)
	if !ok {
		return nil
	}

	var out []string
	for _, u := range anchor.SiblingsUntil(fieldStop, "u") {
		if !u.Has(link) {
			continue
		}
		text := strings.TrimSpace(u.Text())
		if transform != nil {
			text = transform(text)
		}
		out = append(out, text)
	}
	return out
}

func textField(labels htmlutil.Labels, label string) *string {
	anchor, ok := labels.Find(label)
	if !ok {
		return nil
	}
	return textAfter(anchor)
}

func textAfter(el htmlutil.Element) *string {
	data, ok := el.NextTextSiblingData()
	if !ok {
		return nil
	}
	value := textutil.TrimField(data)
	if value == "" {
		return nil
	}
	return &value
}

func components(cast htmlutil.Element) []string {
	var b strings.Builder
	for _, n := range cast.ContentsUntil(fieldStop) {
		switch n := n.(type) {
		case htmlutil.Text:
			b.WriteString(n.Data())
		case htmlutil.Element:
			b.WriteString(" ")
		}
	}

	var out []string
	for _, m := range componentRegex.FindAllString(b.String(), -1) {
		c := strings.ToLower(m)
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func savingThrow(labels htmlutil.Labels) (*string, bool) {
	anchor, ok := labels.Find("Saving Throw")
	if !ok {
		return nil, false
	}
	for _, a := range anchor.SiblingsUntil(fieldStop, "a[href]") {
		href := a.AttrOr("href", "")
		if !strings.Contains(strings.ToLower(href), "rules.aspx") {
			continue
		}
		if id, ok := textutil.PageId(href); ok && id == basicSaveRuleId {
			return textAfter(a), true
		}
	}
	return textAfter(anchor), false
}

func mainContent(doc *htmlutil.Document) string {
	main, ok := doc.First(mainContentSelector)
	if !ok {
		return ""
	}
	content, err := htmlutil.Sanitize(main, "href").InnerHtml()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}
