package htmlutil

import "strings"

// FindLabel returns the first <b> in document order whose trimmed text is
// exactly text. The comparison is case-sensitive.
func FindLabel(doc *Document, text string) (Element, bool) {
	for _, b := range doc.Find("b") {
		if strings.TrimSpace(b.Text()) == text {
			return b, true
		}
	}
	return Element{}, false
}

// Labels is a per-document index of bold labels. Only the first occurrence
// of a given text is kept, so lookups agree with FindLabel.
type Labels struct {
	byText map[string]Element
}

func IndexLabels(doc *Document) Labels {
	idx := Labels{byText: map[string]Element{}}
	for _, b := range doc.Find("b") {
		text := strings.TrimSpace(b.Text())
		if _, exists := idx.byText[text]; exists {
			continue
		}
		idx.byText[text] = b
	}
	return idx
}

func (l Labels) Find(text string) (Element, bool) {
	el, ok := l.byText[text]
	return el, ok
}

// First returns the label for the first text in the list that exists.
func (l Labels) First(texts ...string) (Element, bool) {
	for _, t := range texts {
		if el, ok := l.Find(t); ok {
			return el, true
		}
	}
	return Element{}, false
}
