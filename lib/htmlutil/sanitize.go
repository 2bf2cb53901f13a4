package htmlutil

import "golang.org/x/net/html"

// Sanitize returns a deep copy of el in which every element keeps only the
// attributes listed in allow. The original tree is left untouched.
func Sanitize(el Element, allow ...string) Element {
	clone := element(cloneTree(el.Raw()))

	targets := append([]Element{clone}, clone.Find("*")...)
	for _, target := range targets {
		type kept struct {
			key string
			val string
		}
		var snapshot []kept
		for _, name := range allow {
			val, ok := target.Attr(name)
			if ok {
				snapshot = append(snapshot, kept{key: name, val: val})
			}
		}

		raw := target.Raw()
		for len(raw.Attr) > 0 {
			target.sel.RemoveAttr(raw.Attr[0].Key)
		}

		for _, a := range snapshot {
			target.sel.SetAttr(a.key, a.val)
		}
	}

	return clone
}

// cloneTree copies n and its descendants, the copy is detached from any parent.
func cloneTree(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(out.Attr, n.Attr)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(cloneTree(c))
	}
	return out
}
