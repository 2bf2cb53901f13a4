package htmlutil

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is either a Text or an Element.
type Node interface {
	Raw() *html.Node
}

// Text is a literal run of character data.
type Text struct {
	node *html.Node
}

func (t Text) Raw() *html.Node {
	return t.node
}

func (t Text) Data() string {
	return t.node.Data
}

// Element is a handle to exactly one element node. It is a cursor into
// a tree and does not own it.
type Element struct {
	sel *goquery.Selection
}

// Wrap turns a raw node into its variant, anything that is not text or
// an element (comments, doctypes) becomes nil.
func Wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return Text{node: n}
	case html.ElementNode:
		return element(n)
	}
	return nil
}

func element(n *html.Node) Element {
	return Element{sel: goquery.NewDocumentFromNode(n).Selection}
}

func (e Element) Raw() *html.Node {
	return e.sel.Get(0)
}

func (e Element) Tag() string {
	return e.Raw().Data
}

func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e Element) AttrOr(name, fallback string) string {
	return e.sel.AttrOr(name, fallback)
}

// Is reports whether the element matches the given css selector.
func (e Element) Is(selector string) bool {
	return e.sel.Is(selector)
}

func (e Element) Text() string {
	return e.sel.Text()
}

// Find returns descendants matching the selector in document order.
func (e Element) Find(selector string) []Element {
	return elements(e.sel.Find(selector))
}

// Has reports whether any descendant matches the selector.
func (e Element) Has(selector string) bool {
	return e.sel.Find(selector).Length() > 0
}

func (e Element) InnerHtml() (string, error) {
	return e.sel.Html()
}

func (e Element) OuterHtml() (string, error) {
	return goquery.OuterHtml(e.sel)
}

// Next returns the raw sibling right after the element, whatever its type.
func (e Element) Next() Node {
	return Wrap(e.Raw().NextSibling)
}

// NextTextSiblingData returns the data of the immediately following sibling
// only when that sibling is a text node.
func (e Element) NextTextSiblingData() (string, bool) {
	next := e.Raw().NextSibling
	if next == nil || next.Type != html.TextNode {
		return "", false
	}
	return next.Data, true
}

// Contents returns the direct children including text nodes.
func (e Element) Contents() []Node {
	var out []Node
	for c := e.Raw().FirstChild; c != nil; c = c.NextSibling {
		if n := Wrap(c); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// ContentsUntil walks the siblings after the element and returns every node
// before the first element matching stop. The stop node is never included.
func (e Element) ContentsUntil(stop string) []Node {
	var out []Node
	for s := e.Raw().NextSibling; s != nil; s = s.NextSibling {
		n := Wrap(s)
		if n == nil {
			continue
		}
		if el, ok := n.(Element); ok && stop != "" && el.Is(stop) {
			break
		}
		out = append(out, n)
	}
	return out
}

// SiblingsUntil is ContentsUntil restricted to elements matching filter,
// an empty filter keeps every element.
func (e Element) SiblingsUntil(stop, filter string) []Element {
	var out []Element
	for _, n := range e.ContentsUntil(stop) {
		el, ok := n.(Element)
		if !ok {
			continue
		}
		if filter != "" && !el.Is(filter) {
			continue
		}
		out = append(out, el)
	}
	return out
}

// PrevSiblingMatching returns the closest preceding sibling matching selector.
func (e Element) PrevSiblingMatching(selector string) (Element, bool) {
	for s := e.Raw().PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type != html.ElementNode {
			continue
		}
		el := element(s)
		if el.Is(selector) {
			return el, true
		}
	}
	return Element{}, false
}

func elements(sel *goquery.Selection) []Element {
	out := make([]Element, len(sel.Nodes))
	for i, n := range sel.Nodes {
		out[i] = element(n)
	}
	return out
}

// Document is a parsed page or fragment.
type Document struct {
	doc *goquery.Document
}

func FromReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

func Load(markup string) (*Document, error) {
	return FromReader(strings.NewReader(markup))
}

func (d *Document) Find(selector string) []Element {
	return elements(d.doc.Find(selector))
}

// First returns the first element matching selector.
func (d *Document) First(selector string) (Element, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

func (d *Document) Text() string {
	return d.doc.Text()
}

func (d *Document) Html() (string, error) {
	return d.doc.Html()
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

type Anchor struct {
	Name string
	Url  *url.URL
}

var whitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeText strips non-printable characters and collapses whitespace.
func NormalizeText(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	s = removeNonPrintable(s)
	return strings.TrimSpace(s)
}

// GetAnchors resolves the href of every element against base, elements
// without a parseable href are skipped.
func GetAnchors(base *url.URL, anchors []Element) []Anchor {
	var out []Anchor
	for _, a := range anchors {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}
		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}
		out = append(out, Anchor{
			Name: NormalizeText(GetText(a.Raw())),
			Url:  link,
		})
	}
	return out
}
