package htmlutil

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustLoad(t testing.TB, markup string) *Document {
	doc, err := Load(markup)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSiblingsUntil(t *testing.T) {
	doc := mustLoad(t, `<div><b>Deities</b> <u><a href="Deities.aspx?ID=1">Asmodeus</a></u>, <u><a href="Deities.aspx?ID=2">Norgorber</a></u><br/><u>After</u></div>`)

	label, ok := FindLabel(doc, "Deities")
	require.True(t, ok)

	siblings := label.SiblingsUntil("br, hr", "u")
	require.Len(t, siblings, 2)
	require.Equal(t, "Asmodeus", siblings[0].Text())
	require.Equal(t, "Norgorber", siblings[1].Text())

	all := label.SiblingsUntil("br, hr", "")
	require.Len(t, all, 2)

	contents := label.ContentsUntil("br, hr")
	require.Len(t, contents, 4)
	_, isText := contents[0].(Text)
	require.True(t, isText)
	_, isElement := contents[1].(Element)
	require.True(t, isElement)
}

func TestSiblingsUntilWithoutStop(t *testing.T) {
	doc := mustLoad(t, `<p><b>Range</b> <i>a</i><i>b</i></p>`)
	label, ok := FindLabel(doc, "Range")
	require.True(t, ok)
	require.Len(t, label.SiblingsUntil("hr", "i"), 2)
}

func TestNextTextSiblingData(t *testing.T) {
	doc := mustLoad(t, `<p><b>Duration</b> 1 minute<br/><b>Range</b><a href="#">30 feet</a></p>`)

	duration, ok := FindLabel(doc, "Duration")
	require.True(t, ok)
	data, ok := duration.NextTextSiblingData()
	require.True(t, ok)
	require.Equal(t, " 1 minute", data)

	rng, ok := FindLabel(doc, "Range")
	require.True(t, ok)
	_, ok = rng.NextTextSiblingData()
	require.False(t, ok, "an element sibling should not be coerced into text")
}

func TestNextTextSiblingDataAtEnd(t *testing.T) {
	doc := mustLoad(t, `<p><b>Trigger</b></p>`)
	label, ok := FindLabel(doc, "Trigger")
	require.True(t, ok)
	_, ok = label.NextTextSiblingData()
	require.False(t, ok)
	require.Nil(t, label.Next())
}

func TestPrevSiblingMatching(t *testing.T) {
	doc := mustLoad(t, `<div><h2>Elemental Traits</h2><span class="trait">a</span><h2>Planar Traits</h2><p>x</p><span id="target" class="trait">b</span></div>`)
	target, ok := doc.First("#target")
	require.True(t, ok)

	heading, ok := target.PrevSiblingMatching("h2")
	require.True(t, ok)
	require.Equal(t, "Planar Traits", heading.Text())

	first, ok := doc.First("span.trait")
	require.True(t, ok)
	_, ok = first.PrevSiblingMatching("h3")
	require.False(t, ok)
}

func TestContentsKeepsText(t *testing.T) {
	doc := mustLoad(t, `<div id="main">hello <b>world</b><!-- comment --></div>`)
	main, ok := doc.First("#main")
	require.True(t, ok)

	contents := main.Contents()
	require.Len(t, contents, 2)

	var rendered []string
	for _, n := range contents {
		switch n := n.(type) {
		case Text:
			rendered = append(rendered, "text:"+n.Data())
		case Element:
			rendered = append(rendered, "element:"+n.Tag())
		}
	}
	require.Equal(t, []string{"text:hello ", "element:b"}, rendered)
}

func TestOuterHtml(t *testing.T) {
	doc := mustLoad(t, `<p><a href="Traits.aspx?ID=1">Air</a></p>`)
	a, ok := doc.First("a")
	require.True(t, ok)

	out, err := a.OuterHtml()
	require.NoError(t, err)
	require.Equal(t, `<a href="Traits.aspx?ID=1">Air</a>`, out)

	inner, err := a.InnerHtml()
	require.NoError(t, err)
	require.Equal(t, "Air", inner)
}

func TestGetAnchors(t *testing.T) {
	doc := mustLoad(t, `<ul><li><a href="Spells.aspx?ID=12">  Magic
		Missile </a></li><li><a>no href</a></li></ul>`)
	base, err := url.Parse("https://2e.aonprd.com/")
	require.NoError(t, err)

	anchors := GetAnchors(base, doc.Find("a"))
	require.Len(t, anchors, 1)
	require.Equal(t, "Magic Missile", anchors[0].Name)
	require.Equal(t, "https://2e.aonprd.com/Spells.aspx?ID=12", anchors[0].Url.String())
}
