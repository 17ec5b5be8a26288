package randomimage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CaptionClass marks the caption block below a thumbnail.
const CaptionClass = "thumbcaption"

var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Center:     true,
	atom.Details:    true,
	atom.Dl:         true,
	atom.Div:        true,
	atom.Fieldset:   true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Table:      true,
	atom.Ul:         true,
}

// StripCaption removes every caption block from the rendered thumbnail HTML
// and returns the first top-level block element. Malformed input is parsed
// leniently; if nothing usable remains the result is empty.
func StripCaption(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	doc.Find("." + CaptionClass).Remove()

	top := firstBlock(doc.Find("body").Children())
	if top.Length() == 0 {
		return ""
	}

	out, err := goquery.OuterHtml(top)
	if err != nil {
		return ""
	}

	return out
}

func firstBlock(s *goquery.Selection) *goquery.Selection {
	block := s.FilterFunction(func(i int, s *goquery.Selection) bool {
		n := s.Nodes[0]
		return n.Type == html.ElementNode && blockElements[n.DataAtom]
	})

	if block.Length() > 0 {
		return block.First()
	}

	return s.First()
}
