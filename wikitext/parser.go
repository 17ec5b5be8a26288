// Package wikitext expands the small subset of wiki markup produced by the
// randomimage tag: [[File:...]] image links, [[Page]] links and registered
// extension tags such as <randomimage>.
package wikitext

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bgraf/randomimage/title"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
)

var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// URLs builds links to files, thumbnails and pages.
type URLs struct {
	Base string
}

func (u URLs) File(ref title.Reference) string {
	return u.Base + "/file/" + url.PathEscape(ref.DBKey)
}

func (u URLs) Thumb(ref title.Reference, width int) string {
	return fmt.Sprintf("%s/thumb/%d/%s", u.Base, width, url.PathEscape(ref.DBKey))
}

func (u URLs) Page(ref title.Reference) string {
	return u.Base + "/page/" + url.PathEscape(ref.DBKey)
}

// TagHook renders one occurrence of an extension tag.
type TagHook func(ctx context.Context, body string, attrs map[string]string, p *Parser) string

// Parser expands markup for a single page. It records whether the output
// may be cached, so a new Parser is needed per page.
type Parser struct {
	urls       URLs
	thumbWidth int
	hooks      map[string]TagHook
	uncachable bool
}

func NewParser(urls URLs, thumbWidth int) *Parser {
	return &Parser{
		urls:       urls,
		thumbWidth: thumbWidth,
		hooks:      make(map[string]TagHook),
	}
}

// SetHook registers fn for <name>...</name> tags in Parse input.
func (p *Parser) SetHook(name string, fn TagHook) {
	p.hooks[strings.ToLower(name)] = fn
}

func (p *Parser) DisableCache() {
	p.uncachable = true
}

func (p *Parser) Cacheable() bool {
	return !p.uncachable
}

// RecursiveTagParse expands the links in markup to HTML. Text outside of
// links is escaped.
func (p *Parser) RecursiveTagParse(ctx context.Context, markup string) (string, error) {
	return p.expandLinks(markup, nethtml.EscapeString)
}

// Parse renders a whole page: extension tags first, then links, then the
// surrounding Markdown.
func (p *Parser) Parse(ctx context.Context, text string) (string, error) {
	text = p.expandTags(ctx, text)

	text, err := p.expandLinks(text, func(s string) string { return s })
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return buf.String(), nil
}

func (p *Parser) expandLinks(markup string, text func(string) string) (string, error) {
	var b strings.Builder
	last := 0

	for _, span := range findLinks(markup) {
		b.WriteString(text(markup[last:span.start]))

		if err := p.writeLink(&b, span.inner(markup), markup[span.start:span.end]); err != nil {
			return "", err
		}

		last = span.end
	}

	b.WriteString(text(markup[last:]))

	return b.String(), nil
}

func (p *Parser) writeLink(b *strings.Builder, inner string, raw string) error {
	parts := splitSegments(inner)
	target := strings.TrimSpace(parts[0])

	if isFileTarget(target) {
		ref, ok := title.MakeSafe(title.NamespaceFile, target)
		if !ok {
			b.WriteString(nethtml.EscapeString(raw))
			return nil
		}
		return p.writeImage(b, ref, parseImageOptions(parts[1:]))
	}

	ref, ok := title.MakeSafe(title.NamespaceMain, target)
	if !ok {
		b.WriteString(nethtml.EscapeString(raw))
		return nil
	}

	label := ref.PrefixedText()
	if len(parts) > 1 {
		label = strings.Join(parts[1:], "|")
	}

	fmt.Fprintf(b, `<a href="%s">%s</a>`, nethtml.EscapeString(p.urls.Page(ref)), nethtml.EscapeString(label))

	return nil
}

func isFileTarget(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "file:") || strings.HasPrefix(lower, "image:")
}

var escapeRawHTML = strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace

// renderCaption expands the links of a caption and renders the rest as
// inline Markdown. Raw HTML in the caption is escaped, entities are kept.
func (p *Parser) renderCaption(s string) (string, error) {
	expanded, err := p.expandLinks(s, escapeRawHTML)
	if err != nil {
		return "", err
	}

	return renderInline(expanded)
}

// renderInline renders a caption as inline Markdown.
func renderInline(s string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("render caption: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")

	return out, nil
}
