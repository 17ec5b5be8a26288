package wikitext

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(URLs{Base: "/w"}, 180)
}

func TestRecursiveTagParse_Thumb(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|thumb|200px|left|C]]")
	require.NoError(t, err)

	expected := `<div class="thumb tleft"><div class="thumbinner" style="width:202px;">` +
		`<a href="/w/file/A.png" class="image"><img alt="" src="/w/thumb/200/A.png" width="200" class="thumbimage"></a>` +
		`<div class="thumbcaption"><div class="magnify"><a href="/w/file/A.png" class="internal" title="Enlarge"></a></div>C</div>` +
		`</div></div>`

	assert.Equal(t, expected, out)
}

func TestRecursiveTagParse_Defaults(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:Sunset over lake.jpg|thumb|C]]")
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="thumb tright">`)
	assert.Contains(t, out, `src="/w/thumb/180/Sunset_over_lake.jpg"`)
	assert.Contains(t, out, `style="width:182px;"`)
}

func TestRecursiveTagParse_Center(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|thumb|center|C]]")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<div class="center"><div class="thumb tnone">`))
	assert.True(t, strings.HasSuffix(out, `</div></div></div>`))
}

func TestRecursiveTagParse_MarkdownCaption(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|thumb|Lake *at dawn*]]")
	require.NoError(t, err)

	assert.Contains(t, out, `</div>Lake <em>at dawn</em></div>`)
}

func TestRecursiveTagParse_PlainImage(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|50px|left|Alt]]")
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="floatleft"><a href="/w/file/A.png" class="image"><img alt="Alt" src="/w/thumb/50/A.png" width="50"></a></div>`,
		out,
	)
}

func TestRecursiveTagParse_EscapesText(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "a < b [[Main page]] & c")
	require.NoError(t, err)

	assert.Equal(t, `a &lt; b <a href="/w/page/Main_page">Main page</a> &amp; c`, out)
}

func TestRecursiveTagParse_InvalidFile(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:]]")
	require.NoError(t, err)

	assert.Equal(t, "[[File:]]", out)
}

func TestParseImageOptions(t *testing.T) {
	opts := parseImageOptions([]string{"thumb", "120px", "right", "first", "second"})

	assert.True(t, opts.thumb)
	assert.Equal(t, 120, opts.width)
	assert.Equal(t, "right", opts.float)
	assert.Equal(t, "second", opts.caption)

	opts = parseImageOptions([]string{"px", "12pxx"})
	assert.Zero(t, opts.width)
	assert.Equal(t, "12pxx", opts.caption)
}

func TestCacheable(t *testing.T) {
	p := newTestParser()
	assert.True(t, p.Cacheable())

	p.DisableCache()
	assert.False(t, p.Cacheable())
}

func TestParse_Hook(t *testing.T) {
	p := newTestParser()

	var gotBody string
	var gotAttrs map[string]string
	p.SetHook("randomimage", func(ctx context.Context, body string, attrs map[string]string, parser *Parser) string {
		gotBody, gotAttrs = body, attrs
		parser.DisableCache()
		return "[[File:A.png|thumb|" + body + "]]"
	})

	out, err := p.Parse(context.Background(), "# Gallery\n\n<RandomImage size=\"200\" Float='left' choices=a|b>Hi</randomimage>\n")
	require.NoError(t, err)

	assert.Equal(t, "Hi", gotBody)
	assert.Equal(t, map[string]string{"size": "200", "float": "left", "choices": "a|b"}, gotAttrs)
	assert.Contains(t, out, "<h1>Gallery</h1>")
	assert.Contains(t, out, `<div class="thumb tright">`)
	assert.False(t, p.Cacheable())
}

func TestParse_SelfClosingHook(t *testing.T) {
	p := newTestParser()

	calls := 0
	p.SetHook("randomimage", func(ctx context.Context, body string, attrs map[string]string, parser *Parser) string {
		calls++
		assert.Empty(t, body)
		return "<span>x</span>"
	})

	out, err := p.Parse(context.Background(), `one <randomimage size="10"/> two <randomimage/>`)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, "<p>one <span>x</span> two <span>x</span></p>\n", out)
}

func TestParseAttributes(t *testing.T) {
	attrs := parseAttributes(` size=200 caption="a &amp; b" data-x='y'`)
	assert.Equal(t, map[string]string{"size": "200", "caption": "a & b", "data-x": "y"}, attrs)
}

func TestRecursiveTagParse_CaptionWithBrackets(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		caption string
	}{
		{
			name:    "nested page link",
			markup:  "[[File:A.png|thumb|A photo of [[Paris]]]]",
			caption: `A photo of <a href="/w/page/Paris">Paris</a>`,
		},
		{
			name:    "nested link with label",
			markup:  "[[File:A.png|thumb|200px|Seen from [[Eiffel Tower|the tower]]]]",
			caption: `Seen from <a href="/w/page/Eiffel_Tower">the tower</a>`,
		},
		{
			name:    "single brackets",
			markup:  "[[File:A.png|thumb|See [1]]]",
			caption: "See [1]",
		},
		{
			name:    "unbalanced single bracket",
			markup:  "[[File:A.png|thumb|See [1]]",
			caption: "See [1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newTestParser().RecursiveTagParse(context.Background(), tt.markup)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(out, `<div class="thumb tright">`), out)
			assert.Contains(t, out, `title="Enlarge"></a></div>`+tt.caption+`</div>`)
			assert.NotContains(t, out, "[[")
		})
	}
}

func TestRecursiveTagParse_CaptionEscapesHTML(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|thumb|<script>alert(1)</script> &amp; more]]")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; more")
}

func TestRecursiveTagParse_PlainImageAltFromLinks(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|50px|Near [[Paris|the capital]]]]")
	require.NoError(t, err)

	assert.Contains(t, out, `alt="Near the capital"`)
}

func TestParseImageOptions_KeywordCaption(t *testing.T) {
	tests := []struct {
		parts   []string
		float   string
		width   int
		caption string
	}{
		{[]string{"thumb", "left"}, "", 0, "left"},
		{[]string{"thumb", "200px"}, "", 0, "200px"},
		{[]string{"thumb", "100px", "right", "thumb"}, "right", 100, "thumb"},
		{[]string{"thumb"}, "", 0, ""},
		{[]string{"left", "thumb"}, "left", 0, ""},
	}

	for _, tt := range tests {
		opts := parseImageOptions(tt.parts)

		assert.True(t, opts.thumb, tt.parts)
		assert.Equal(t, tt.float, opts.float, tt.parts)
		assert.Equal(t, tt.width, opts.width, tt.parts)
		assert.Equal(t, tt.caption, opts.caption, tt.parts)
	}
}

func TestRecursiveTagParse_KeywordCaption(t *testing.T) {
	out, err := newTestParser().RecursiveTagParse(context.Background(), "[[File:A.png|thumb|left]]")
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="thumb tright">`)
	assert.Contains(t, out, `title="Enlarge"></a></div>left</div>`)
}
