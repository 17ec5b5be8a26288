package wikitext

import (
	"context"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

var attrPattern = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>/]+))`)

func tagPattern(name string) *regexp.Regexp {
	n := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?is)<` + n + `(\s[^>]*?)?(?:/>|>(.*?)</` + n + `\s*>)`)
}

// expandTags replaces every registered extension tag with its hook output.
func (p *Parser) expandTags(ctx context.Context, text string) string {
	for name, hook := range p.hooks {
		pattern := tagPattern(name)

		var b strings.Builder
		last := 0

		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			b.WriteString(text[last:loc[0]])
			b.WriteString(hook(ctx, submatch(text, loc, 2), parseAttributes(submatch(text, loc, 1)), p))
			last = loc[1]
		}

		b.WriteString(text[last:])
		text = b.String()
	}

	return text
}

func submatch(s string, loc []int, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return s[loc[2*group]:loc[2*group+1]]
}

// parseAttributes reads name=value pairs. Names are lowercased, values are
// unescaped.
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)

	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		attrs[strings.ToLower(m[1])] = nethtml.UnescapeString(value)
	}

	return attrs
}
