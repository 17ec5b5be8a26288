package wikitext

import "strings"

// linkSpan is the byte range of one outermost [[...]] link.
type linkSpan struct {
	start, end int
}

func (l linkSpan) inner(s string) string {
	return s[l.start+2 : l.end-2]
}

// findLinks returns the outermost links of s in order. Links may nest, as in
// captions like "A photo of [[Paris]]". A [[ without a matching ]] is text.
func findLinks(s string) []linkSpan {
	var spans []linkSpan

	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], "[[") {
			i++
			continue
		}

		end, ok := closeLink(s, i, true)
		if !ok {
			end, ok = closeLink(s, i, false)
		}
		if !ok {
			i += 2
			continue
		}

		spans = append(spans, linkSpan{start: i, end: end})
		i = end
	}

	return spans
}

// closeLink returns the end of the link opened at start. With singles set,
// single brackets inside the link must balance, so "[[File:A.png|See [1]]]"
// closes after the last bracket.
func closeLink(s string, start int, singles bool) (int, bool) {
	var open []int

	for i := start; i < len(s); {
		top := 0
		if len(open) > 0 {
			top = open[len(open)-1]
		}

		switch {
		case strings.HasPrefix(s[i:], "[["):
			open = append(open, 2)
			i += 2
		case singles && s[i] == '[':
			open = append(open, 1)
			i++
		case singles && s[i] == ']' && top == 1:
			open = open[:len(open)-1]
			i++
		case strings.HasPrefix(s[i:], "]]") && top == 2:
			open = open[:len(open)-1]
			i += 2
			if len(open) == 0 {
				return i, true
			}
		default:
			i++
		}
	}

	return 0, false
}

// splitSegments splits the inside of a link at the pipes that are not part
// of a nested link.
func splitSegments(inner string) []string {
	var parts []string
	depth, last := 0, 0

	for i := 0; i < len(inner); {
		switch {
		case strings.HasPrefix(inner[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(inner[i:], "]]") && depth > 0:
			depth--
			i += 2
		case inner[i] == '|' && depth == 0:
			parts = append(parts, inner[last:i])
			i++
			last = i
		default:
			i++
		}
	}

	return append(parts, inner[last:])
}

// linkLabels replaces every link in s by its label.
func linkLabels(s string) string {
	var b strings.Builder
	last := 0

	for _, span := range findLinks(s) {
		b.WriteString(s[last:span.start])

		parts := splitSegments(span.inner(s))
		b.WriteString(linkLabels(parts[len(parts)-1]))

		last = span.end
	}

	b.WriteString(s[last:])

	return b.String()
}
