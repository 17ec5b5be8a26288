package randomimage

import (
	"fmt"
	"strings"

	"github.com/bgraf/randomimage/title"
)

// BuildMarkup returns the thumbnail link markup for ref, e.g.
// "[[File:A.png|thumb|200px|left|Caption]]". Unset options are omitted.
func BuildMarkup(ref title.Reference, opts Options, caption string) string {
	parts := []string{ref.PrefixedText(), "thumb"}

	if opts.Width.IsSome() {
		parts = append(parts, fmt.Sprintf("%dpx", opts.Width.Get()))
	}

	if opts.Float.IsSome() {
		parts = append(parts, string(opts.Float.Get()))
	}

	parts = append(parts, caption)

	return "[[" + strings.Join(parts, "|") + "]]"
}
