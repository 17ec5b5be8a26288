package randomimage

import (
	"context"
	"math/rand"

	"github.com/bgraf/randomimage/title"
)

// SampleFilter restricts the records considered by Store.SampleOne.
type SampleFilter struct {
	Namespace title.Namespace
	// MajorMIME, if non-empty, requires the file's major MIME type to match.
	MajorMIME string
}

// Store is the content store queried while rendering.
type Store interface {
	// SampleOne returns the non-redirect record matching filter with the
	// smallest random key strictly greater than threshold. It reports false
	// if there is no such record.
	SampleOne(ctx context.Context, filter SampleFilter, threshold float64) (title.Reference, bool, error)

	// FileExists reports whether actual file content is present for ref,
	// not merely a description page.
	FileExists(ctx context.Context, ref title.Reference) (bool, error)

	// PageText returns the current text of the page. exists is false when
	// there is no such page.
	PageText(ctx context.Context, ref title.Reference) (text string, exists bool, err error)
}

// Parser expands embedded markup into HTML.
type Parser interface {
	RecursiveTagParse(ctx context.Context, markup string) (string, error)
	// DisableCache marks the output of the current parse as uncacheable.
	DisableCache()
}

// Rand is the source of randomness used for picking.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// globalRand uses the top-level math/rand functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.Intn(n) }

// DefaultRand is shared by renderers that were not given a Rand.
var DefaultRand Rand = globalRand{}
