// Package randomimage renders the <randomimage> tag: it picks an image,
// derives a caption for it and renders a captionless thumbnail.
package randomimage

import (
	"context"

	"github.com/bgraf/randomimage/config"
	"github.com/bgraf/randomimage/logging"
	"github.com/bgraf/randomimage/title"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by all renders.
type Deps struct {
	Store  Store
	Rand   Rand
	Logger *zap.Logger
}

// RandomImage is a single render of the tag. It must not be reused across
// renders.
type RandomImage struct {
	opts     Options
	selector *Selector
	caption  *CaptionResolver
	store    Store
	logger   *zap.Logger
}

// New prepares a render from the tag attributes and the tag body, which
// serves as the explicit caption.
func New(deps Deps, settings config.Settings, attrs map[string]string, body string) *RandomImage {
	rnd := deps.Rand
	if rnd == nil {
		rnd = DefaultRand
	}

	logger := logging.OrNop(deps.Logger)

	return &RandomImage{
		opts: ParseOptions(attrs),
		selector: &Selector{
			Store:  deps.Store,
			Rand:   rnd,
			Strict: settings.Strict,
			Logger: logger,
		},
		caption: NewCaptionResolver(deps.Store, body, logger),
		store:   deps.Store,
		logger:  logger,
	}
}

// Render returns the thumbnail HTML, or "" if no existing image could be
// selected or rendering failed.
func (ri *RandomImage) Render(ctx context.Context, parser Parser) string {
	pick := ri.selector.Pick(ctx, ri.opts)
	if pick.IsNone() {
		ri.logger.Debug("no image selected")
		return ""
	}

	ref := pick.Get()
	if !ri.imageExists(ctx, ref) {
		return ""
	}

	markup := ri.BuildMarkup(ctx, ref)

	fragment, err := parser.RecursiveTagParse(ctx, markup)
	if err != nil {
		ri.logger.Warn("could not render image markup", zap.String("markup", markup), zap.Error(err))
		return ""
	}

	return StripCaption(fragment)
}

// BuildMarkup returns the markup for ref, resolving the caption on first use.
func (ri *RandomImage) BuildMarkup(ctx context.Context, ref title.Reference) string {
	return BuildMarkup(ref, ri.opts, ri.caption.Resolve(ctx, ref))
}

func (ri *RandomImage) imageExists(ctx context.Context, ref title.Reference) bool {
	ok, err := ri.store.FileExists(ctx, ref)
	if err != nil {
		ri.logger.Warn("could not check file", zap.Stringer("title", ref), zap.Error(err))
		return false
	}

	if !ok {
		ri.logger.Debug("selected file does not exist", zap.Stringer("title", ref))
	}

	return ok
}
