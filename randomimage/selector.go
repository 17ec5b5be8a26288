package randomimage

import (
	"context"

	"github.com/bgraf/randomimage/option"
	"github.com/bgraf/randomimage/title"
	"go.uber.org/zap"
)

// MajorMIMEImage is the major MIME type required in strict mode.
const MajorMIMEImage = "image"

// Selector picks the image to render.
type Selector struct {
	Store  Store
	Rand   Rand
	Strict bool
	Logger *zap.Logger
}

// Pick selects from opts.Choices if any are given, otherwise samples the
// store. A failed store sample is retried exactly once.
func (s *Selector) Pick(ctx context.Context, opts Options) option.Option[title.Reference] {
	if len(opts.Choices) > 0 {
		return s.pickFromChoices(opts.Choices)
	}

	pick := s.pickFromStore(ctx)
	if pick.IsNone() {
		s.Logger.Debug("random sample missed, retrying")
		pick = s.pickFromStore(ctx)
	}

	return pick
}

func (s *Selector) pickFromChoices(choices []string) option.Option[title.Reference] {
	name := choices[0]
	if len(choices) > 1 {
		name = choices[s.Rand.Intn(len(choices))]
	}

	ref, ok := title.MakeSafe(title.NamespaceFile, name)
	if !ok {
		s.Logger.Debug("invalid image choice", zap.String("choice", name))
	}

	return option.FromOK(ref, ok)
}

func (s *Selector) pickFromStore(ctx context.Context) option.Option[title.Reference] {
	ref, ok, err := s.Store.SampleOne(ctx, s.filter(), s.Rand.Float64())
	if err != nil {
		s.Logger.Warn("random sample failed", zap.Error(err))
		return option.None[title.Reference]()
	}

	return option.FromOK(ref, ok)
}

func (s *Selector) filter() SampleFilter {
	filter := SampleFilter{Namespace: title.NamespaceFile}
	if s.Strict {
		filter.MajorMIME = MajorMIMEImage
	}
	return filter
}
