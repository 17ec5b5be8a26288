package randomimage

import (
	"context"
	"regexp"

	"github.com/bgraf/randomimage/title"
	"go.uber.org/zap"
)

// CaptionPlaceholder is used when no caption text can be found. An empty
// caption segment would be read as an image option by the markup renderer.
const CaptionPlaceholder = "&#160;"

var (
	captionTagPattern = regexp.MustCompile(`(?i)<randomcaption>(.*?)</randomcaption>`)
	firstLinePattern  = regexp.MustCompile(`^(.*?)\n`)
	captionTagsStrip  = regexp.MustCompile(`(?i)</?randomcaption>`)
)

// CaptionResolver derives the caption for one render. The caption is
// computed once and then reused.
type CaptionResolver struct {
	store    Store
	logger   *zap.Logger
	caption  string
	resolved bool
}

func NewCaptionResolver(store Store, explicit string, logger *zap.Logger) *CaptionResolver {
	return &CaptionResolver{
		store:    store,
		logger:   logger,
		caption:  explicit,
		resolved: explicit != "",
	}
}

func (c *CaptionResolver) Resolve(ctx context.Context, ref title.Reference) string {
	if !c.resolved {
		c.caption = c.fromDescriptionPage(ctx, ref)
		c.resolved = true
	}
	return c.caption
}

func (c *CaptionResolver) fromDescriptionPage(ctx context.Context, ref title.Reference) string {
	text, exists, err := c.store.PageText(ctx, ref)
	if err != nil {
		c.logger.Warn("could not load description page", zap.Stringer("title", ref), zap.Error(err))
		return CaptionPlaceholder
	}

	if !exists {
		return CaptionPlaceholder
	}

	return CaptionFromText(text)
}

// CaptionFromText extracts a caption from description page text. The first
// matching rule wins: an explicit <randomcaption> tag, the first line, the
// whole text, the placeholder.
func CaptionFromText(text string) string {
	if m := captionTagPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if m := firstLinePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if text != "" {
		return text
	}

	return CaptionPlaceholder
}

// StripCaptionTags removes <randomcaption> markers from page text so they are
// not shown when the description page itself is displayed.
func StripCaptionTags(text string) string {
	return captionTagsStrip.ReplaceAllString(text, "")
}
