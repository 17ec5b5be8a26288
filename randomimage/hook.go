package randomimage

import (
	"context"

	"github.com/bgraf/randomimage/config"
)

// TagName is the name of the tag handled by Hook.
const TagName = "randomimage"

// Hook handles occurrences of the <randomimage> tag. A fresh RandomImage is
// created for every call, so one Hook may serve concurrent parses.
type Hook struct {
	Deps     Deps
	Settings config.Settings
}

func (h Hook) Render(ctx context.Context, body string, attrs map[string]string, parser Parser) string {
	if h.Settings.NoCache {
		parser.DisableCache()
	}

	return New(h.Deps, h.Settings, attrs, body).Render(ctx, parser)
}
