package wikitext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgraf/randomimage/title"
	nethtml "golang.org/x/net/html"
)

type imageOptions struct {
	thumb   bool
	width   int
	float   string
	caption string
}

// parseImageOptions interprets the segments after the file name. Unknown
// segments are taken as the caption; the last one wins. After thumb the final
// segment is always the caption, even if it reads like an option.
func parseImageOptions(parts []string) imageOptions {
	var opts imageOptions

	options, caption := parts, -1
	if n := len(parts); n > 1 && hasThumb(parts[:n-1]) {
		options, caption = parts[:n-1], n-1
	}

	for _, part := range options {
		switch p := strings.TrimSpace(part); {
		case p == "thumb" || p == "thumbnail":
			opts.thumb = true
		case p == "left" || p == "right" || p == "center" || p == "none":
			opts.float = p
		case strings.HasSuffix(p, "px") && isDigits(p[:len(p)-2]):
			opts.width, _ = strconv.Atoi(p[:len(p)-2])
		default:
			opts.caption = part
		}
	}

	if caption >= 0 {
		opts.caption = parts[caption]
	}

	return opts
}

func hasThumb(parts []string) bool {
	for _, part := range parts {
		if p := strings.TrimSpace(part); p == "thumb" || p == "thumbnail" {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (p *Parser) writeImage(b *strings.Builder, ref title.Reference, opts imageOptions) error {
	caption, err := p.renderCaption(opts.caption)
	if err != nil {
		return err
	}

	width := opts.width
	if width <= 0 {
		width = p.thumbWidth
	}

	fileURL := nethtml.EscapeString(p.urls.File(ref))
	thumbURL := nethtml.EscapeString(p.urls.Thumb(ref, width))
	alt := nethtml.EscapeString(linkLabels(opts.caption))

	if !opts.thumb {
		if opts.float != "" && opts.float != "none" {
			fmt.Fprintf(b, `<div class="float%s">`, opts.float)
			defer b.WriteString("</div>")
		}
		fmt.Fprintf(b, `<a href="%s" class="image"><img alt="%s" src="%s" width="%d"></a>`, fileURL, alt, thumbURL, width)
		return nil
	}

	float := opts.float
	if float == "" {
		float = "right"
	}

	if float == "center" {
		b.WriteString(`<div class="center">`)
		defer b.WriteString("</div>")
		float = "none"
	}

	fmt.Fprintf(b, `<div class="thumb t%s"><div class="thumbinner" style="width:%dpx;">`, float, width+2)
	fmt.Fprintf(b, `<a href="%s" class="image"><img alt="" src="%s" width="%d" class="thumbimage"></a>`, fileURL, thumbURL, width)
	fmt.Fprintf(b, `<div class="thumbcaption"><div class="magnify"><a href="%s" class="internal" title="Enlarge"></a></div>%s</div>`, fileURL, caption)
	b.WriteString("</div></div>")

	return nil
}
