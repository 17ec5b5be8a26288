package randomimage

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/bgraf/randomimage/option"
)

// Names of the tag attributes understood by the parser.
const (
	AttrSize    = "size"
	AttrFloat   = "float"
	AttrChoices = "choices"
)

type Float string

const (
	FloatLeft   Float = "left"
	FloatRight  Float = "right"
	FloatCenter Float = "center"
)

func (f Float) IsValid() bool {
	switch f {
	case FloatLeft, FloatRight, FloatCenter:
		return true
	}
	return false
}

// Options are the normalized tag attributes.
type Options struct {
	Width   option.Option[int]
	Float   option.Option[Float]
	Choices []string
}

// ParseOptions extracts the applicable options from tag attributes. Invalid
// values leave the corresponding field unset; parsing never fails.
func ParseOptions(attrs map[string]string) Options {
	var opts Options

	if raw, ok := attrs[AttrSize]; ok {
		if size, ok := leadingInt(raw); ok && size > 0 {
			opts.Width = option.Some(size)
		}
	}

	if raw, ok := attrs[AttrFloat]; ok {
		if f := Float(strings.ToLower(raw)); f.IsValid() {
			opts.Float = option.Some(f)
		}
	}

	if raw, ok := attrs[AttrChoices]; ok {
		if choices := strings.Split(raw, "|"); len(choices) > 0 {
			opts.Choices = choices
		}
	}

	return opts
}

// leadingInt parses the integer prefix of s, so "200px" yields 200. It
// reports false when s has no digits or the value overflows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}
