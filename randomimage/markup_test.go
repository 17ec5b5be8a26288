package randomimage

import (
	"testing"

	"github.com/bgraf/randomimage/option"
	"github.com/stretchr/testify/assert"
)

func TestBuildMarkup(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		caption  string
		expected string
	}{
		{
			name:     "all options",
			opts:     Options{Width: option.Some(200), Float: option.Some(FloatLeft)},
			caption:  "C",
			expected: "[[File:A.png|thumb|200px|left|C]]",
		},
		{
			name:     "no options",
			caption:  "C",
			expected: "[[File:A.png|thumb|C]]",
		},
		{
			name:     "width only",
			opts:     Options{Width: option.Some(90)},
			caption:  "C",
			expected: "[[File:A.png|thumb|90px|C]]",
		},
		{
			name:     "float only",
			opts:     Options{Float: option.Some(FloatCenter)},
			caption:  CaptionPlaceholder,
			expected: "[[File:A.png|thumb|center|&#160;]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildMarkup(mustRef("A.png"), tt.opts, tt.caption))
		})
	}
}

func TestBuildMarkup_SpacedName(t *testing.T) {
	assert.Equal(t,
		"[[File:Sunset over lake.jpg|thumb|x]]",
		BuildMarkup(mustRef("sunset_over_lake.jpg"), Options{}, "x"),
	)
}
