package randomimage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCaptionFromText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"caption tag", "<randomcaption>X</randomcaption>\nmore", "X"},
		{"caption tag mixed case", "intro <RandomCaption>Y</RANDOMCAPTION>", "Y"},
		{"caption tag after first line", "First\n<randomcaption>Z</randomcaption>", "Z"},
		{"caption tag spanning lines", "<randomcaption>a\nb</randomcaption>", "<randomcaption>a"},
		{"first line", "First line\nSecond", "First line"},
		{"leading newline", "\nSecond", ""},
		{"single line", "OnlyLine", "OnlyLine"},
		{"empty", "", CaptionPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CaptionFromText(tt.text))
		})
	}
}

func TestCaptionResolver_Explicit(t *testing.T) {
	store := &fakeStore{pages: map[string]string{"A.png": "from page"}}
	c := NewCaptionResolver(store, "Explicit", zap.NewNop())

	assert.Equal(t, "Explicit", c.Resolve(context.Background(), mustRef("A.png")))
	assert.Zero(t, store.pageCalls)
}

func TestCaptionResolver_FromPage(t *testing.T) {
	store := &fakeStore{pages: map[string]string{"A.png": "A lake\nshot at dawn"}}
	c := NewCaptionResolver(store, "", zap.NewNop())

	assert.Equal(t, "A lake", c.Resolve(context.Background(), mustRef("A.png")))
}

// TestCaptionResolver_Memoized verifies the page is read only once even if
// the resolver is asked about another title afterwards.
func TestCaptionResolver_Memoized(t *testing.T) {
	store := &fakeStore{pages: map[string]string{"A.png": "first", "B.png": "second"}}
	c := NewCaptionResolver(store, "", zap.NewNop())

	assert.Equal(t, "first", c.Resolve(context.Background(), mustRef("A.png")))
	assert.Equal(t, "first", c.Resolve(context.Background(), mustRef("B.png")))
	assert.Equal(t, 1, store.pageCalls)
}

func TestCaptionResolver_MissingPage(t *testing.T) {
	c := NewCaptionResolver(&fakeStore{}, "", zap.NewNop())
	assert.Equal(t, CaptionPlaceholder, c.Resolve(context.Background(), mustRef("A.png")))
}

func TestCaptionResolver_StoreError(t *testing.T) {
	c := NewCaptionResolver(&fakeStore{pageErr: errBoom}, "", zap.NewNop())
	assert.Equal(t, CaptionPlaceholder, c.Resolve(context.Background(), mustRef("A.png")))
}

func TestStripCaptionTags(t *testing.T) {
	assert.Equal(t, "Nice view\nmore", StripCaptionTags("<randomcaption>Nice view</RandomCaption>\nmore"))
	assert.Equal(t, "plain", StripCaptionTags("plain"))
}
