package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeCaptionOrdering(t *testing.T) {
	caption := ComposeCaption("New spring menu is live",
		[]string{"foodie", "springmenu"},
		[]string{"chefmarco"})

	assert.Equal(t, "New spring menu is live\n\n#foodie #springmenu\n\n@chefmarco", caption)
}

func TestComposeCaptionDoesNotDoubleMark(t *testing.T) {
	caption := ComposeCaption("body",
		[]string{"#already", "fresh"},
		[]string{"@tagged", "untagged"})

	assert.Equal(t, "body\n\n#already #fresh\n\n@tagged @untagged", caption)

	// Re-normalizing the output pieces changes nothing.
	again := ComposeCaption("body",
		[]string{"#already", "#fresh"},
		[]string{"@tagged", "@untagged"})
	assert.Equal(t, caption, again)
}

func TestComposeCaptionSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "just a body", ComposeCaption("just a body", nil, nil))
	assert.Equal(t, "#solo", ComposeCaption("", []string{"solo"}, nil))
	assert.Equal(t, "body\n\n@someone", ComposeCaption("body", nil, []string{"someone"}))
	assert.Equal(t, "", ComposeCaption("   ", []string{" ", ""}, nil))
}
