package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleOrPlaceholder(t *testing.T) {
	assert.Equal(t, "Disk full", Content{Title: "Disk full"}.TitleOrPlaceholder())
	assert.Equal(t, "(untitled)", Content{}.TitleOrPlaceholder())
	assert.Equal(t, "(untitled)", Content{Title: "   "}.TitleOrPlaceholder())
}

func TestBodyTruncated(t *testing.T) {
	c := Content{Body: "one  two\nthree"}

	assert.Equal(t, "one two three", c.BodyTruncated(50))
	assert.Equal(t, "one two...", c.BodyTruncated(10))
	assert.Equal(t, "on", c.BodyTruncated(2))
	assert.Equal(t, "", c.BodyTruncated(0))
}

func TestFrom(t *testing.T) {
	c := Content{Title: "hello"}

	got, ok := From(c)
	assert.True(t, ok)
	assert.Equal(t, c, got)

	got, ok = From(&c)
	assert.True(t, ok)
	assert.Equal(t, c, got)

	_, ok = From("not a banner")
	assert.False(t, ok)

	_, ok = From((*Content)(nil))
	assert.False(t, ok)
}
