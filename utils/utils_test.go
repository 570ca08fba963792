package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_FormatTimeShouldScaleTheUnits(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 5.00s", FormatTime(125*time.Second))
	assert.Equal("1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal("2d 3h 0m 0.00s", FormatTime(51*time.Hour))
}

func TestUtils_DecorateTextShouldWrapWithColorCodes(t *testing.T) {
	assert := assert.New(t)

	out := DecorateText("boom", ErrorMessage)
	assert.True(strings.HasPrefix(out, ErrorColor))
	assert.True(strings.HasSuffix(out, DefaultColor))
	assert.Contains(out, "boom")

	assert.Equal("plain", DecorateText("plain", MessageType(42)))
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidUrl("https://example.com/image.png"))
	assert.False(IsValidUrl("testdata/sample.jpg"))
	assert.False(IsValidUrl("://missing-scheme"))
}

func TestUtils_ShouldDetectImageContentType(t *testing.T) {
	assert := assert.New(t)

	// A file starting with the PNG signature sniffs as an image.
	fname := filepath.Join(t.TempDir(), "sample.png")
	sig := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	assert.NoError(os.WriteFile(fname, sig, 0644))

	ctype, err := DetectContentType(fname)
	assert.NoError(err)
	assert.True(strings.Contains(ctype, "image"))
}

func TestUtils_DetectContentTypeShouldFailOnMissingFile(t *testing.T) {
	if _, err := DetectContentType(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
