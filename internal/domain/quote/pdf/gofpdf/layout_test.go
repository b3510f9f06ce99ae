package gofpdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedMeter measures every rune as one unit wide.
var fixedMeter = meterFunc(func(s string) float64 { return float64(len([]rune(s))) })

func TestSplitLinesGreedy(t *testing.T) {
	lines := SplitLines(fixedMeter, "set de bloques de madera", 10)
	assert.Equal(t, []string{"set de", "bloques de", "madera"}, lines)
}

func TestSplitLinesEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, SplitLines(fixedMeter, "", 10))
	assert.Equal(t, []string{""}, SplitLines(fixedMeter, "   ", 10))
}

func TestSplitLinesSingleFit(t *testing.T) {
	assert.Equal(t, []string{"corto"}, SplitLines(fixedMeter, "corto", 10))
}

func TestSplitLinesForceBreaksLongWord(t *testing.T) {
	lines := SplitLines(fixedMeter, "abcdefghijklmnop", 5)
	assert.Equal(t, []string{"abcde", "fghij", "klmno", "p"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, fixedMeter.StringWidth(l), 5.0)
	}
}

func TestSplitLinesLongWordMidSentence(t *testing.T) {
	lines := SplitLines(fixedMeter, "ver referencialarguisima ya", 10)
	// The oversized word is cut on its own lines; surrounding words wrap
	// normally around it.
	assert.Equal(t, []string{"ver", "referencia", "larguisima", "ya"}, lines)
}

func TestSplitLinesRuneWiderThanColumn(t *testing.T) {
	// Every rune measures wider than the column; each one must still come
	// out as its own over-wide line instead of wedging the splitter.
	wide := meterFunc(func(s string) float64 { return 10 * float64(len([]rune(s))) })

	assert.Equal(t, []string{"a", "b"}, SplitLines(wide, "ab", 5))
	assert.Equal(t, []string{"ñ"}, SplitLines(wide, "ñ", 5))
	assert.Equal(t, []string{"x", "y", "z"}, SplitLines(wide, "x yz", 5))
}

func TestSplitLinesMultibyte(t *testing.T) {
	word := strings.Repeat("ñ", 12)
	lines := SplitLines(fixedMeter, word, 5)
	assert.Equal(t, []string{"ñññññ", "ñññññ", "ññ"}, lines)
}

func TestRowHeight(t *testing.T) {
	assert.Equal(t, minRowHeight, rowHeight(1))
	assert.Equal(t, minRowHeight, rowHeight(5))
	// 6 lines: 6*5+4 = 34 exceeds the image minimum.
	assert.Equal(t, 34.0, rowHeight(6))
}
