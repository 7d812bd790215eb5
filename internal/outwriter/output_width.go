package outwriter

import (
	"os"
	"strings"

	"github.com/huangsam/studytrack/internal/contract"
	"golang.org/x/term"
)

// Bar glyphs for the correct and incorrect parts of a row.
const (
	positiveGlyph = "█"
	negativeGlyph = "░"
)

// GetMaxBarWidth calculates the width of the bar column in table output
// based on terminal width and the fixed columns.
func GetMaxBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Label + Correct + Incorrect + Total with borders/padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 10 {
		return 10
	}
	if available > 60 {
		return 60
	}
	return available
}

// renderBar draws correct and incorrect shares of scale into width cells.
// Rounding never lets the bar exceed width.
func renderBar(correct, incorrect, scale float64, width int, colored bool) string {
	if scale <= 0 || width <= 0 {
		return ""
	}
	pos := int(correct / scale * float64(width))
	neg := int(incorrect / scale * float64(width))
	pos = min(max(pos, 0), width)
	neg = min(max(neg, 0), width-pos)

	posPart := strings.Repeat(positiveGlyph, pos)
	negPart := strings.Repeat(negativeGlyph, neg)
	if colored {
		if pos > 0 {
			posPart = contract.PositiveColor.Sprint(posPart)
		}
		if neg > 0 {
			negPart = contract.NegativeColor.Sprint(negPart)
		}
	}
	return posPart + negPart
}
