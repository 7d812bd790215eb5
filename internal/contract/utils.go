package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/studytrack/schema"
)

// Accuracy label constants.
const (
	ExcellentValue = "Excellent" // Excellent accuracy
	GoodValue      = "Good"      // Good accuracy
	FairValue      = "Fair"      // Fair accuracy
	WeakValue      = "Weak"      // Weak accuracy
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor represents mastery.
	GoodColor      = color.New(color.FgCyan)              // GoodColor represents solid progress.
	FairColor      = color.New(color.FgYellow)            // FairColor represents standard caution, not bold.
	WeakColor      = color.New(color.FgRed, color.Bold)   // WeakColor represents a topic that needs review.

	PositiveColor = color.New(color.FgGreen) // PositiveColor marks correct answers.
	NegativeColor = color.New(color.FgRed)   // NegativeColor marks incorrect answers.
)

// GetPlainLabel returns a plain text label for an accuracy percentage.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(accuracy float64) string {
	switch {
	case accuracy >= 80:
		return ExcellentValue
	case accuracy >= 60:
		return GoodValue
	case accuracy >= 40:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(accuracy float64) string {
	text := GetPlainLabel(accuracy)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// ColorForRole returns the console color of a series role.
func ColorForRole(role schema.ColorRole) *color.Color {
	if role == schema.NegativeRole {
		return NegativeColor
	}
	return PositiveColor
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for attempt storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".studytrack_store.db"
	}
	return filepath.Join(homeDir, ".studytrack_store.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "y":
		return true, nil
	case "no", "false", "0", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
