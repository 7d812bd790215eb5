package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
)

// headerWriter receives headers and progress lines. Stdout is kept for results.
var headerWriter io.Writer = os.Stderr

// showHeader reports whether a header may be printed for this call.
// Machine-readable output never carries one.
func showHeader(ctx context.Context, cfg *contract.Config) bool {
	if shouldSuppressHeader(ctx) {
		return false
	}
	return cfg.Output == "" || cfg.Output == schema.TextOut
}

// logViewHeader prints a concise, 2-line header for a view.
func logViewHeader(ctx context.Context, cfg *contract.Config, view string, start, end time.Time) {
	if !showHeader(ctx, cfg) {
		return
	}

	filter := "all subjects"
	if cfg.Subject != "" {
		filter = cfg.Subject
		if cfg.Topic != "" {
			filter += " / " + cfg.Topic
		}
	} else if cfg.Topic != "" {
		filter = "topic " + cfg.Topic
	}
	if cfg.OnlyIncorrect {
		filter += ", incorrect only"
	}

	rangeText := "all time"
	if !start.IsZero() {
		rangeText = fmt.Sprintf("%s → %s", start.Format(contract.DateFormat), end.Format(contract.DateFormat))
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(headerWriter, "🔎 User: %s (View: %s, %s)\n", cfg.UserID, view, filter)
		_, _ = fmt.Fprintf(headerWriter, "📅 Range: %s\n", rangeText)
	} else {
		_, _ = fmt.Fprintf(headerWriter, "User: %s (View: %s, %s)\n", cfg.UserID, view, filter)
		_, _ = fmt.Fprintf(headerWriter, "Range: %s\n", rangeText)
	}
}

// logStep prints a progress or success line, with an emoji when enabled.
func logStep(cfg *contract.Config, emoji, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cfg.UseEmojis {
		msg = emoji + " " + msg
	}
	_, _ = fmt.Fprintln(headerWriter, msg)
}
