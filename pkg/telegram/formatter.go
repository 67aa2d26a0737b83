package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatIngestionSummary renders an ingestion run summary as a Markdown
// message for the ops chat.
func FormatIngestionSummary(added, skipped int, verticals []string, duration time.Duration, sourceErrors []string) string {
	var b strings.Builder

	b.WriteString("*Topline Ingestion Run*\n")
	b.WriteString(fmt.Sprintf("Added: %d | Skipped: %d\n", added, skipped))
	if len(verticals) > 0 {
		b.WriteString(fmt.Sprintf("Verticals: %s\n", strings.Join(verticals, ", ")))
	}
	b.WriteString(fmt.Sprintf("Duration: %s\n", duration.Round(time.Millisecond)))

	if len(sourceErrors) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d source(s) failed:\n", len(sourceErrors)))
		for _, e := range sourceErrors {
			b.WriteString(fmt.Sprintf("- %s\n", e))
		}
	}

	return b.String()
}
