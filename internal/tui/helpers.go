package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jamboree-events/jamboree/pkg/domain"
)

// formatDate renders a date option value with its relative distance,
// e.g. "Fri, Sep 12 · 18:00 (2 weeks from now)".
func formatDate(t time.Time) string {
	return t.Format("Mon, Jan 2 · 15:04") + " (" + humanize.Time(t) + ")"
}

// formatPercent renders a vote share for display. Zero totals come through as
// 0 thanks to domain.VotePercent, so this never prints NaN.
func formatPercent(count, total int) string {
	return fmt.Sprintf("%.0f%%", domain.VotePercent(count, total))
}

// progressBar renders a vote share as a fixed-width bar.
func progressBar(count, total, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(domain.VotePercent(count, total) / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return progressFillStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
}

// voterList renders vote list members as colored names, truncated past five.
func voterList(votes []string) string {
	if len(votes) == 0 {
		return metaStyle.Render("no votes yet")
	}
	shown := votes
	more := 0
	if len(shown) > 5 {
		more = len(shown) - 5
		shown = shown[:5]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, v := range shown {
		parts = append(parts, UserStyle(v).Render(v))
	}
	if more > 0 {
		parts = append(parts, metaStyle.Render(fmt.Sprintf("+%d", more)))
	}
	return strings.Join(parts, dimStyle.Render(", "))
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// joinURL builds the shareable guest link for a party.
func joinURL(webURL, partyName string) string {
	return webURL + "/parties/join/" + partyName
}

// adminURL builds the privileged admin link for a party.
func adminURL(webURL, adminCode string) string {
	return webURL + "/parties/admin/" + adminCode
}
