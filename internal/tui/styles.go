package tui

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the JAMBOREE logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "J A M B O R E E" as a flowing wave of pink light,
// deep plum -> bright pink. The light scheme flips to a darker ink so the wave
// stays visible on pale terminals.
func renderShimmerLogo(frame int, scheme string) string {
	const text = "JAMBOREE"
	n := len(text)

	// Gradient endpoints per scheme.
	r0, g0, b0 := 90, 24, 54    // deep plum
	r1, g1, b1 := 240, 101, 149 // bright pink
	if scheme == "light" {
		r0, g0, b0 = 140, 30, 80
		r1, g1, b1 = 200, 40, 110
	}

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(float64(r0) + b*float64(r1-r0))
		g := clampByte(float64(g0) + b*float64(g1-g0))
		bl := clampByte(float64(b0) + b*float64(b1-b0))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent — the party pink
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f06595")).
			Bold(true)

	softAccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#faa2c1"))

	// Voting
	votedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f06595"))

	progressFillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f06595"))

	progressRestStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Supplies
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fa5252")).
			Bold(true)

	claimedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	// Inline inputs
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f06595")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Notifications and section headers
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#faa2c1")).
			Italic(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4ec")).
				Bold(true).
				Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fa5252"))

	adminZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f06595")).
			Padding(0, 1)
)

// userPalette colors guest names; a username maps to a stable color by hash.
var userPalette = []lipgloss.Color{
	lipgloss.Color("#f06595"), // pink
	lipgloss.Color("#4ade80"), // green
	lipgloss.Color("#60a0e0"), // blue
	lipgloss.Color("#f0944a"), // orange
	lipgloss.Color("#c084e0"), // violet
	lipgloss.Color("#3ecce4"), // cyan
	lipgloss.Color("#d4a844"), // gold
}

// UserStyle returns a stable colored style for a username.
func UserStyle(username string) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(username)) //nolint:errcheck // fnv never errors
	c := userPalette[h.Sum32()%uint32(len(userPalette))]
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
