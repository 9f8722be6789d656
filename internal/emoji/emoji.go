// Package emoji works with unified codepoint strings as the party store emits
// them (e.g. "1f525", "1f1e8-1f1ed") and renders them for the terminal.
package emoji

import (
	"math/rand"
	"strconv"
	"strings"
)

// defaults is the pool for freshly created supplies, leaning on food, drink
// and activity emoji the way a party supply list tends to.
var defaults = []string{
	"1f355", // pizza
	"1f354", // hamburger
	"1f37a", // beer
	"1f377", // wine
	"1f382", // cake
	"1f36b", // chocolate
	"1f96a", // sandwich
	"1f957", // salad
	"1f9c3", // beverage box
	"1f3b6", // music notes
	"1f3b2", // game die
	"1f388", // balloon
	"1f389", // party popper
	"1f525", // fire
	"1f9ca", // ice
	"1f37f", // popcorn
	"1f952", // cucumber
	"1f9fb", // roll of paper
	"1f56f", // candle
	"26fa",  // tent
}

// Random returns a random default emoji code using rng.
func Random(rng *rand.Rand) string {
	return defaults[rng.Intn(len(defaults))]
}

// Render converts a unified codepoint string to the emoji itself. Unparseable
// input renders as a neutral package icon rather than garbage.
func Render(unified string) string {
	if unified == "" {
		return "\U0001f4e6"
	}
	var b strings.Builder
	for _, part := range strings.Split(unified, "-") {
		n, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return "\U0001f4e6"
		}
		b.WriteRune(rune(n))
	}
	return b.String()
}
