// Package names generates human-readable party codes in the
// adjective-color-animal form, e.g. "brave-red-fox". Codes are friendly to
// say out loud and to type; uniqueness is the store's job, callers retry on
// collision.
package names

import (
	"math/rand"
	"strings"
	"time"
)

var adjectives = []string{
	"brave", "calm", "clever", "cozy", "dandy", "eager", "fancy", "gentle",
	"happy", "jolly", "keen", "lively", "lucky", "merry", "nifty", "proud",
	"quick", "quiet", "snazzy", "sunny", "swift", "tidy", "witty", "zesty",
}

var colors = []string{
	"amber", "aqua", "blue", "coral", "crimson", "gold", "green", "indigo",
	"ivory", "jade", "lilac", "maroon", "olive", "pink", "plum", "red",
	"rose", "silver", "teal", "violet",
}

var animals = []string{
	"badger", "bear", "crane", "deer", "dove", "ferret", "finch", "fox",
	"hare", "heron", "lynx", "marmot", "otter", "owl", "panda", "robin",
	"seal", "stoat", "swan", "wren",
}

// Generator produces random party codes.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the current time.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator returns a deterministic generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh adjective-color-animal code.
func (g *Generator) Generate() string {
	parts := []string{
		adjectives[g.rng.Intn(len(adjectives))],
		colors[g.rng.Intn(len(colors))],
		animals[g.rng.Intn(len(animals))],
	}
	return strings.Join(parts, "-")
}
