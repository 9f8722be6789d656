package names

import (
	"strings"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 50; i++ {
		name := g.Generate()
		parts := strings.Split(name, "-")
		if len(parts) != 3 {
			t.Fatalf("Generate() = %q, want three dash-separated parts", name)
		}
		for _, p := range parts {
			if p == "" || p != strings.ToLower(p) {
				t.Fatalf("Generate() = %q, want lowercase non-empty parts", name)
			}
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeededGenerator(42)
	b := NewSeededGenerator(42)
	for i := 0; i < 10; i++ {
		if got, want := a.Generate(), b.Generate(); got != want {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, got, want)
		}
	}
}

func TestGenerateEventuallyVaries(t *testing.T) {
	g := NewSeededGenerator(1)
	first := g.Generate()
	for i := 0; i < 100; i++ {
		if g.Generate() != first {
			return
		}
	}
	t.Fatalf("100 generations all produced %q", first)
}
