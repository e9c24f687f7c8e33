package service

import (
	"math/rand/v2"
	"regexp"
	"testing"
)

func TestRandomSlotLabelerFormat(t *testing.T) {
	l := NewRandomSlotLabeler(rand.NewPCG(1, 2))
	re := regexp.MustCompile(`^Level [12] - [A-F](0[1-9]|10)$`)
	for i := 0; i < 500; i++ {
		if label := l.Label(nil); !re.MatchString(label) {
			t.Fatalf("unexpected label %q", label)
		}
	}
}

func TestRandomSlotLabelerDeterministicWithSeed(t *testing.T) {
	a := NewRandomSlotLabeler(rand.NewPCG(42, 42))
	b := NewRandomSlotLabeler(rand.NewPCG(42, 42))
	for i := 0; i < 10; i++ {
		if la, lb := a.Label(nil), b.Label(nil); la != lb {
			t.Fatalf("same seed produced %q and %q", la, lb)
		}
	}
}
