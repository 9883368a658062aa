package strategy

import (
	"sort"
	"testing"

	"github.com/andronedrei/arena-battle/internal/sim"
)

func TestNewUnknownTag(t *testing.T) {
	if _, err := New("no-such-strategy"); err == nil {
		t.Fatal("unknown tag should error")
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, tag := range []string{"random", "hunter", "defender", "koth", "ctf", "ctf-defender"} {
		s, err := New(tag)
		if err != nil {
			t.Fatalf("New(%q): %v", tag, err)
		}
		if s == nil {
			t.Fatalf("New(%q) returned nil", tag)
		}
	}
}

func TestNewReturnsDistinctInstances(t *testing.T) {
	a, err := New("hunter")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("hunter")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("each agent must get its own strategy instance")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no strategies registered")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names() = %v, want sorted", names)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration should panic")
		}
	}()
	Register("hunter", func() sim.Strategy { return nil })
}
