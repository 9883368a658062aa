// Package strategy provides the built-in agent behaviors and a registry that
// maps wire-level strategy tags to constructors. Each agent gets its own
// strategy instance so behaviors can keep per-agent state.
package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andronedrei/arena-battle/internal/sim"
)

// Constructor builds a fresh strategy instance for one agent.
type Constructor func() sim.Strategy

var (
	mu       sync.RWMutex
	registry = make(map[string]Constructor)
)

// Register adds a constructor under a tag. Registering a duplicate tag
// panics; tags are wired at init time and collisions are programmer error.
func Register(tag string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[tag]; exists {
		panic(fmt.Sprintf("strategy %q registered twice", tag))
	}
	registry[tag] = ctor
}

// New instantiates the strategy registered under the tag.
func New(tag string) (sim.Strategy, error) {
	mu.RLock()
	ctor, ok := registry[tag]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", tag)
	}
	return ctor(), nil
}

// Names returns the registered tags sorted for stable listings.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for tag := range registry {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}
