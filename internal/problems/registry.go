// Package problems holds the registry of named optimization problems the
// harness grades against. The harness only reads the registry; problem
// definitions register themselves at init time.
package problems

import (
	"sort"

	"github.com/copyleftdev/GAUNTLET/internal/harness"
)

var registry = map[string]*harness.Problem{}

// Register adds p to the registry. Registering two problems under the
// same name is a programming error and panics at init time.
func Register(p *harness.Problem) {
	if _, dup := registry[p.Name]; dup {
		panic("problems: duplicate registration of " + p.Name)
	}
	registry[p.Name] = p
}

// Lookup returns the problem registered under name.
func Lookup(name string) (*harness.Problem, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns all registered problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
