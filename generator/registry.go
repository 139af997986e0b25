// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Generator)
)

// Register adds a generator to the registry. It is meant to be called from
// init functions and panics on a duplicate name.
func Register(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	name := g.Metadata().Name
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("generator %q already registered", name))
	}
	registry[name] = g
}

// Get returns a generator by name.
func Get(name string) (Generator, bool) {
	mu.RLock()
	defer mu.RUnlock()
	g, ok := registry[name]
	return g, ok
}

// Lookup is like Get but reports an unknown name as an error that lists
// the registered generators.
func Lookup(name string) (Generator, error) {
	if g, ok := Get(name); ok {
		return g, nil
	}
	err := errors.Newf("unknown generator %q", name)
	return nil, errors.WithHintf(err, "available generators: %s", strings.Join(List(), ", "))
}

// List returns all registered generator names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// All returns all registered generators, sorted by name.
func All() []Generator {
	names := List()
	mu.RLock()
	defer mu.RUnlock()
	gens := make([]Generator, 0, len(names))
	for _, name := range names {
		gens = append(gens, registry[name])
	}
	return gens
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Generator)
}
