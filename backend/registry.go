// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/gogpu/rlgl"
)

// EnvBackend names the environment variable that overrides the choice of
// Default. Its value is a registered backend name.
const EnvBackend = "RLGL_BACKEND"

// Factory creates a new, uninitialized backend instance.
type Factory func() rlgl.Backend

// entry is one registered backend. Lower ranks are preferred by Default.
type entry struct {
	name    string
	rank    int
	factory Factory
}

// unranked sorts after every built-in backend.
const unranked = 1 << 16

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// rankOf places hardware backends ahead of the software PICA200 model.
func rankOf(name string) int {
	switch name {
	case BackendWGPU:
		return 0
	case BackendOpenGL:
		return 1
	case BackendPica:
		return 2
	}
	return unranked
}

// Register makes factory available under name, replacing an earlier
// registration. Backend packages call it from init.
func Register(name string, factory Factory) {
	mu.Lock()
	entries[name] = entry{name: name, rank: rankOf(name), factory: factory}
	mu.Unlock()
}

// Unregister removes name from the registry.
func Unregister(name string) {
	mu.Lock()
	delete(entries, name)
	mu.Unlock()
}

// ranked returns the entries in preference order, ties broken by name.
func ranked() []entry {
	mu.RLock()
	list := make([]entry, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	mu.RUnlock()

	slices.SortFunc(list, func(a, b entry) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return list
}

// Available returns the registered names in the order Default tries them.
func Available() []string {
	list := ranked()
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.name
	}
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[name]
	return ok
}

// Get creates the backend registered under name.
func Get(name string) (rlgl.Backend, error) {
	mu.RLock()
	e, ok := entries[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return e.create()
}

func (e entry) create() (rlgl.Backend, error) {
	b := e.factory()
	if b == nil {
		return nil, fmt.Errorf("%w: %q factory returned nil", ErrBackendNotAvailable, e.name)
	}
	return b, nil
}

// Default creates the preferred backend. When RLGL_BACKEND is set only
// that backend is considered. Otherwise backends are tried in the order
// of Available and the first factory returning an instance wins.
func Default() (rlgl.Backend, error) {
	if name := os.Getenv(EnvBackend); name != "" {
		return Get(name)
	}
	for _, e := range ranked() {
		if b, err := e.create(); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: no backend registered", ErrBackendNotAvailable)
}

// NewContext creates an rlgl context on the default backend.
func NewContext(width, height int, opts ...rlgl.ContextOption) (*rlgl.Context, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return rlgl.New(width, height, append([]rlgl.ContextOption{rlgl.WithBackend(b)}, opts...)...)
}
