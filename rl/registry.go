package rl

import (
	"fmt"
	"sort"
	"sync"

	"balance/engine"
)

// Factory builds a named environment on top of an engine session.
type Factory func(e engine.Engine) (*Env, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes an environment available under name, replacing any previous
// registration.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("rl: nil factory for " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Make builds the environment registered under name.
func Make(name string, e engine.Engine) (*Env, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no environment registered as %q", name)
	}
	return factory(e)
}

// Registered lists the registered environment names.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
