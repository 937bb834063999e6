package blockchain

import (
	"fmt"
	"sync"

	"wallet-sentinel.backend/internal/domain/entities"
)

// AdapterFactory builds an adapter for a chain on first use
type AdapterFactory func(chain entities.ChainID) (Adapter, error)

// Registry holds one adapter per chain. Adapters are expensive to construct,
// so creation is lazy with double-checked locking; the registry itself is
// built once at startup and injected where needed.
type Registry struct {
	factory  AdapterFactory
	adapters map[entities.ChainID]Adapter
	mu       sync.RWMutex
}

// NewRegistry creates an adapter registry backed by the given factory
func NewRegistry(factory AdapterFactory) *Registry {
	return &Registry{
		factory:  factory,
		adapters: make(map[entities.ChainID]Adapter),
	}
}

// Get returns the cached adapter for chain, lazily creating it
func (r *Registry) Get(chain entities.ChainID) (Adapter, error) {
	if !chain.IsSupported() {
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}

	r.mu.RLock()
	adapter, ok := r.adapters[chain]
	r.mu.RUnlock()
	if ok {
		return adapter, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double check
	if adapter, ok := r.adapters[chain]; ok {
		return adapter, nil
	}

	adapter, err := r.factory(chain)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s adapter: %w", chain, err)
	}

	r.adapters[chain] = adapter
	return adapter, nil
}

// Register injects/overrides the cached adapter for a chain.
// Useful for deterministic unit tests.
func (r *Registry) Register(chain entities.ChainID, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[chain] = adapter
}
