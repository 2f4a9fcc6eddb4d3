package sources

import (
	"fmt"
	"sync"
)

var (
	registry = make(map[string]FetcherFactory)
	mu       sync.RWMutex
)

// Register adds a fetcher factory to the registry
func Register(name string, factory FetcherFactory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = factory
}

// Create creates a new fetcher instance by name
func Create(fetcherType, name string, config map[string]interface{}) (Fetcher, error) {
	mu.RLock()
	defer mu.RUnlock()

	key := fmt.Sprintf("%s.%s", fetcherType, name)
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown fetcher: %s", key)
	}

	return factory(config)
}

// List returns all registered fetcher names
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
