package platform

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrUnknownBackend is returned by Create for an unregistered backend ID.
var ErrUnknownBackend = errors.New("platform: unknown backend")

// Options are handed to a backend factory.
type Options struct {
	Logger *log.Logger

	// SSHAddress and HostKeyPath configure the "ssh" backend.
	SSHAddress  string
	HostKeyPath string
}

// Factory creates a new instance of a backend.
type Factory func(opts Options) (Backend, error)

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID          string
	Description string
}

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend package's init() function.
// Panics if a backend with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("platform: backend %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for id := range factories {
		result = append(result, BackendInfo{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a backend by its ID.
func Create(id string, opts Options) (Backend, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, id)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return f(opts)
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
