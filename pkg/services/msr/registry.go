package msr

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/vertekal/msrsync/pkg/services/config"
)

// Registry manages the report definitions an update run can target
type Registry interface {
	// Register adds a new report definition
	Register(def Definition) error
	// Get returns the definition for the given report id
	Get(id string) (Definition, error)
	// ListReports returns the registered report ids in sorted order
	ListReports() []string
}

type registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates a registry holding the given definitions
func NewRegistry(defs ...Definition) (Registry, error) {
	r := &registry{
		defs: make(map[string]Definition),
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewRegistryFromSettings compiles and registers every configured report
func NewRegistryFromSettings(settings config.Settings) (Registry, error) {
	r := &registry{
		defs: make(map[string]Definition),
	}
	for _, rc := range settings.Reports {
		def, err := CompileDefinition(rc)
		if err != nil {
			return nil, err
		}
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("report id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("report %q is already registered", def.ID)
	}

	r.defs[def.ID] = def
	return nil
}

func (r *registry) Get(id string) (Definition, error) {
	r.mu.RLock()
	def, exists := r.defs[id]
	r.mu.RUnlock()

	if !exists {
		return Definition{}, fmt.Errorf("report %q is not registered", id)
	}

	return def, nil
}

func (r *registry) ListReports() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := lo.Keys(r.defs)
	sort.Strings(ids)
	return ids
}
