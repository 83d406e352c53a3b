package symbols

import (
	"velab/internal/source"
)

// InstanceBody is the elaborated result of instantiating a Definition with
// one concrete set of resolved parameter values: its own scope (a fresh
// copy of the definition's member declarations, reparameterized), the
// resolved parameters, and the path that produced it.
type InstanceBody struct {
	Definition DefinitionID
	Scope      ScopeID
	Params     []ParamValue
	HierPath   []source.StringID // root-relative instance path, e.g. [top, sub, leaf]
	CacheKey   string
}

// InstanceTable owns every elaborated InstanceBody plus the cache keyed on
// (definition, parameter tuple, port-connection shape). Caching may be
// disabled per CompilationOptions.DisableInstanceCaching, in which case
// Lookup always misses.
type InstanceTable struct {
	bodies  []InstanceBody
	cache   map[string]InstanceBodyID
	disable bool
}

// NewInstanceTable creates an empty table. disableCaching mirrors
// CompilationOptions.DisableInstanceCaching.
func NewInstanceTable(disableCaching bool) *InstanceTable {
	return &InstanceTable{
		bodies:  []InstanceBody{{}},
		cache:   make(map[string]InstanceBodyID),
		disable: disableCaching,
	}
}

// Lookup returns a cached body for key, or NoInstanceBodyID on a miss (always
// a miss when caching is disabled).
func (it *InstanceTable) Lookup(key string) InstanceBodyID {
	if it.disable {
		return NoInstanceBodyID
	}
	return it.cache[key]
}

// Add registers a newly elaborated body under key (a no-op on the cache
// side when caching is disabled; the body is still stored so it can be
// addressed by id).
func (it *InstanceTable) Add(key string, body InstanceBody) InstanceBodyID {
	body.CacheKey = key
	id := InstanceBodyID(len(it.bodies))
	it.bodies = append(it.bodies, body)
	if !it.disable {
		it.cache[key] = id
	}
	return id
}

// Get returns the body for id, or nil if id is invalid.
func (it *InstanceTable) Get(id InstanceBodyID) *InstanceBody {
	if !id.IsValid() || int(id) >= len(it.bodies) {
		return nil
	}
	return &it.bodies[id]
}

// Len reports the number of elaborated instance bodies, excluding the
// sentinel. Useful for diagnosing runaway instantiation against
// max_instance_depth-style budgets one level up, in the compilation driver.
func (it *InstanceTable) Len() int { return len(it.bodies) - 1 }
