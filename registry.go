package scopelog

import (
	"sync"

	"github.com/google/uuid"
)

// ScopeRegistry tracks the scopes that are currently entered and the nesting
// level each one holds. It stores scope ids only, so a registered scope is
// never kept alive by the registry.
//
// A registry is owned by a Service. Several services share nesting state only
// when the same registry is injected into each of them.
type ScopeRegistry struct {
	mu     sync.Mutex
	levels map[uuid.UUID]int
	owners map[int]uuid.UUID
	depth  int
}

// NewScopeRegistry returns an empty registry.
func NewScopeRegistry() *ScopeRegistry {
	return &ScopeRegistry{
		levels: make(map[uuid.UUID]int),
		owners: make(map[int]uuid.UUID),
	}
}

// Register adds id to the active set and returns its level together with the
// presence bitmap for levels 1..level. Registering an active id returns its
// current level and bitmap unchanged.
//
// A new scope receives the lowest level no active scope holds. Without gaps
// that is the deepest active level + 1.
func (r *ScopeRegistry) Register(id uuid.UUID) (int, []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if level, ok := r.levels[id]; ok {
		return level, r.stackLocked(level)
	}

	level := 1
	for {
		if _, taken := r.owners[level]; !taken {
			break
		}
		level++
	}

	r.levels[id] = level
	r.owners[level] = id
	if level > r.depth {
		r.depth = level
	}
	return level, r.stackLocked(level)
}

// Unregister removes id from the active set. The returned bitmap covers levels
// 1..level as they stood at removal, with the leaving scope's own level still
// marked. ok is false when id was not active.
func (r *ScopeRegistry) Unregister(id uuid.UUID) (level int, stack []bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	level, ok = r.levels[id]
	if !ok {
		return 0, nil, false
	}

	stack = r.stackLocked(level)
	delete(r.levels, id)
	delete(r.owners, level)

	if level == r.depth {
		for r.depth > 0 {
			if _, taken := r.owners[r.depth]; taken {
				break
			}
			r.depth--
		}
	}
	return level, stack, true
}

// Exists reports whether some active scope holds exactly level.
func (r *ScopeRegistry) Exists(level int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.owners[level]
	return ok
}

// Level returns the level held by id, or 0 when id is not active.
func (r *ScopeRegistry) Level(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels[id]
}

// Depth returns the deepest active level, 0 when no scope is active.
func (r *ScopeRegistry) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

// Len returns the number of active scopes.
func (r *ScopeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.levels)
}

// Snapshot returns the presence bitmap for levels 1..Depth().
func (r *ScopeRegistry) Snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stackLocked(r.depth)
}

// Stack returns the presence bitmap for levels 1..upTo.
func (r *ScopeRegistry) Stack(upTo int) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stackLocked(upTo)
}

func (r *ScopeRegistry) stackLocked(upTo int) []bool {
	if upTo <= 0 {
		return nil
	}
	stack := make([]bool, upTo)
	for i := range stack {
		_, stack[i] = r.owners[i+1]
	}
	return stack
}
