package quest

import "sort"

// Engine owns the per-player progress table and the global quest state,
// evaluates availability against the injected catalog, and reacts to
// gameplay events. It is exclusively owned by one game session; all
// operations are synchronous.
type Engine struct {
	catalog  *Catalog
	progress map[string]*Progress
	global   *GlobalState
}

// NewEngine creates an engine over an immutable catalog with empty
// progress and fresh global state.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{
		catalog:  catalog,
		progress: make(map[string]*Progress),
		global:   NewGlobalState(),
	}
}

// Catalog returns the injected quest catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Global returns the global quest state.
func (e *Engine) Global() *GlobalState {
	return e.global
}

// Progress returns the progress record for a quest, if the player has
// ever started it.
func (e *Engine) Progress(questID string) (*Progress, bool) {
	p, ok := e.progress[questID]
	return p, ok
}

// ActiveQuestIDs returns the IDs of quests currently in progress, sorted
// for deterministic iteration.
func (e *Engine) ActiveQuestIDs() []string {
	var ids []string
	for id, p := range e.progress {
		if p.Status == StatusInProgress {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// CompletedQuestIDs returns the IDs of completed quests, sorted.
func (e *Engine) CompletedQuestIDs() []string {
	var ids []string
	for id, p := range e.progress {
		if p.Status == StatusCompleted {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Snapshot exposes the progress table and global state for persistence.
// The save store serializes these as opaque structured data.
func (e *Engine) Snapshot() (map[string]*Progress, *GlobalState) {
	return e.progress, e.global
}

// Restore replaces the progress table and global state from a save.
// Nil arguments reset to empty state.
func (e *Engine) Restore(progress map[string]*Progress, global *GlobalState) {
	if progress == nil {
		progress = make(map[string]*Progress)
	}
	if global == nil {
		global = NewGlobalState()
	}
	e.progress = progress
	e.global = global
}
