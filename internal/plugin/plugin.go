// Package plugin defines the external-collaborator boundary for
// plugin-managed side data ("plugin slot" state): opaque derived
// state, keyed by (plugin_type, settings), computed by running a
// Plugin against a read-only snapshot of the index.
//
// This replaces a reflection-driven "run every registered plugin"
// dispatch with an explicit interface: a Plugin names itself and
// produces a key/value bag from a Snapshot, nothing more.
package plugin

import (
	"context"
	"sync"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/query"
)

// Key identifies a plugin slot. Two plugins with the same Type but
// different Settings are independent slots.
type Key struct {
	Type     string
	Settings string
}

// Snapshot is the read-only view of the index a Plugin runs against.
// The top-level index package satisfies it with an adapter over its
// Index handle (Index.RunPlugin passes one in).
type Snapshot interface {
	Search(ctx context.Context, p query.Predicate) (query.ResultSet, error)
	StoredField(ctx context.Context, documentID int64, field string) (string, bool, error)
}

// Plugin computes derived key/value state from a snapshot of the
// index. Implementations live outside this module — sentiment, topic
// extraction, and similar analyses are external collaborators; this
// package only defines the boundary and runs them.
type Plugin interface {
	Name() string
	Run(ctx context.Context, snap Snapshot) (map[string]string, error)
}

// Registry holds the plugins known to one process, keyed by slot.
// It does not persist anything; persistence of a plugin's output is
// the caller's job (staging a Workspace's plugin state, then
// flushing).
type Registry struct {
	mu      sync.RWMutex
	plugins map[Key]Plugin
}

// NewRegistry returns an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[Key]Plugin)}
}

// Register binds a plugin to a slot, replacing any previous binding.
func (r *Registry) Register(key Key, p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[key] = p
}

// Unregister removes a slot's binding, if any.
func (r *Registry) Unregister(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plugins, key)
}

// Lookup returns the plugin bound to a slot.
func (r *Registry) Lookup(key Key) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[key]
	return p, ok
}

// Run executes the plugin bound to key against snap and returns its
// materialized key/value state. It returns a plugin-missing error if
// no plugin is bound to the slot.
func (r *Registry) Run(ctx context.Context, key Key, snap Snapshot) (map[string]string, error) {
	p, ok := r.Lookup(key)
	if !ok {
		return nil, caterr.New(caterr.PluginMissing, "plugin.Run "+key.Type)
	}
	state, err := p.Run(ctx, snap)
	if err != nil {
		return nil, caterr.Wrapf(caterr.PluginMissing, err, "plugin.Run %s", p.Name())
	}
	return state, nil
}
