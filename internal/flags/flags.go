// Package flags provides read-only feature flags loaded from the config file.
// Unknown flags are reported as disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/xselect/internal/log"
)

const (
	// FlagTypeAhead makes typing in an open list move focus to the closest
	// matching item.
	FlagTypeAhead = "type-ahead"

	// FlagHotReload applies config file edits to the running form.
	FlagHotReload = "hot-reload"
)

// defaults are used for known flags the config does not mention.
var defaults = map[string]bool{
	FlagTypeAhead: false,
	FlagHotReload: true,
}

// Registry holds feature flag state. It is read-only after New.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map layered over the known defaults.
// A nil map yields the defaults alone.
func New(flags map[string]bool) *Registry {
	merged := maps.Clone(defaults)
	maps.Copy(merged, flags)
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

// Known lists the flag names xselect understands, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}
