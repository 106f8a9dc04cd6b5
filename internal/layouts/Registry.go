package layouts

import (
	"github.com/Mshel/micromouse/internal/maze"
)

const (
	DefaultSize = 16

	wilsonSeed    = 2012
	wilsonAltSeed = 2013
)

// Built-in layout ids, in registration order.
const (
	LayoutWilson maze.LayoutID = iota
	LayoutOpen
	LayoutSerpentine
	LayoutWilsonAlt
)

type entry struct {
	name   string
	layout maze.Layout
}

// Registry is a named, id-indexed maze.LayoutSource.
type Registry struct {
	entries []entry
}

// NewRegistry returns a registry holding the built-in 16x16 layouts.
// LayoutWilson comes first, so it is what unknown ids fall back to.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register("wilson", Wilson(DefaultSize, wilsonSeed))
	r.Register("open", Open(DefaultSize))
	r.Register("serpentine", Serpentine(DefaultSize))
	r.Register("wilson-alt", Wilson(DefaultSize, wilsonAltSeed))
	return r
}

// Register appends a layout and returns its id. A name already in use is
// shadowed for ByName lookups.
func (r *Registry) Register(name string, layout maze.Layout) maze.LayoutID {
	r.entries = append(r.entries, entry{name: name, layout: layout})
	return maze.LayoutID(len(r.entries) - 1)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Layout(id maze.LayoutID) maze.Layout {
	if id < 0 || int(id) >= len(r.entries) {
		return nil
	}
	return r.entries[id].layout
}

func (r *Registry) Name(id maze.LayoutID) string {
	if id < 0 || int(id) >= len(r.entries) {
		return ""
	}
	return r.entries[id].name
}

// ByName finds the most recently registered layout called name.
func (r *Registry) ByName(name string) (maze.LayoutID, bool) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].name == name {
			return maze.LayoutID(i), true
		}
	}
	return 0, false
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	return names
}
