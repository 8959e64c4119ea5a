// Package sorting provides the replaceable draw-order strategies the camera
// dispatches to. A strategy owns a snapshot of the render storage and is
// told through the event bus when that snapshot goes stale.
package sorting

import (
	"github.com/quarryengine/quarry/engine/events"
	"github.com/quarryengine/quarry/engine/world"
)

// Object is one renderable scene object. Render draws it through whatever
// batch the current view has bound.
type Object interface {
	Position() world.Point
	Render()
}

// Storage supplies the current renderable objects, already restricted to
// loaded chunks.
type Storage interface {
	Objects() []Object
}

// Frustum is the visibility test a strategy culls against; the camera
// implements it.
type Frustum interface {
	InViewFrustum(p world.Point) bool
}

// Sorter is the strategy contract: render straight through the batch, or
// produce an explicit ordered list for multi-pass replay and debugging.
type Sorter interface {
	// RenderSorted culls, orders and renders the storage's objects.
	RenderSorted()
	// CreateDepthList appends the ordered visible objects to out and returns
	// it, without rendering.
	CreateDepthList(out []Object) []Object

	events.Listener
}

// Strategy ids, selected through the depthSorter cvar.
const (
	NoSortID         = 0
	TopologicalID    = 1
	DepthValueSortID = 2
)

// New instantiates the strategy for id. Unknown ids fall back to NoSort.
func New(id int, f Frustum, s Storage) Sorter {
	switch id {
	case TopologicalID:
		return NewTopologicalSort(f, s)
	case DepthValueSortID:
		return NewDepthValueSort(f, s)
	default:
		return NewNoSort(f, s)
	}
}

// storageCache is the shared snapshot-plus-dirty-flag base. Events flip the
// flag; the next access re-pulls from storage.
type storageCache struct {
	storage Storage
	objs    []Object
	dirty   bool
}

func newStorageCache(s Storage) storageCache {
	return storageCache{storage: s, dirty: true}
}

func (c *storageCache) HandleEvent(events.Topic) {
	c.dirty = true
}

func (c *storageCache) snapshot() []Object {
	if c.dirty {
		c.objs = c.storage.Objects()
		c.dirty = false
	}
	return c.objs
}

// depth is the back-to-front key: larger view-space Y sits further back and
// must render first.
func depth(o Object) float32 {
	return o.Position().ViewSpcY()
}
