package sorting

import "github.com/quarryengine/quarry/engine/world"

// TopologicalSort orders objects by an explicit behind-relation instead of a
// scalar depth: object a must draw before b when their projected footprints
// overlap and a sits further back. The relation only compares overlapping
// pairs, which keeps the order stable for objects whose depth values tie.
type TopologicalSort struct {
	storageCache
	frustum Frustum

	objs    []Object
	prereq  [][]int // prereq[j] = indices that must draw before j
	order   []int
	visited []bool
	built   bool
}

func NewTopologicalSort(f Frustum, s Storage) *TopologicalSort {
	return &TopologicalSort{storageCache: newStorageCache(s), frustum: f}
}

// footprintsOverlap reports whether two objects can occlude each other on
// screen.
func footprintsOverlap(a, b world.Point) bool {
	dx := a.ViewSpcX() - b.ViewSpcX()
	if dx < 0 {
		dx = -dx
	}
	if dx >= world.CellViewWidth {
		return false
	}
	dy := a.ViewSpcY() - b.ViewSpcY()
	if dy < 0 {
		dy = -dy
	}
	return dy < world.CellViewHeight*2
}

func (t *TopologicalSort) rebuild() {
	t.objs = t.snapshot()
	n := len(t.objs)
	t.prereq = make([][]int, n)
	for i := 0; i < n; i++ {
		pi := t.objs[i].Position()
		for j := i + 1; j < n; j++ {
			pj := t.objs[j].Position()
			if !footprintsOverlap(pi, pj) {
				continue
			}
			// the deeper one draws first
			if pi.ViewSpcY() > pj.ViewSpcY() {
				t.prereq[j] = append(t.prereq[j], i)
			} else if pj.ViewSpcY() > pi.ViewSpcY() {
				t.prereq[i] = append(t.prereq[i], j)
			}
		}
	}

	t.order = make([]int, 0, n)
	t.visited = make([]bool, n)
	for i := 0; i < n; i++ {
		t.visit(i)
	}
	t.built = true
}

// visit emits i after everything that must draw before it. The behind
// relation is derived from a strict scalar comparison, so it is acyclic.
func (t *TopologicalSort) visit(i int) {
	if t.visited[i] {
		return
	}
	t.visited[i] = true
	for _, p := range t.prereq[i] {
		t.visit(p)
	}
	t.order = append(t.order, i)
}

func (t *TopologicalSort) ordered() ([]Object, []int) {
	if t.dirty || !t.built {
		t.rebuild()
	}
	return t.objs, t.order
}

func (t *TopologicalSort) RenderSorted() {
	objs, order := t.ordered()
	for _, i := range order {
		if t.frustum.InViewFrustum(objs[i].Position()) {
			objs[i].Render()
		}
	}
}

func (t *TopologicalSort) CreateDepthList(out []Object) []Object {
	objs, order := t.ordered()
	for _, i := range order {
		if t.frustum.InViewFrustum(objs[i].Position()) {
			out = append(out, objs[i])
		}
	}
	return out
}
