package sorting

import "sort"

// DepthValueSort orders visible objects by a single depth value per object:
// descending view-space Y, so the back of the scene renders first.
type DepthValueSort struct {
	storageCache
	frustum Frustum
	visible []Object // reused between frames
}

func NewDepthValueSort(f Frustum, s Storage) *DepthValueSort {
	return &DepthValueSort{storageCache: newStorageCache(s), frustum: f}
}

// cullAndSort refreshes the visible list for the current frustum. Runs every
// call because visibility follows the camera even when storage is unchanged.
func (d *DepthValueSort) cullAndSort() []Object {
	d.visible = d.visible[:0]
	for _, o := range d.snapshot() {
		if d.frustum.InViewFrustum(o.Position()) {
			d.visible = append(d.visible, o)
		}
	}
	sort.SliceStable(d.visible, func(i, j int) bool {
		return depth(d.visible[i]) > depth(d.visible[j])
	})
	return d.visible
}

func (d *DepthValueSort) RenderSorted() {
	for _, o := range d.cullAndSort() {
		o.Render()
	}
}

func (d *DepthValueSort) CreateDepthList(out []Object) []Object {
	return append(out, d.cullAndSort()...)
}
