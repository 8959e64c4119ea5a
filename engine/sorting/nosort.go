package sorting

// NoSort renders objects in storage order. Cheap, and correct whenever the
// storage already iterates back-to-front (chunk scan order).
type NoSort struct {
	storageCache
	frustum Frustum
}

func NewNoSort(f Frustum, s Storage) *NoSort {
	return &NoSort{storageCache: newStorageCache(s), frustum: f}
}

func (n *NoSort) RenderSorted() {
	for _, o := range n.snapshot() {
		if n.frustum.InViewFrustum(o.Position()) {
			o.Render()
		}
	}
}

func (n *NoSort) CreateDepthList(out []Object) []Object {
	for _, o := range n.snapshot() {
		if n.frustum.InViewFrustum(o.Position()) {
			out = append(out, o)
		}
	}
	return out
}
