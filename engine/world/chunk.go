package world

// Chunk is one streamed partition of the world grid. The camera only cares
// about presence; cell contents live with the store implementation.
type Chunk struct {
	X, Y int
}

// ChunkStore is the streaming boundary the camera drives. Implementations
// must be safe for concurrent access: several cameras (split-screen) may
// query and request loads on the same store.
type ChunkStore interface {
	// Chunk returns the loaded chunk at the given grid coordinate, or nil.
	Chunk(x, y int) *Chunk
	// LoadChunk requests a load. Loading an already-present chunk must be a
	// no-op inside the store; callers do not re-check.
	LoadChunk(x, y int)
	// Center returns the map's center point, used as the default camera
	// anchor.
	Center() Point
}
