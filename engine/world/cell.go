package world

// On-screen footprint of a single render cell (the sprite a block projects
// to). The 2:1 width/depth ratio gives the dimetric look; height is the
// visible side of a cell.
const (
	CellViewWidth  = 200
	CellViewDepth  = 100
	CellViewHeight = 122

	CellViewWidth2  = CellViewWidth / 2
	CellViewDepth2  = CellViewDepth / 2
	CellViewHeight2 = CellViewHeight / 2
)

// Game-space edge lengths. A cell's screen diagonal equals its view width;
// the edge is diagonal/sqrt(2).
const (
	GameDiagLength  = CellViewWidth
	GameDiagLength2 = GameDiagLength / 2
	GameEdgeLength  = 141 // GameDiagLength / sqrt(2), truncated
	GameEdgeLength2 = GameEdgeLength / 2
)

// Projection factors used to fold game-space Y and Z into view-space Y.
const (
	ProjectionFactorY = float32(CellViewDepth2) / float32(GameDiagLength2)
	ProjectionFactorZ = float32(CellViewHeight) / float32(GameEdgeLength)
)

// Chunk grid dimensions in blocks. X and Y are the streaming plane; Z is the
// world height.
const (
	ChunkBlocksX = 16
	ChunkBlocksY = 64
	ChunkBlocksZ = 10
)

// Chunk extents in view-space pixels. Depth uses the half cell because
// game-space Y is compressed by ProjectionFactorY on screen.
const (
	ChunkViewWidth = ChunkBlocksX * CellViewWidth
	ChunkViewDepth = ChunkBlocksY * CellViewDepth2
)

// Chunk extents in game-space units. Depth uses the half diagonal so that
// ChunkGameDepth * ProjectionFactorY == ChunkViewDepth and Point.ChunkY
// lands in the same chunk the paging math computes from view space.
const (
	ChunkGameWidth = ChunkBlocksX * GameDiagLength
	ChunkGameDepth = ChunkBlocksY * GameDiagLength2
)
