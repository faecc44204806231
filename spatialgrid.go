package talon

import (
	"math"
	"sort"

	"github.com/akmonengine/talon/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey addresses one cell of the uniform grid
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the bodies overlapping it
type Cell struct {
	bodyIndices []int
}

// SpatialGrid is a uniform hashed grid for broad-phase pair finding. Bodies
// are inserted into every cell their AABB touches; candidate pairs are read
// back per cell, deduplicated by index order.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid; numCells is rounded up to a power of two
// so cell hashing can mask instead of mod
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert registers a body in every cell its AABB occupies
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.RigidBody) {
	aabb := body.Shape.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})

				sg.cells[cellIdx].bodyIndices = append(
					sg.cells[cellIdx].bodyIndices,
					bodyIndex,
				)
			}
		}
	}
}

// Clear empties all cells, keeping their storage
func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

// SortCells orders body indices within each cell for deterministic pair order
func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs walks each body's cells and collects AABB-overlapping pairs.
// Pairs are emitted once: only against bodies with a higher index, and at
// most once per body even when the pair shares several cells.
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody) []CollisionPair {
	pairs := make([]CollisionPair, 0, len(bodies)/2)
	seen := make([]bool, len(bodies))

	for bodyIdx := 0; bodyIdx < len(bodies); bodyIdx++ {
		bodyA := bodies[bodyIdx]

		for i := range seen {
			seen[i] = false
		}

		aabb := bodyA.Shape.GetAABB()
		minCell := sg.worldToCell(aabb.Min)
		maxCell := sg.worldToCell(aabb.Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					cellIdx := sg.hashCell(CellKey{x, y, z})

					for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
						if otherIdx <= bodyIdx || seen[otherIdx] {
							continue
						}
						seen[otherIdx] = true

						bodyB := bodies[otherIdx]

						_, aIsPlane := bodyA.Shape.(*actor.Plane)
						_, bIsPlane := bodyB.Shape.(*actor.Plane)
						if aIsPlane || bIsPlane {
							pairs = append(pairs, CollisionPair{BodyA: bodyA, BodyB: bodyB})
							continue
						}
						if aabb.Overlaps(bodyB.Shape.GetAABB()) {
							pairs = append(pairs, CollisionPair{BodyA: bodyA, BodyB: bodyB})
						}
					}
				}
			}
		}
	}

	return pairs
}

// worldToCell converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell hashes a cell key to an index in the cell array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
