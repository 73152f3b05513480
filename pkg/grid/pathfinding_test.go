package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() Layout {
	return Layout{Width: 11, Height: 12, BorderRows: 2, BorderCols: 1, AnchorWidth: 3}
}

func TestNewGridBandsAndAnchors(t *testing.T) {
	g := New(testLayout())

	assert.Equal(t, Restricted, g.State(Cell{X: 0, Y: 5}))
	assert.Equal(t, Restricted, g.State(Cell{X: 10, Y: 5}))
	assert.Equal(t, Restricted, g.State(Cell{X: 1, Y: 0}))
	assert.Equal(t, Free, g.State(Cell{X: 5, Y: 5}))

	assert.Equal(t, Cell{X: 5, Y: 0}, g.SpawnAnchor())
	assert.Equal(t, Cell{X: 5, Y: 10}, g.ObjectiveAnchor())
	assert.Equal(t, Free, g.State(g.SpawnAnchor()))
	assert.Equal(t, Free, g.State(g.ObjectiveAnchor()))
	assert.True(t, g.IsReserved(Cell{X: 4, Y: 1}))
}

func TestSetBlockedRespectsRestrictedAndReserved(t *testing.T) {
	g := New(testLayout())

	assert.False(t, g.SetBlocked(Cell{X: 0, Y: 5}, true), "restricted cells never transition")
	assert.Equal(t, Restricted, g.State(Cell{X: 0, Y: 5}))
	assert.False(t, g.SetBlocked(g.SpawnAnchor(), true), "anchors stay free")
	assert.True(t, g.SetBlocked(Cell{X: 5, Y: 5}, true))
	assert.Equal(t, Blocked, g.State(Cell{X: 5, Y: 5}))
	assert.True(t, g.SetBlocked(Cell{X: 5, Y: 5}, false))
	assert.Equal(t, Free, g.State(Cell{X: 5, Y: 5}))
}

func TestAStarStraightLine(t *testing.T) {
	g := New(testLayout())

	path := AStar(g.SpawnAnchor(), g.ObjectiveAnchor(), g, GroundWalkable)
	require.NotEmpty(t, path)
	assert.Equal(t, g.SpawnAnchor(), path[0])
	assert.Equal(t, g.ObjectiveAnchor(), path[len(path)-1])
	assert.Len(t, path, g.SpawnAnchor().Manhattan(g.ObjectiveAnchor())+1)
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, path[i-1].Manhattan(path[i]), "path must be 4-connected")
	}
}

func TestAStarGoesAroundWall(t *testing.T) {
	g := New(testLayout())
	for x := 1; x <= 8; x++ {
		g.SetBlocked(Cell{X: x, Y: 5}, true)
	}

	path := AStar(g.SpawnAnchor(), g.ObjectiveAnchor(), g, GroundWalkable)
	require.NotEmpty(t, path)
	for _, c := range path {
		assert.NotEqual(t, Blocked, g.State(c))
	}
	assert.Contains(t, path, Cell{X: 9, Y: 5})
}

func TestAStarNoPathWhenSealed(t *testing.T) {
	g := New(testLayout())
	for x := 1; x <= 9; x++ {
		g.SetBlocked(Cell{X: x, Y: 5}, true)
	}

	assert.Empty(t, AStar(g.SpawnAnchor(), g.ObjectiveAnchor(), g, GroundWalkable))
	assert.False(t, HasPath(g.SpawnAnchor(), g.ObjectiveAnchor(), g, GroundWalkable))

	air := AStar(g.SpawnAnchor(), g.ObjectiveAnchor(), g, AirWalkable)
	require.NotEmpty(t, air, "air units ignore blocked and restricted cells")
	assert.Len(t, air, g.SpawnAnchor().Manhattan(g.ObjectiveAnchor())+1)
}

func TestAStarSameCell(t *testing.T) {
	g := New(testLayout())
	path := AStar(Cell{X: 5, Y: 5}, Cell{X: 5, Y: 5}, g, GroundWalkable)
	assert.Equal(t, []Cell{{X: 5, Y: 5}}, path)
}

func TestCloneAndEqual(t *testing.T) {
	g := New(testLayout())
	c := g.Clone()
	require.True(t, g.Equal(c))

	c.SetBlocked(Cell{X: 3, Y: 3}, true)
	assert.False(t, g.Equal(c))
	assert.Equal(t, Free, g.State(Cell{X: 3, Y: 3}))
}

func TestRectHelpers(t *testing.T) {
	a := RectAt(Cell{X: 2, Y: 2}, 2, 2)
	b := RectAt(Cell{X: 4, Y: 2}, 1, 1)

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Expand(1).Overlaps(b))
	assert.Len(t, a.Cells(), 4)

	x, y := RectCenter(a, 32)
	assert.InDelta(t, 96.0, x, 1e-9)
	assert.InDelta(t, 96.0, y, 1e-9)

	assert.Equal(t, Cell{X: 3, Y: 1}, CellAt(100, 40, 32))
}
