// Package grid holds the square cell map the simulation is played on and the
// A* pathfinder that walks it.
package grid

// CellState — состояние клетки карты.
type CellState uint8

const (
	Free CellState = iota
	Blocked
	Restricted
)

func (s CellState) String() string {
	switch s {
	case Free:
		return "free"
	case Blocked:
		return "blocked"
	case Restricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Cell is a grid coordinate. X grows to the right, Y grows downwards.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add returns the cell shifted by dx, dy.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the 4-connected distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Rect is an axis-aligned block of cells, Min inclusive, Max exclusive.
type Rect struct {
	Min Cell `yaml:"min"`
	Max Cell `yaml:"max"`
}

// RectAt builds a rect from its top-left cell and size.
func RectAt(topLeft Cell, w, h int) Rect {
	return Rect{Min: topLeft, Max: topLeft.Add(w, h)}
}

// Contains reports whether c is inside r.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X < r.Max.X && c.Y >= r.Min.Y && c.Y < r.Max.Y
}

// Overlaps reports whether two rects share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Expand grows the rect by n cells on every side.
func (r Rect) Expand(n int) Rect {
	return Rect{Min: r.Min.Add(-n, -n), Max: r.Max.Add(n, n)}
}

// Cells lists every cell of the rect in row-major order.
func (r Rect) Cells() []Cell {
	out := make([]Cell, 0, (r.Max.X-r.Min.X)*(r.Max.Y-r.Min.Y))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// Center returns the anchor cell of the rect.
func (r Rect) Center() Cell {
	return Cell{X: (r.Min.X + r.Max.X - 1) / 2, Y: (r.Min.Y + r.Max.Y - 1) / 2}
}

// Layout describes how a new map is carved: restricted border bands and the
// width of the spawn/objective gaps.
type Layout struct {
	Width       int
	Height      int
	BorderRows  int // restricted rows at the top and at the bottom
	BorderCols  int // restricted columns at the left and at the right
	AnchorWidth int // width of the spawn and objective rectangles
}

// Grid — прямоугольная карта клеток с точками входа и выхода.
type Grid struct {
	width, height int
	cells         []CellState
	Spawn         Rect
	Objective     Rect
}

// New carves a grid from the layout. The spawn rectangle is cut into the top
// band and the objective rectangle into the bottom band, both centred.
func New(l Layout) *Grid {
	if l.Width <= 0 || l.Height <= 0 {
		panic("grid: layout must have positive size")
	}
	g := &Grid{
		width:  l.Width,
		height: l.Height,
		cells:  make([]CellState, l.Width*l.Height),
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if y < l.BorderRows || y >= l.Height-l.BorderRows || x < l.BorderCols || x >= l.Width-l.BorderCols {
				g.cells[y*l.Width+x] = Restricted
			}
		}
	}

	aw := l.AnchorWidth
	if aw <= 0 {
		aw = 1
	}
	rows := l.BorderRows
	if rows <= 0 {
		rows = 1
	}
	left := (l.Width - aw) / 2
	g.Spawn = RectAt(Cell{X: left, Y: 0}, aw, rows)
	g.Objective = RectAt(Cell{X: left, Y: l.Height - rows}, aw, rows)
	for _, r := range []Rect{g.Spawn, g.Objective} {
		for _, c := range r.Cells() {
			g.cells[g.index(c)] = Free
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// SpawnAnchor is the cell adversaries appear on.
func (g *Grid) SpawnAnchor() Cell { return g.Spawn.Center() }

// ObjectiveAnchor is the cell adversaries are walking to.
func (g *Grid) ObjectiveAnchor() Cell { return g.Objective.Center() }

// InBounds reports whether c lies on the map.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// State returns the cell state; out-of-bounds cells read as Restricted.
func (g *Grid) State(c Cell) CellState {
	if !g.InBounds(c) {
		return Restricted
	}
	return g.cells[g.index(c)]
}

// IsReserved reports whether c belongs to the spawn or objective rectangles.
func (g *Grid) IsReserved(c Cell) bool {
	return g.Spawn.Contains(c) || g.Objective.Contains(c)
}

// SetBlocked flips a cell between Free and Blocked. Restricted and reserved
// cells never transition and the call reports false for them.
func (g *Grid) SetBlocked(c Cell, blocked bool) bool {
	if !g.InBounds(c) || g.IsReserved(c) {
		return false
	}
	i := g.index(c)
	if g.cells[i] == Restricted {
		return false
	}
	if blocked {
		g.cells[i] = Blocked
	} else {
		g.cells[i] = Free
	}
	return true
}

// Clone returns an independent copy, used to simulate a mutation before
// committing it.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]CellState(nil), g.cells...)
	return &c
}

// Equal reports whether both grids hold the same cell states.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// CellAt converts a pixel position into the cell containing it.
func CellAt(x, y, cellSize float64) Cell {
	return Cell{X: floorInt(x / cellSize), Y: floorInt(y / cellSize)}
}

// CellCenter returns the pixel centre of a cell.
func CellCenter(c Cell, cellSize float64) (float64, float64) {
	return (float64(c.X) + 0.5) * cellSize, (float64(c.Y) + 0.5) * cellSize
}

// RectCenter returns the pixel centre of a footprint.
func RectCenter(r Rect, cellSize float64) (float64, float64) {
	return float64(r.Min.X+r.Max.X) / 2 * cellSize, float64(r.Min.Y+r.Max.Y) / 2 * cellSize
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}
