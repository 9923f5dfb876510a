package world

// Grid is a rectangular tile map. Any coordinate outside [0,W)x[0,H) is a
// wall, so levels do not need an explicit border.
//
// The renderer treats a Grid as read-only; Set exists for editing tools and
// must not run concurrently with a render call.
type Grid struct {
	width  int
	height int
	tiles  []TileKind
}

// NewGrid creates a grid of the given size filled with open tiles.
// Width and height below 1 are raised to 1.
func NewGrid(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]TileKind, width*height),
	}
}

// NewGridFromRows builds a grid from row-major tile kinds. All rows must have
// the same length as the first one.
func NewGridFromRows(rows [][]TileKind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLevel
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, raggedRowError(y, g.width, len(row))
		}
		copy(g.tiles[y*g.width:(y+1)*g.width], row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a stored cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsWall is true for wall cells and for every out-of-range coordinate.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.width+x] == TileWall
}

// TileAt returns the kind stored at (x, y). Callers check InBounds first;
// out-of-range coordinates report TileWall to match IsWall.
func (g *Grid) TileAt(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.tiles[y*g.width+x]
}

// Set stores a tile kind. Out-of-range writes are ignored.
func (g *Grid) Set(x, y int, kind TileKind) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.width+x] = kind
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, t := range g.tiles {
		if t == kind {
			n++
		}
	}
	return n
}

// Find returns every cell coordinate holding the given kind in row-major order.
func (g *Grid) Find(kind TileKind) [][2]int {
	var cells [][2]int
	for i, t := range g.tiles {
		if t == kind {
			cells = append(cells, [2]int{i % g.width, i / g.width})
		}
	}
	return cells
}
