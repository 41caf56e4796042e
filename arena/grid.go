package arena

import "fmt"

// Grid stores the arena tiles as two same-shaped layers: the foreground,
// which holds everything gameplay cares about, and the background, which is
// purely decorative.
type Grid struct {
	size  Pt
	fg    []TileType
	bg    []TileType
	dirty bool

	// emptyBuf is reused by RandomEmptyCell to avoid allocating every call.
	emptyBuf []Pt
}

func NewGrid(size Pt) *Grid {
	if size.X <= 0 || size.Y <= 0 {
		panic(fmt.Errorf("invalid grid size: %dx%d", size.X, size.Y))
	}
	g := &Grid{}
	g.size = size
	g.fg = make([]TileType, size.X*size.Y)
	g.bg = make([]TileType, size.X*size.Y)
	g.dirty = true
	return g
}

func (g *Grid) Size() Pt {
	return g.size
}

func (g *Grid) InBounds(pt Pt) bool {
	return pt.X >= 0 &&
		pt.Y >= 0 &&
		pt.Y < g.size.Y &&
		pt.X < g.size.X
}

// index converts pt to an offset in the layers. Out of bounds coordinates are
// a bug in the caller, so they crash instead of silently reading a
// neighboring row.
func (g *Grid) index(pt Pt) int {
	if !g.InBounds(pt) {
		panic(fmt.Errorf("grid access out of bounds: (%d, %d) not in %dx%d",
			pt.X, pt.Y, g.size.X, g.size.Y))
	}
	return pt.Y*g.size.X + pt.X
}

// Tile returns the foreground tile at pt.
func (g *Grid) Tile(pt Pt) TileType {
	return g.fg[g.index(pt)]
}

// SetTile sets the foreground tile at pt and marks the grid as changed so the
// renderer knows to rebuild its instance lists.
func (g *Grid) SetTile(pt Pt, t TileType) {
	g.fg[g.index(pt)] = t
	g.dirty = true
}

func (g *Grid) Background(pt Pt) TileType {
	return g.bg[g.index(pt)]
}

func (g *Grid) SetBackground(pt Pt, t TileType) {
	g.bg[g.index(pt)] = t
	g.dirty = true
}

func (g *Grid) IsEmpty(pt Pt) bool {
	return g.Tile(pt) == Empty
}

// IsDestructible reports whether an explosion can clear the foreground tile
// at pt. Empty cells are never destructible.
func (g *Grid) IsDestructible(pt Pt) bool {
	t := g.Tile(pt)
	if t == Empty {
		return false
	}
	return t.Info().Destructible
}

// TakeDirty reports whether the grid changed since the last call and clears
// the flag.
func (g *Grid) TakeDirty() bool {
	d := g.dirty
	g.dirty = false
	return d
}

// EmptyCells appends the coordinates of all empty foreground cells to dst, in
// row-major order.
func (g *Grid) EmptyCells(dst []Pt) []Pt {
	var pt Pt
	for pt.Y = 0; pt.Y < g.size.Y; pt.Y++ {
		for pt.X = 0; pt.X < g.size.X; pt.X++ {
			if g.fg[pt.Y*g.size.X+pt.X] == Empty {
				dst = append(dst, pt)
			}
		}
	}
	return dst
}

// RandomEmptyCell picks an empty foreground cell uniformly at random. It
// returns false, without consuming any randomness, if there is none.
func (g *Grid) RandomEmptyCell(rng *Rand) (Pt, bool) {
	g.emptyBuf = g.EmptyCells(g.emptyBuf[:0])
	if len(g.emptyBuf) == 0 {
		return NoCell, false
	}
	return g.emptyBuf[rng.RInt(0, len(g.emptyBuf)-1)], true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, dirty: g.dirty}
	c.fg = append([]TileType(nil), g.fg...)
	c.bg = append([]TileType(nil), g.bg...)
	return c
}
