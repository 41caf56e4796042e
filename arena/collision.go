package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BombPushDamping scales the push-out from a bomb's collider when the circle
// is moving away from the bomb's center. It lets a player walk off a bomb's
// edge without being flung away, while still keeping them out of it.
const BombPushDamping = 0.05

// CollideCircle moves a circle of the given radius from pos by displacement,
// then pushes it out of every tile collider it ends up overlapping. Only the
// X and Z components change. The cell exclude is ignored entirely; pass
// NoCell to collide with everything.
//
// This is positional correction, not continuous collision: a displacement
// larger than a cell can tunnel through thin colliders. Player speeds keep
// per-tick displacements far below that.
func (g *Grid) CollideCircle(pos mgl64.Vec3, displacement mgl64.Vec3,
	radius float64, exclude Pt) mgl64.Vec3 {
	cur := Ground(pos)
	next := cur.Add(Ground(displacement))

	// Scan the cells around both the start and end positions. One extra cell
	// in every direction covers the radius, as long as the radius is below
	// one cell.
	c1 := CellOf(cur)
	c2 := CellOf(next)
	lo := c1.Min(c2).Minus(Pt{1, 1})
	hi := c1.Max(c2).Plus(Pt{1, 1})
	lo = lo.Clamp(Pt{0, 0}, g.size.Minus(Pt{1, 1}))
	hi = hi.Clamp(Pt{0, 0}, g.size.Minus(Pt{1, 1}))

	motion := Ground(displacement)
	var cell Pt
	for cell.Y = lo.Y; cell.Y <= hi.Y; cell.Y++ {
		for cell.X = lo.X; cell.X <= hi.X; cell.X++ {
			if cell == exclude {
				continue
			}
			t := g.Tile(cell)
			info := t.Info()
			if len(info.Colliders) == 0 {
				continue
			}
			offset := mgl64.Vec2{float64(cell.X), float64(cell.Y)}
			for _, local := range info.Colliders {
				r := local.Translate(offset)
				nearest := r.NearestPt(next)
				away := next.Sub(nearest)
				dist := away.Len()
				overlap := radius - dist
				if math.IsNaN(overlap) || overlap <= 0 || dist == 0 {
					// A circle whose center is inside the rectangle has no
					// direction to be pushed in.
					continue
				}
				if t == BombTile {
					toBomb := r.Center().Sub(cur)
					if motion.Dot(toBomb) < 0 {
						overlap *= BombPushDamping
					}
				}
				next = next.Add(away.Mul(overlap / dist))
			}
		}
	}

	pos[0] = next[0]
	pos[2] = next[1]
	return pos
}
