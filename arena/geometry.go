package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle on the ground plane. X maps to the world
// X axis and Y maps to the world Z axis.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		Min: mgl64.Vec2{math.Min(x1, x2), math.Min(y1, y2)},
		Max: mgl64.Vec2{math.Max(x1, x2), math.Max(y1, y2)},
	}
}

func (r Rect) Width() float64 {
	return r.Max[0] - r.Min[0]
}

func (r Rect) Height() float64 {
	return r.Max[1] - r.Min[1]
}

func (r Rect) Center() mgl64.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Translate moves the rectangle by offset.
func (r Rect) Translate(offset mgl64.Vec2) Rect {
	return Rect{r.Min.Add(offset), r.Max.Add(offset)}
}

func (r Rect) ContainsPt(pt mgl64.Vec2) bool {
	return pt[0] >= r.Min[0] && pt[0] <= r.Max[0] &&
		pt[1] >= r.Min[1] && pt[1] <= r.Max[1]
}

func (r Rect) Intersects(other Rect) bool {
	return r.Min[0] < other.Max[0] && r.Max[0] > other.Min[0] &&
		r.Min[1] < other.Max[1] && r.Max[1] > other.Min[1]
}

// NearestPt returns the point of the rectangle that is closest to pt. If pt
// is inside the rectangle, pt itself is returned.
func (r Rect) NearestPt(pt mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		math.Max(r.Min[0], math.Min(pt[0], r.Max[0])),
		math.Max(r.Min[1], math.Min(pt[1], r.Max[1])),
	}
}

// DistTo returns the distance between pt and the closest point of the
// rectangle. It is 0 for points inside the rectangle.
func (r Rect) DistTo(pt mgl64.Vec2) float64 {
	return r.NearestPt(pt).Sub(pt).Len()
}

// Ground projects a world position onto the ground plane.
func Ground(pos mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{pos[0], pos[2]}
}

// CellOf returns the grid cell that contains a point on the ground plane.
func CellOf(pt mgl64.Vec2) Pt {
	return Pt{int(math.Floor(pt[0])), int(math.Floor(pt[1]))}
}

// CellCenter returns the world position of the center of a cell, at height y.
func CellCenter(cell Pt, y float64) mgl64.Vec3 {
	return mgl64.Vec3{float64(cell.X) + 0.5, y, float64(cell.Y) + 0.5}
}

// SameCell is the proximity test used for explosion hits and powerup
// pickups. It is a per-axis test on the ground plane, not a distance test:
// two positions share a cell if they are strictly less than half a cell apart
// on both X and Z.
func SameCell(a, b mgl64.Vec3) bool {
	return math.Abs(a[0]-b[0]) < 0.5 && math.Abs(a[2]-b[2]) < 0.5
}
