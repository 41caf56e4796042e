package arena

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRectContainsPt(t *testing.T) {
	r := NewRect(1, 2, 3, 5)
	assert.True(t, r.ContainsPt(mgl64.Vec2{1, 2}))
	assert.True(t, r.ContainsPt(mgl64.Vec2{1, 2.5}))
	assert.True(t, r.ContainsPt(mgl64.Vec2{1.5, 2.5}))
	assert.True(t, r.ContainsPt(mgl64.Vec2{3, 5}))
	assert.False(t, r.ContainsPt(mgl64.Vec2{0.9, 2}))
	assert.False(t, r.ContainsPt(mgl64.Vec2{1, 1.9}))
	assert.False(t, r.ContainsPt(mgl64.Vec2{3.1, 5}))
	assert.False(t, r.ContainsPt(mgl64.Vec2{3, 5.1}))
	assert.False(t, r.ContainsPt(mgl64.Vec2{3.1, 5.1}))
}

func TestRectIntersects(t *testing.T) {
	var r1, r2 Rect
	r1 = NewRect(1, 2, 3, 5)
	r2 = NewRect(1, 2, 3, 5)
	assert.True(t, r1.Intersects(r2))
	assert.True(t, r2.Intersects(r1))

	r2 = NewRect(2, 3, 2.5, 3.5)
	assert.True(t, r1.Intersects(r2))
	assert.True(t, r2.Intersects(r1))

	// Touching edges don't count.
	r2 = NewRect(3, 2, 4, 5)
	assert.False(t, r1.Intersects(r2))
	assert.False(t, r2.Intersects(r1))

	r2 = NewRect(10, 20, 11, 21)
	assert.False(t, r1.Intersects(r2))
}

func TestNewRectNormalizesCorners(t *testing.T) {
	r := NewRect(3, 5, 1, 2)
	assert.Equal(t, mgl64.Vec2{1, 2}, r.Min)
	assert.Equal(t, mgl64.Vec2{3, 5}, r.Max)
	assert.Equal(t, 2.0, r.Width())
	assert.Equal(t, 3.0, r.Height())
	assert.Equal(t, mgl64.Vec2{2, 3.5}, r.Center())
}

func TestRectNearestPt(t *testing.T) {
	r := NewRect(0, 0, 1, 1)

	// Inside.
	assert.Equal(t, mgl64.Vec2{0.3, 0.7}, r.NearestPt(mgl64.Vec2{0.3, 0.7}))
	assert.Equal(t, 0.0, r.DistTo(mgl64.Vec2{0.3, 0.7}))

	// Facing an edge.
	assert.Equal(t, mgl64.Vec2{1, 0.5}, r.NearestPt(mgl64.Vec2{1.4, 0.5}))
	assert.InDelta(t, 0.4, r.DistTo(mgl64.Vec2{1.4, 0.5}), 1e-12)

	// Facing a corner.
	assert.Equal(t, mgl64.Vec2{0, 0}, r.NearestPt(mgl64.Vec2{-3, -4}))
	assert.InDelta(t, 5.0, r.DistTo(mgl64.Vec2{-3, -4}), 1e-12)
}

func TestCellOf(t *testing.T) {
	assert.Equal(t, Pt{2, 3}, CellOf(mgl64.Vec2{2.5, 3.99}))
	assert.Equal(t, Pt{0, 0}, CellOf(mgl64.Vec2{0, 0}))
	assert.Equal(t, Pt{-1, -1}, CellOf(mgl64.Vec2{-0.1, -0.5}))
	assert.Equal(t, mgl64.Vec3{2.5, 0.5, 3.5}, CellCenter(Pt{2, 3}, 0.5))
}

func TestSameCell(t *testing.T) {
	center := CellCenter(Pt{2, 2}, 0)
	assert.True(t, SameCell(center, mgl64.Vec3{2.5, 0, 2.5}))
	assert.True(t, SameCell(center, mgl64.Vec3{2.9, 7, 2.1}))
	// Strictly less than half a cell on each axis.
	assert.False(t, SameCell(center, mgl64.Vec3{3.0, 0, 2.5}))
	assert.False(t, SameCell(center, mgl64.Vec3{2.5, 0, 2.0}))
	// Per axis, not a distance: a diagonal offset of 0.45 on both axes is
	// further than 0.5 but still the same cell.
	assert.True(t, SameCell(center, mgl64.Vec3{2.95, 0, 2.95}))
}

func TestPtClamp(t *testing.T) {
	lo := Pt{0, 0}
	hi := Pt{4, 6}
	assert.Equal(t, Pt{0, 6}, Pt{-3, 10}.Clamp(lo, hi))
	assert.Equal(t, Pt{2, 3}, Pt{2, 3}.Clamp(lo, hi))
	assert.Equal(t, Pt{1, 2}, Pt{1, 5}.Min(Pt{3, 2}))
	assert.Equal(t, Pt{3, 5}, Pt{1, 5}.Max(Pt{3, 2}))

	p := Pt{1, 1}
	p.Add(Pt{2, -3})
	assert.Equal(t, Pt{3, -2}, p)
	assert.Equal(t, Pt{6, -4}, p.Times(2))
}
