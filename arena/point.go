package arena

// Pt is an integer grid coordinate. X is the column, Y is the row (the world
// Z axis).
type Pt struct {
	X int
	Y int
}

// NoCell marks the absence of a cell, for example when a player has no
// recently placed bomb to ignore during collision.
var NoCell = Pt{-1, -1}

func (p Pt) Plus(other Pt) Pt {
	return Pt{p.X + other.X, p.Y + other.Y}
}

func (p Pt) Minus(other Pt) Pt {
	return Pt{p.X - other.X, p.Y - other.Y}
}

func (p Pt) Times(multiply int) Pt {
	return Pt{p.X * multiply, p.Y * multiply}
}

func (p *Pt) Add(other Pt) {
	p.X = p.X + other.X
	p.Y = p.Y + other.Y
}

// Min returns the element-wise minimum of p and other.
func (p Pt) Min(other Pt) Pt {
	return Pt{min(p.X, other.X), min(p.Y, other.Y)}
}

// Max returns the element-wise maximum of p and other.
func (p Pt) Max(other Pt) Pt {
	return Pt{max(p.X, other.X), max(p.Y, other.Y)}
}

// Clamp restricts p to the inclusive box [lo, hi].
func (p Pt) Clamp(lo, hi Pt) Pt {
	return p.Max(lo).Min(hi)
}

// Directions are the four cardinal steps an explosion travels along, in the
// order they are evaluated.
var Directions = [4]Pt{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}
