package main

import (
	"github.com/marisvali/blastarena/arena"
)

// FireTicks is how many ticks an exploded cell stays on fire in the view.
const FireTicks = 20

var powerupRunes = [arena.NPowerupKinds]rune{
	arena.PowerupSpeed:  's',
	arena.PowerupRadius: 'r',
	arena.PowerupBomb:   'b',
}

// View turns a World into a character grid, one character per cell.
// Row 0 of the result is the top of the arena, which is the highest Z.
type View struct {
	fire  map[arena.Pt]int
	Cells [][]rune
}

func NewView() *View {
	return &View{fire: map[arena.Pt]int{}}
}

// Update must be called once after every World.Step, so that explosions
// are picked up from World.JustExploded.
func (v *View) Update(w *arena.World) {
	for cell, ticks := range v.fire {
		if ticks <= 1 {
			delete(v.fire, cell)
		} else {
			v.fire[cell] = ticks - 1
		}
	}
	for _, e := range w.JustExploded {
		for _, c := range e.Cells {
			v.fire[c.Cell] = FireTicks
		}
	}

	size := w.Grid.Size()
	if len(v.Cells) != size.Y {
		v.Cells = make([][]rune, size.Y)
		for i := range v.Cells {
			v.Cells[i] = make([]rune, size.X)
		}
	}

	var pt arena.Pt
	for pt.Y = 0; pt.Y < size.Y; pt.Y++ {
		row := v.Cells[size.Y-1-pt.Y]
		for pt.X = 0; pt.X < size.X; pt.X++ {
			r := w.Grid.Tile(pt).Symbol()
			if _, onFire := v.fire[pt]; onFire && w.Grid.IsEmpty(pt) {
				r = '*'
			}
			row[pt.X] = r
		}
	}

	for _, pu := range w.Powerups.All() {
		v.set(pu.Cell, powerupRunes[pu.Kind])
	}
	for i := range w.Players {
		p := &w.Players[i]
		if p.Alive() {
			v.set(p.Cell(), rune('1'+i))
		}
	}
}

func (v *View) set(cell arena.Pt, r rune) {
	y := len(v.Cells) - 1 - cell.Y
	if y < 0 || y >= len(v.Cells) || cell.X < 0 || cell.X >= len(v.Cells[y]) {
		return
	}
	v.Cells[y][cell.X] = r
}

func (v *View) String() string {
	var s []rune
	for _, row := range v.Cells {
		s = append(s, row...)
		s = append(s, '\n')
	}
	return string(s)
}
