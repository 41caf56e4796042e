package main

import (
	"testing"

	"github.com/marisvali/blastarena/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *arena.World {
	t.Helper()
	rules := arena.DefaultRules
	rules.MaxPowerups = 0
	level := arena.Level{
		Name: "view",
		Foreground: []string{
			"#######",
			"#  T  #",
			"#     #",
			"#######",
		},
	}
	w, err := arena.NewWorld(level, 0, rules)
	require.NoError(t, err)
	return w
}

func TestView_TopRowIsHighestZ(t *testing.T) {
	w := newWorld(t)
	v := NewView()
	v.Update(w)

	// The first row of the level is Z = 0, at the bottom of the view. Player
	// 1 spawns in cell (1, 1), player 2 in cell (5, 2).
	assert.Equal(t, ""+
		"#######\n"+
		"#    2#\n"+
		"#1 T  #\n"+
		"#######\n", v.String())
}

func TestView_ShowsFireAfterExplosion(t *testing.T) {
	w := newWorld(t)
	v := NewView()

	// Player 1 drops a radius 2 bomb, then both players get out of the way.
	w.Players[0].RadiusLevel = 1
	w.Step(arena.Input{Players: [arena.NPlayers]arena.PlayerInput{
		{Bomb: true}}})
	w.Players[0].Pos = arena.CellCenter(arena.Pt{X: 4, Y: 2}, 0)
	w.Players[1].Pos = arena.CellCenter(arena.Pt{X: 5, Y: 2}, 0)
	v.Update(w)
	assert.Equal(t, 'B', v.Cells[2][1])

	exploded := false
	for range 1000 {
		w.Step(arena.Input{})
		v.Update(w)
		if len(w.JustExploded) > 0 {
			exploded = true
			break
		}
	}
	require.True(t, exploded)

	// The fire covers the bomb's cell, two cells to the right (the second
	// one held the tombstone) and the cell above it.
	assert.Equal(t, ""+
		"#######\n"+
		"#*  12#\n"+
		"#***  #\n"+
		"#######\n", v.String())

	// The fire goes out after a while.
	for range FireTicks {
		w.Step(arena.Input{})
		v.Update(w)
	}
	assert.Equal(t, ""+
		"#######\n"+
		"#   12#\n"+
		"#     #\n"+
		"#######\n", v.String())
}
