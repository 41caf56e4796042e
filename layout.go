package main

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

// Visual areas
// ------------
//
// - The play area: the arena itself, one square of CellSize pixels per grid
// cell. Its size depends on the level.
// - The HUD: above the play area, shows each player's stats.
// - The game area: the HUD, the play area and a margin around them.
// - The debug area: below the game area, only in playback. Holds the play
// bar.
// - The screen: contains the game area, the debug area if it is displayed
// and any margins necessary to fill in the application window on the OS. Its
// size is known only at run time.

const CellSize = 48
const HudHeight = 90
const Margin = 20
const DebugHeight = 60

// UpdateLayout recomputes the game and play areas for the size of the
// current World's grid.
func (g *Gui) UpdateLayout() {
	size := g.world.Grid.Size()
	playWidth := size.X * CellSize
	playHeight := size.Y * CellSize
	g.playArea = image.Rect(Margin, HudHeight, Margin+playWidth,
		HudHeight+playHeight)
	g.gameArea = image.Rect(0, 0, playWidth+2*Margin,
		HudHeight+playHeight+Margin)
}

func (g *Gui) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// I receive the application window's actual width and height and return
	// the size of the bitmap I want to draw on. Ebitengine scales that bitmap
	// to fit the window and preserves its aspect ratio.
	//
	// What I want:
	// - Cover the entire window with some background.
	// - Have a game area of a fixed size in pixels that I can reason about
	// easily, no matter the window's size.
	//
	// Solution:
	// - Return a bitmap with the aspect ratio of the window, so no black bars
	// appear.
	// - Make the bitmap as small as possible while the game area (plus the
	// debug area, if enabled) still fits inside it. Either the widths or the
	// heights match.
	gameWidth := g.gameArea.Dx()
	gameHeight := g.gameArea.Dy()
	if g.enableDebugAreas {
		gameHeight += DebugHeight
	}

	screenAspectRatio := float64(outsideWidth) / float64(outsideHeight)
	gameAspectRatio := float64(gameWidth) / float64(gameHeight)
	if screenAspectRatio < gameAspectRatio {
		screenWidth = gameWidth
		screenHeight = int(float64(screenWidth) / screenAspectRatio)
	} else {
		screenHeight = gameHeight
		screenWidth = int(float64(screenHeight) * screenAspectRatio)
	}

	// Center the game area. Update() needs these for mouse input, so they
	// can't be computed in Draw().
	topLeft := image.Pt((screenWidth-gameWidth)/2, (screenHeight-gameHeight)/2)
	g.gameArea = g.gameArea.Sub(g.gameArea.Min).Add(topLeft)
	g.playbackBar = image.Rect(
		g.gameArea.Min.X+DebugHeight+10,
		g.gameArea.Max.Y,
		g.gameArea.Max.X-10,
		g.gameArea.Max.Y+DebugHeight)
	return
}

// WorldToPlay converts a position in the World to pixels in the play area.
// The World's Z axis points up the screen, so row 0 of the grid is at the
// bottom.
func (g *Gui) WorldToPlay(pos mgl64.Vec3) (x, y float32) {
	rows := g.world.Grid.Size().Y
	x = float32(pos[0] * CellSize)
	y = float32((float64(rows) - pos[2]) * CellSize)
	return
}
