package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/marisvali/blastarena/arena"
)

var (
	colorBackground = color.NRGBA{R: 40, G: 40, B: 48, A: 255}
	colorHud        = color.NRGBA{R: 25, G: 25, B: 30, A: 255}
	colorText       = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorOverlay    = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	colorBomb       = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	colorFuse       = color.NRGBA{R: 255, G: 80, B: 30, A: 255}
	colorFire       = color.NRGBA{R: 255, G: 170, B: 40, A: 230}
	colorFireCore   = color.NRGBA{R: 255, G: 240, B: 150, A: 255}
	colorDeath      = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	colorFlash      = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	colorPlaybar    = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colorCursor     = color.NRGBA{R: 60, G: 60, B: 200, A: 255}
)

var materialColors = [arena.NMaterials]color.NRGBA{
	arena.MaterialSandstone:     {R: 194, G: 170, B: 120, A: 255},
	arena.MaterialGreystone:     {R: 90, G: 90, B: 95, A: 255},
	arena.MaterialBarrel:        {R: 130, G: 80, B: 40, A: 255},
	arena.MaterialCauldron:      {R: 50, G: 50, B: 55, A: 255},
	arena.MaterialBottle:        {R: 60, G: 140, B: 90, A: 255},
	arena.MaterialCandleStand:   {R: 210, G: 190, B: 90, A: 255},
	arena.MaterialBarStool:      {R: 150, G: 100, B: 60, A: 255},
	arena.MaterialChair:         {R: 110, G: 70, B: 40, A: 255},
	arena.MaterialCrate:         {R: 170, G: 130, B: 70, A: 255},
	arena.MaterialPlayer1:       {R: 60, G: 120, B: 230, A: 255},
	arena.MaterialPlayer2:       {R: 230, G: 70, B: 70, A: 255},
	arena.MaterialPowerupSpeed:  {R: 80, G: 220, B: 230, A: 255},
	arena.MaterialPowerupRadius: {R: 250, G: 140, B: 30, A: 255},
	arena.MaterialPowerupBomb:   {R: 200, G: 80, B: 220, A: 255},
}

// meshShapes are the rectangles drawn for a tile mesh, in cell-local
// coordinates. They are the tile's colliders, so what you see is what you
// bump into. Meshes without colliders fill the whole cell.
var meshShapes = func() (shapes [arena.NMeshes][]arena.Rect) {
	for t := range arena.NTileTypes {
		info := t.Info()
		if shapes[info.Mesh] == nil {
			shapes[info.Mesh] = info.Colliders
		}
	}
	return
}()

var fullCell = []arena.Rect{arena.NewRect(0, 0, 1, 1)}

func (g *Gui) Draw(screen *ebiten.Image) {
	// The screen bitmap has the aspect ratio of the application window. We
	// fill it with some background. Then, we select the area inside of screen
	// on which we draw all the actually interesting elements of our game.
	screen.Fill(colorBackground)
	game := SubImage(screen, g.gameArea)

	switch g.state {
	case HomeScreen:
		g.DrawPlayScreen(game)
		g.DrawHomeScreen(game)
	case PlayScreen:
		g.DrawPlayScreen(game)
	case PausedScreen:
		g.DrawPlayScreen(game)
		g.DrawPausedScreen(game)
	case GameOverScreen:
		g.DrawPlayScreen(game)
		g.DrawGameOverScreen(game)
	case Playback:
		g.DrawPlayScreen(game)
	default:
		panic("unhandled default case")
	}

	if g.enableDebugAreas {
		debug := SubImage(screen, image.Rect(
			g.gameArea.Min.X,
			g.gameArea.Max.Y,
			g.gameArea.Max.X,
			g.gameArea.Max.Y+DebugHeight))
		g.DrawPlaybackControls(debug)
	}
}

func (g *Gui) DrawPlayScreen(screen *ebiten.Image) {
	g.DrawHud(SubImage(screen, image.Rect(0, 0, screen.Bounds().Dx(),
		HudHeight)))

	play := SubImage(screen, g.playArea)
	g.instances = g.world.Instances(g.instances[:0])
	for _, inst := range g.instances {
		switch inst.Mesh {
		case arena.MeshPlayer:
			g.DrawPlayer(play, inst)
		case arena.MeshPowerup:
			g.DrawPowerup(play, inst)
		case arena.MeshBomb:
			// Drawn below, they need the fuse.
		default:
			g.DrawTile(play, inst)
		}
	}
	g.DrawBombs(play)
	g.DrawEffects(play)
}

func (g *Gui) DrawTile(play *ebiten.Image, inst arena.Instance) {
	shapes := meshShapes[inst.Mesh]
	if len(shapes) == 0 {
		shapes = fullCell
	}
	clr := materialColors[inst.Material]
	for _, r := range shapes {
		// The rectangle's top edge on screen is its largest Z.
		x, y := g.WorldToPlay(inst.Pos.Add(
			mgl64.Vec3{r.Min[0], 0, r.Max[1]}))
		DrawRect(play, x, y, float32(r.Width()*CellSize),
			float32(r.Height()*CellSize), clr)
	}
}

func (g *Gui) DrawPlayer(play *ebiten.Image, inst arena.Instance) {
	x, y := g.WorldToPlay(inst.Pos)
	r := float32(g.world.PlayerRadius * CellSize)
	DrawCircle(play, x, y, r, materialColors[inst.Material])

	// The facing direction, see arena.Player.Face for the convention.
	theta := (inst.Rotation + 90) * math.Pi / 180
	dx := float32(math.Cos(theta)) * r
	dy := float32(math.Sin(theta)) * r
	DrawLine(play, x, y, x+dx, y+dy, 3, colorText)
}

func (g *Gui) DrawPowerup(play *ebiten.Image, inst arena.Instance) {
	x, y := g.WorldToPlay(inst.Pos)
	// Bob up and down a little.
	t := g.world.Now().Seconds()
	y += float32(math.Sin(t*4) * 3)
	DrawCircle(play, x, y, CellSize/4, materialColors[inst.Material])
	StrokeCircle(play, x, y, CellSize/4, 2, colorText)
}

func (g *Gui) DrawBombs(play *ebiten.Image) {
	now := g.world.Now()
	for _, b := range g.world.Bombs.All() {
		x, y := g.WorldToPlay(arena.CellCenter(b.Cell, 0))
		DrawCircle(play, x, y, CellSize*0.3, colorBomb)

		// The fuse ring shrinks as the bomb gets closer to detonating.
		left := b.DetonateAt - now
		fuse := g.world.Players[b.Owner].FuseDuration()
		if fuse > 0 && left > 0 {
			frac := float32(left) / float32(fuse)
			StrokeCircle(play, x, y, CellSize*0.3*frac+2, 2, colorFuse)
		}
	}
}

func (g *Gui) DrawEffects(play *ebiten.Image) {
	for _, a := range g.visWorld.Temporary {
		if !a.Animation.Started() {
			continue
		}
		p := a.Animation.Progress()
		x, y := g.WorldToPlay(a.Pos)
		switch a.Kind {
		case arena.EffectExplosion:
			size := float32(CellSize * (1 - 0.4*p))
			DrawRect(play, x-size/2, y-size/2, size, size, Fade(colorFire, 1-p))
			DrawCircle(play, x, y, size/4, Fade(colorFireCore, 1-p))
		case arena.EffectBombPlaced:
			StrokeCircle(play, x, y, float32(CellSize*0.3*(1+p)), 2,
				Fade(colorFlash, 1-p))
		case arena.EffectPickup:
			StrokeCircle(play, x, y, float32(CellSize*0.5*(0.5+p)), 3,
				Fade(colorFlash, 1-p))
		case arena.EffectDeath:
			StrokeCircle(play, x, y, float32(CellSize*(0.3+p)), 4,
				Fade(colorDeath, 1-p))
		}
	}
}

func (g *Gui) DrawHud(hud *ebiten.Image) {
	hud.Fill(colorHud)
	w := hud.Bounds().Dx()
	for i := range g.world.Players {
		p := &g.world.Players[i]
		// Leave the middle of the HUD for the clock.
		area := image.Rect(Margin, 10, w/2-50, HudHeight/2)
		if i == 1 {
			area = image.Rect(w/2+50, 10, w-Margin, HudHeight/2)
		}
		line1 := SubImage(hud, area)
		line2 := SubImage(hud, area.Add(image.Pt(0, HudHeight/2-10)))
		clr := materialColors[arena.MaterialPlayer1+arena.MaterialId(i)]
		DrawText(line1, g.smallFont,
			fmt.Sprintf("P%d  lives %d  score %d", i+1, p.Lives, p.Score),
			false, true, clr)
		DrawText(line2, g.smallFont,
			fmt.Sprintf("bombs %d  speed %d  radius %d", p.Bombs,
				p.SpeedLevel, p.RadiusLevel), false, true, colorText)
	}

	elapsed := g.world.Now().Truncate(time.Second)
	clock := SubImage(hud, image.Rect(w/2-40, 0, w/2+40, HudHeight))
	DrawText(clock, g.smallFont, fmt.Sprintf("%d:%02d",
		int(elapsed.Minutes()), int(elapsed.Seconds())%60), true, true,
		colorText)
}

func (g *Gui) DrawOverlay(screen *ebiten.Image, title string, help string) {
	DrawRect(screen, 0, 0, float32(screen.Bounds().Dx()),
		float32(screen.Bounds().Dy()), colorOverlay)
	h := screen.Bounds().Dy()
	w := screen.Bounds().Dx()
	DrawText(SubImage(screen, image.Rect(0, 0, w, h/2)), g.defaultFont,
		title, true, false, colorText)
	DrawText(SubImage(screen, image.Rect(0, h/2, w, h/2+60)), g.smallFont,
		help, true, true, colorText)
}

func (g *Gui) DrawHomeScreen(screen *ebiten.Image) {
	g.DrawOverlay(screen, g.level.Name,
		"Space: start   L: next level   Esc: quit")
}

func (g *Gui) DrawPausedScreen(screen *ebiten.Image) {
	g.DrawOverlay(screen, "Paused",
		"Esc: continue   R: restart   H: home")
}

func (g *Gui) DrawGameOverScreen(screen *ebiten.Image) {
	title := "Draw"
	if g.world.Winner >= 0 {
		title = fmt.Sprintf("Player %d wins", g.world.Winner+1)
	}
	g.DrawOverlay(screen, title, "R: rematch   N: new arena   H: home")
}

func (g *Gui) DrawPlaybackControls(screen *ebiten.Image) {
	screen.Fill(colorPlaybar)

	// Play/pause indicator.
	status := "||"
	if g.playbackPaused {
		status = ">"
	}
	DrawText(SubImage(screen, image.Rect(0, 0, DebugHeight, DebugHeight)),
		g.defaultFont, status, true, true, colorCursor)

	// Play bar, in the same place Layout() put it for Update().
	bar := g.playbackBar.Sub(image.Pt(g.gameArea.Min.X, g.gameArea.Max.Y))
	barX := float32(bar.Min.X)
	barWidth := float32(bar.Dx())
	StrokeRect(screen, barX, 10, barWidth, DebugHeight-20, 2, colorCursor)

	nFrames := max(len(g.playthrough.History), 1)
	factor := float32(g.frameIdx) / float32(nFrames)
	DrawRect(screen, barX+factor*barWidth-3, 5, 6, DebugHeight-10,
		colorCursor)
}
