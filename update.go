package main

import (
	"image"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/marisvali/blastarena/arena"
)

type KeyBinding struct {
	Left, Right, Up, Down, Bomb ebiten.Key
}

// Player 1 plays with WASD and E, player 2 with the arrow keys and Enter.
var keyBindings = [arena.NPlayers]KeyBinding{
	{ebiten.KeyA, ebiten.KeyD, ebiten.KeyW, ebiten.KeyS, ebiten.KeyE},
	{ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowUp,
		ebiten.KeyArrowDown, ebiten.KeyEnter},
}

func (g *Gui) Update() error {
	g.pressedKeys = inpututil.AppendPressedKeys(g.pressedKeys[:0])
	g.justPressedKeys = inpututil.AppendJustPressedKeys(g.justPressedKeys[:0])

	if g.state != Playback && g.folderWatcher.FolderContentsChanged() {
		g.ReloadLevel()
	}

	switch g.state {
	case HomeScreen:
		g.UpdateHomeScreen()
	case PlayScreen:
		g.UpdatePlayScreen()
	case PausedScreen:
		g.UpdatePausedScreen()
	case GameOverScreen:
		g.UpdateGameOverScreen()
	case Playback:
		g.UpdatePlayback()
	default:
		panic("unhandled default case")
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// PlayerInputs returns the held state of both players' keys.
func PlayerInputs(pressed []ebiten.Key) (input arena.Input) {
	for i, b := range keyBindings {
		p := &input.Players[i]
		p.Left = slices.Contains(pressed, b.Left)
		p.Right = slices.Contains(pressed, b.Right)
		p.Up = slices.Contains(pressed, b.Up)
		p.Down = slices.Contains(pressed, b.Down)
		p.Bomb = slices.Contains(pressed, b.Bomb)
	}
	return
}

func (g *Gui) UpdateHomeScreen() {
	if g.JustPressed(ebiten.KeySpace) {
		g.state = PlayScreen
		return
	}
	if g.JustPressed(ebiten.KeyL) {
		g.NextLevel()
	}
	if g.JustPressed(ebiten.KeyEscape) {
		g.log.Info().Msg("quitting")
		g.Quit()
	}
}

func (g *Gui) UpdatePlayScreen() {
	if g.JustPressed(ebiten.KeyEscape) {
		g.world.Pause()
		g.state = PausedScreen
		return
	}

	input := PlayerInputs(g.pressedKeys)

	// Save the input in the playthrough.
	g.playthrough.History = append(g.playthrough.History, input)
	if g.RecordToFile {
		// IMPORTANT: save the playthrough before stepping the World. If
		// a bug in the World causes it to crash, we want to save the input
		// that caused the bug before the program crashes.
		data, err := g.playthrough.Serialize()
		Check(err)
		WriteFile(g.RecordingFile, data)
	}

	g.world.Step(input)
	g.visWorld.Step()
	g.frameIdx++

	if g.world.Over {
		g.state = GameOverScreen
	}
}

func (g *Gui) UpdatePausedScreen() {
	// Effects freeze together with the World.
	if g.JustPressed(ebiten.KeyEscape) || g.JustPressed(ebiten.KeySpace) {
		g.world.Resume()
		g.state = PlayScreen
		return
	}
	if g.JustPressed(ebiten.KeyR) {
		g.RestartMatch()
		g.state = PlayScreen
		return
	}
	if g.JustPressed(ebiten.KeyH) {
		g.NewMatch(time.Now().UnixNano())
		g.state = HomeScreen
	}
}

func (g *Gui) UpdateGameOverScreen() {
	g.visWorld.Step()
	if g.JustPressed(ebiten.KeyR) {
		g.RestartMatch()
		g.state = PlayScreen
		return
	}
	if g.JustPressed(ebiten.KeyN) {
		g.NewMatch(time.Now().UnixNano())
		g.state = PlayScreen
		return
	}
	if g.JustPressed(ebiten.KeyH) || g.JustPressed(ebiten.KeyEscape) {
		g.NewMatch(time.Now().UnixNano())
		g.state = HomeScreen
	}
}

func (g *Gui) Pressed(key ebiten.Key) bool {
	return slices.Contains(g.pressedKeys, key)
}

func (g *Gui) JustPressed(key ebiten.Key) bool {
	return slices.Contains(g.justPressedKeys, key)
}

func (g *Gui) LeftClickPressedOn(button image.Rectangle) bool {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButton0) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(button)
}

func (g *Gui) UpdatePlayback() {
	nFrames := int64(len(g.playthrough.History))
	if nFrames == 0 {
		return
	}

	if g.JustPressed(ebiten.KeySpace) {
		g.playbackPaused = !g.playbackPaused
	}

	// Choose target frame.
	targetFrameIdx := g.frameIdx

	// Compute the target frame index based on where on the play bar the user
	// clicked.
	if g.LeftClickPressedOn(g.playbackBar) {
		x, _ := ebiten.CursorPosition()
		dx := int64(x - g.playbackBar.Min.X)
		targetFrameIdx = dx * nFrames / int64(g.playbackBar.Dx())
	}

	if g.Pressed(ebiten.KeyArrowLeft) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx -= g.FrameSkipShiftArrow
	}

	if g.Pressed(ebiten.KeyArrowRight) && g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipShiftArrow
	}

	if g.Pressed(ebiten.KeyArrowLeft) && !g.Pressed(ebiten.KeyShift) {
		if g.playbackPaused {
			targetFrameIdx -= g.FrameSkipArrow
		} else {
			targetFrameIdx -= g.FrameSkipArrow * 2
		}
	}

	if g.Pressed(ebiten.KeyArrowRight) && !g.Pressed(ebiten.KeyShift) {
		targetFrameIdx += g.FrameSkipArrow
	}

	targetFrameIdx = max(targetFrameIdx, 0)
	// frameIdx == nFrames means the whole playthrough has been played.
	targetFrameIdx = min(targetFrameIdx, nFrames)

	if targetFrameIdx < g.frameIdx {
		// Rewinding means replaying everything from the start.
		g.RewindTo(targetFrameIdx)
	}
	g.FastForwardTo(targetFrameIdx)

	if !g.playbackPaused {
		g.visWorld.Step()
		if g.frameIdx < nFrames {
			g.world.Step(g.playthrough.History[g.frameIdx])
			g.frameIdx++
		}
	}
}

// NextLevel switches to the next level file in alphabetical order.
func (g *Gui) NextLevel() {
	files := LevelFiles(g.FSys)
	if len(files) == 0 {
		return
	}
	idx := (slices.Index(files, g.Config.Level) + 1) % len(files)
	g.Config.Level = files[idx]
	g.level = LoadLevel(g.FSys, g.Config.Level)
	g.NewMatch(time.Now().UnixNano())
}

// ReloadLevel picks up changes made to the current level file on disk and
// starts a new match with it. A level that doesn't load is ignored, it is
// probably still being edited.
func (g *Gui) ReloadLevel() {
	previousVal := CheckCrashes
	CheckCrashes = false
	CheckFailed = nil
	level := LoadLevel(g.FSys, g.Config.Level)
	CheckCrashes = previousVal
	if CheckFailed != nil {
		g.log.Warn().Err(CheckFailed).Str("file", g.Config.Level).
			Msg("level not reloaded")
		return
	}
	g.level = level
	g.NewMatch(time.Now().UnixNano())
	g.log.Info().Str("file", g.Config.Level).Msg("level reloaded")
}

func (g *Gui) Quit() {
	g.quit = true
}
