// Command replay plays back a recorded playthrough in the terminal.
//
// Usage: replay <playthrough-file>
//
// Space pauses, the right arrow steps one tick while paused, the left arrow
// goes back one second, Esc or q quits.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/marisvali/blastarena/arena"
	"github.com/rs/zerolog"
)

type Player struct {
	screen      tcell.Screen
	playthrough arena.Playthrough
	world       *arena.World
	view        *View
	frameIdx    int
	paused      bool
	log         zerolog.Logger
}

var (
	styleWall  = tcell.StyleDefault.Foreground(tcell.ColorTan)
	styleProp  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleBomb  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFire  = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleP1    = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	styleP2    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePower = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleText  = tcell.StyleDefault
)

func styleFor(r rune) tcell.Style {
	switch r {
	case '#':
		return styleWall
	case 'B':
		return styleBomb
	case '*':
		return styleFire
	case '1':
		return styleP1
	case '2':
		return styleP2
	case 's', 'r', 'b':
		return stylePower
	default:
		return styleProp
	}
}

func NewPlayer(p arena.Playthrough, log zerolog.Logger) (*Player, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	pl := &Player{
		screen:      screen,
		playthrough: p,
		log:         log,
	}
	if err := pl.rewind(0); err != nil {
		screen.Fini()
		return nil, err
	}
	return pl, nil
}

// rewind rebuilds the World and replays it up to frameIdx.
func (pl *Player) rewind(frameIdx int) error {
	w, err := arena.NewWorldFromPlaythrough(&pl.playthrough)
	if err != nil {
		return err
	}
	pl.world = w
	pl.view = NewView()
	pl.frameIdx = 0
	pl.view.Update(w)
	for pl.frameIdx < frameIdx {
		pl.step()
	}
	return nil
}

func (pl *Player) step() {
	if pl.frameIdx >= len(pl.playthrough.History) {
		return
	}
	pl.world.Step(pl.playthrough.History[pl.frameIdx])
	pl.view.Update(pl.world)
	pl.frameIdx++
	for _, e := range pl.world.JustExploded {
		pl.log.Debug().
			Int("frame", pl.frameIdx).
			Int("owner", e.Owner).
			Int("cells", len(e.Cells)).
			Ints("killed", e.Killed).
			Msg("explosion")
	}
}

func (pl *Player) draw() {
	pl.screen.Clear()
	for y, row := range pl.view.Cells {
		for x, r := range row {
			pl.screen.SetContent(x, y, r, nil, styleFor(r))
		}
	}

	y := len(pl.view.Cells) + 1
	for i := range pl.world.Players {
		p := &pl.world.Players[i]
		pl.drawText(0, y+i, fmt.Sprintf(
			"P%d lives %d score %d bombs %d speed %d radius %d",
			i+1, p.Lives, p.Score, p.Bombs, p.SpeedLevel, p.RadiusLevel))
	}

	status := fmt.Sprintf("frame %d/%d  %s", pl.frameIdx,
		len(pl.playthrough.History), pl.world.Now().Truncate(time.Second/10))
	if pl.paused {
		status += "  paused"
	}
	if pl.world.Over {
		if pl.world.Winner < 0 {
			status += "  draw"
		} else {
			status += fmt.Sprintf("  player %d wins", pl.world.Winner+1)
		}
	}
	pl.drawText(0, y+arena.NPlayers+1, status)
	pl.screen.Show()
}

func (pl *Player) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		pl.screen.SetContent(x+i, y, r, nil, styleText)
	}
}

// handleInput returns false when the user wants to quit.
func (pl *Player) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			pl.paused = !pl.paused
		case ev.Key() == tcell.KeyRight && pl.paused:
			pl.step()
		case ev.Key() == tcell.KeyLeft:
			target := max(pl.frameIdx-int(time.Second/pl.world.TickDuration), 0)
			if err := pl.rewind(target); err != nil {
				pl.log.Error().Err(err).Msg("rewind failed")
				return false
			}
		}
		pl.draw()
	case *tcell.EventResize:
		pl.screen.Sync()
	}
	return true
}

func (pl *Player) run() {
	ticker := time.NewTicker(pl.world.TickDuration)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- pl.screen.PollEvent()
		}
	}()

	pl.draw()
	for {
		select {
		case ev := <-eventChan:
			if !pl.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !pl.paused {
				pl.step()
			}
			pl.draw()
		}
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: replay <playthrough-file>")
		os.Exit(2)
	}

	// The terminal belongs to tcell, so logs go to a file.
	logFile, err := os.Create("replay.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := zerolog.New(zerolog.ConsoleWriter{Out: logFile, NoColor: true}).
		With().Timestamp().Logger()

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read playthrough: %v\n", err)
		os.Exit(1)
	}
	p, err := arena.DeserializePlaythrough(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load playthrough: %v\n", err)
		os.Exit(1)
	}
	log.Info().
		Stringer("id", p.Id).
		Int64("release", p.ReleaseVersion).
		Int("frames", len(p.History)).
		Msg("replaying")

	pl, err := NewPlayer(p, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer pl.screen.Fini()

	pl.run()
}
