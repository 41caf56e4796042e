package main

import (
	"embed"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/marisvali/blastarena/arena"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
)

// ReleaseVersion is the version of an executable built and given to someone
// to play. It is a unique label for the functionality that a player is
// presented with, so it must change every time a new executable is handed
// out, and always when SimulationVersion or InputVersion change.
// It is recorded in every playthrough.
const ReleaseVersion = 1

//go:embed data/*
var embeddedFiles embed.FS

type GameState int64

const (
	HomeScreen GameState = iota
	PlayScreen
	PausedScreen
	GameOverScreen
	Playback
)

type Gui struct {
	Config
	log              zerolog.Logger
	logCloser        io.Closer
	FSys             FS
	level            arena.Level
	world            *arena.World
	playthrough      arena.Playthrough
	visWorld         VisWorld
	sounds           *SoundManager
	instances        []arena.Instance
	frameIdx         int64
	state            GameState
	playbackPaused   bool
	pressedKeys      []ebiten.Key
	justPressedKeys  []ebiten.Key // keys pressed in this frame
	defaultFont      font.Face
	smallFont        font.Face
	gameArea         image.Rectangle
	playArea         image.Rectangle
	playbackBar      image.Rectangle
	enableDebugAreas bool
	folderWatcher    FolderWatcher
	devModeEnabled   bool
	quit             bool
}

type Config struct {
	StartState          string      `yaml:"StartState"`
	Level               string      `yaml:"Level"`
	LogLevel            string      `yaml:"LogLevel"`
	LogFile             string      `yaml:"LogFile"`
	RecordToFile        bool        `yaml:"RecordToFile"`
	RecordingFile       string      `yaml:"RecordingFile"`
	PlaybackFile        string      `yaml:"PlaybackFile"`
	Sound               bool        `yaml:"Sound"`
	Volume              float64     `yaml:"Volume"`
	FrameSkipArrow      int64       `yaml:"FrameSkipArrow"`
	FrameSkipShiftArrow int64       `yaml:"FrameSkipShiftArrow"`
	Rules               RulesConfig `yaml:"Rules"`
}

// RulesConfig is arena.Rules the way a person writes it in a file: durations
// in seconds. The tick duration is not configurable, it follows ebiten's
// update rate.
type RulesConfig struct {
	PlayerRadius           float64 `yaml:"PlayerRadius"`
	BaseSpeed              float64 `yaml:"BaseSpeed"`
	SpeedPerLevel          float64 `yaml:"SpeedPerLevel"`
	SpeedCap               float64 `yaml:"SpeedCap"`
	StartBombs             int     `yaml:"StartBombs"`
	StartLives             int     `yaml:"StartLives"`
	FuseSeconds            float64 `yaml:"FuseSeconds"`
	MaxPowerups            int     `yaml:"MaxPowerups"`
	PowerupCooldownSeconds float64 `yaml:"PowerupCooldownSeconds"`
	ChainReactions         bool    `yaml:"ChainReactions"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (c RulesConfig) Rules() arena.Rules {
	return arena.Rules{
		TickDuration: time.Second / time.Duration(ebiten.DefaultTPS),
		PlayerRadius: c.PlayerRadius,
		PlayerStats: arena.PlayerStats{
			BaseSpeed:     c.BaseSpeed,
			SpeedPerLevel: c.SpeedPerLevel,
			SpeedCap:      c.SpeedCap,
			StartBombs:    c.StartBombs,
			StartLives:    c.StartLives,
			Fuse:          seconds(c.FuseSeconds),
		},
		MaxPowerups:     c.MaxPowerups,
		PowerupCooldown: seconds(c.PowerupCooldownSeconds),
		ChainReactions:  c.ChainReactions,
	}
}

func main() {
	var g Gui

	g.FSys = DataFS()
	if g.FSys != &embeddedFiles {
		// Initialize the watcher with the current timestamps, so that the
		// first check doesn't report a change.
		g.folderWatcher.Folder = "data/levels"
		g.folderWatcher.FolderContentsChanged()
	}

	filePassedForPlayback := false
	if len(os.Args) == 2 {
		if os.Args[1] == "developer-mode-enabled" {
			g.devModeEnabled = true
		} else {
			filePassedForPlayback = true
		}
	}

	g.LoadGuiData()

	g.log, g.logCloser = NewLogger(g.LogLevel, g.LogFile)
	defer func() { Check(g.logCloser.Close()) }()
	g.log.Info().
		Str("user", getUsername()).
		Int64("release", ReleaseVersion).
		Int64("simulation", arena.SimulationVersion).
		Int64("input", arena.InputVersion).
		Msg("starting")

	g.sounds = NewSoundManager(g.Volume)
	if g.Sound {
		if err := g.sounds.Initialize(); err != nil {
			// The game is playable without sound.
			g.log.Warn().Err(err).Msg("audio initialization failed")
		}
	}
	defer g.sounds.Cleanup()

	if filePassedForPlayback {
		g.StartState = "Playback"
		g.PlaybackFile = os.Args[1]
	}

	switch g.StartState {
	case "Playback":
		g.state = Playback
		g.enableDebugAreas = true
		p, err := arena.DeserializePlaythrough(ReadFile(g.PlaybackFile))
		Check(err)
		g.playthrough = p
		g.log.Info().
			Str("file", g.PlaybackFile).
			Stringer("id", p.Id).
			Int("frames", len(p.History)).
			Msg("playing back")
		g.RewindTo(0)
	case "Home":
		g.state = HomeScreen
		g.NewMatch(time.Now().UnixNano())
	case "Play":
		g.state = PlayScreen
		g.NewMatch(time.Now().UnixNano())
	default:
		panic(fmt.Errorf("invalid g.StartState: %s", g.StartState))
	}

	ebiten.SetWindowTitle("Blast Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(g.gameArea.Dx(), g.gameArea.Dy())
	err := ebiten.RunGame(&g)
	Check(err)
}

// NewMatch starts recording a new playthrough of the current level and
// builds its World.
func (g *Gui) NewMatch(seed int64) {
	g.playthrough = arena.NewPlaythrough(g.level, g.Rules.Rules(), seed,
		ReleaseVersion)
	w, err := arena.NewWorldFromPlaythrough(&g.playthrough)
	Check(err)
	g.attachWorld(w)
	g.log.Info().
		Stringer("id", g.playthrough.Id).
		Str("level", g.level.Name).
		Int64("seed", seed).
		Msg("new match")
}

// RestartMatch plays the current level again with the same seed, so the
// arena looks exactly like it did at the start of the current match.
func (g *Gui) RestartMatch() {
	g.playthrough = arena.NewPlaythrough(g.playthrough.Level,
		g.playthrough.Rules, g.playthrough.Seed, ReleaseVersion)
	g.world.Reset()
	// Restarting from the pause screen.
	g.world.Resume()
	g.visWorld.Clear()
	g.sounds.Silence()
	g.frameIdx = 0
}

func (g *Gui) attachWorld(w *arena.World) {
	w.Log = g.log
	w.Effects = &g.visWorld
	w.Sounds = g.sounds
	g.world = w
	g.visWorld.Clear()
	g.frameIdx = 0
	g.UpdateLayout()
}

// RewindTo rebuilds the World of the playthrough and replays it up to
// frameIdx.
func (g *Gui) RewindTo(frameIdx int64) {
	w, err := arena.NewWorldFromPlaythrough(&g.playthrough)
	Check(err)
	g.attachWorld(w)
	g.FastForwardTo(frameIdx)
}

// muted swallows the effects and sounds of ticks that are skipped over.
type muted struct{}

func (muted) SpawnEffect(arena.Effect) {}
func (muted) PlaySound(arena.Sound)    {}

// FastForwardTo steps the World through the playthrough until it reaches
// frameIdx. The skipped ticks produce no effects and no sounds.
func (g *Gui) FastForwardTo(frameIdx int64) {
	g.world.Effects = muted{}
	g.world.Sounds = muted{}
	for g.frameIdx < frameIdx {
		g.world.Step(g.playthrough.History[g.frameIdx])
		g.frameIdx++
	}
	g.world.Effects = &g.visWorld
	g.world.Sounds = g.sounds
}
