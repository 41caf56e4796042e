package arena

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// SimulationVersion identifies the behavior of World. If a change to World
// makes a recorded playthrough play out differently, SimulationVersion must
// change as well.
const SimulationVersion = 1

// Rules are the tunable numbers of the simulation. They are part of a
// playthrough, since changing any of them changes how it plays out.
type Rules struct {
	// TickDuration is how much simulated time a Step covers.
	TickDuration time.Duration
	PlayerRadius float64
	PlayerStats
	MaxPowerups     int
	PowerupCooldown time.Duration
	// ChainReactions makes an explosion that reaches a bomb set it off.
	ChainReactions bool
}

var DefaultRules = Rules{
	TickDuration:    time.Second / 60,
	PlayerRadius:    0.4,
	PlayerStats:     DefaultPlayerStats,
	MaxPowerups:     5,
	PowerupCooldown: 5 * time.Second,
	ChainReactions:  true,
}

type EffectKind uint8

const (
	EffectExplosion EffectKind = iota
	EffectBombPlaced
	EffectPickup
	EffectDeath
)

// Effect is a fire-and-forget request for something visual at a position.
// Step is the ray step of an explosion cell, so the visual layer can delay
// the cells further from the bomb.
type Effect struct {
	Kind EffectKind
	Pos  mgl64.Vec3
	Step int
}

type Sound string

const (
	SoundExplosion  Sound = "explosion"
	SoundPowerup    Sound = "powerup"
	SoundBombPlaced Sound = "place"
	SoundDeath      Sound = "death"
)

// EffectSpawner and SoundPlayer are called in the middle of a Step and must
// return immediately.
type EffectSpawner interface {
	SpawnEffect(e Effect)
}

type SoundPlayer interface {
	PlaySound(s Sound)
}

type noEffects struct{}

func (noEffects) SpawnEffect(Effect) {}

type noSounds struct{}

func (noSounds) PlaySound(Sound) {}

// World is the complete state of an arena match. Step advances it by one
// tick. Everything in a World is public so that the GUI, tests and analysis
// tools can inspect it.
type World struct {
	Rules
	Level    Level
	Seed     int64
	Grid     *Grid
	Players  [NPlayers]Player
	Bombs    Pool[Bomb]
	Powerups Pool[Powerup]
	Spawner
	Clock
	Rand
	TickIdx int64
	Over    bool
	// Winner is the id of the player who won, or -1 for a draw. Only
	// meaningful once Over is set.
	Winner int

	// The Just* lists describe what happened during the last Step. They are
	// only valid until the next Step.
	JustPlaced   []Id
	JustExploded []Explosion
	JustKilled   []int
	JustPickedUp []Pickup

	Log     zerolog.Logger
	Effects EffectSpawner
	Sounds  SoundPlayer

	bombHeld        [NPlayers]bool
	detonationQueue []Id
}

// NewWorld builds a World for level. The seed decides the random parts of
// the level and every random decision made afterwards.
func NewWorld(level Level, seed int64, rules Rules) (*World, error) {
	w := &World{}
	w.Rules = rules
	w.Level = level
	w.Seed = seed
	w.Log = zerolog.Nop()
	w.Effects = noEffects{}
	w.Sounds = noSounds{}
	if err := w.build(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) build() error {
	w.Rand = NewRand(w.Seed)
	grid, err := w.Level.Build(&w.Rand)
	if err != nil {
		return err
	}
	w.Grid = grid
	spawns := w.Level.SpawnPoints(grid.Size())
	for i := range w.Players {
		w.Players[i] = NewPlayer(i, spawns[i], w.PlayerStats)
	}
	w.Bombs.Clear()
	w.Powerups.Clear()
	w.Spawner = Spawner{}
	w.Clock.Reset()
	w.TickIdx = 0
	w.Over = false
	w.Winner = -1
	w.bombHeld = [NPlayers]bool{}
	w.clearJust()
	return nil
}

// Reset starts a new match on the same level, with the same seed.
func (w *World) Reset() {
	// The level was valid when the World was created.
	if err := w.build(); err != nil {
		panic(err)
	}
	w.Log.Info().Str("level", w.Level.Name).Msg("world reset")
}

func (w *World) Pause() {
	w.Clock.Pause()
}

func (w *World) Resume() {
	w.Clock.Resume()
}

func (w *World) clearJust() {
	w.JustPlaced = w.JustPlaced[:0]
	w.JustExploded = w.JustExploded[:0]
	w.JustKilled = w.JustKilled[:0]
	w.JustPickedUp = w.JustPickedUp[:0]
}

// Step advances the World by one tick of Rules.TickDuration.
//
// The order within a tick is fixed: movement, bomb placement, detonations,
// powerup pickups, powerup spawning. Nothing happens once the match is over
// or while the World is paused, except that the state of the bomb buttons is
// still tracked, so holding a button through a pause does not place a bomb
// when the pause ends.
func (w *World) Step(input Input) {
	w.clearJust()

	var bombPressed [NPlayers]bool
	for i := range w.Players {
		held := input.Players[i].Bomb
		bombPressed[i] = held && !w.bombHeld[i]
		w.bombHeld[i] = held
	}

	if w.Over || w.IsPaused() {
		return
	}

	w.Advance(w.TickDuration)
	w.TickIdx++

	for i := range w.Players {
		w.movePlayer(&w.Players[i], input.Players[i])
	}

	for i := range w.Players {
		if bombPressed[i] {
			w.PlaceBomb(i)
		}
	}

	w.advanceBombs()
	w.checkGameOver()
	if w.Over {
		return
	}

	w.checkPickups()
	w.maybeSpawnPowerup()
}

func (w *World) movePlayer(p *Player, input PlayerInput) {
	dir := input.Direction()
	p.Face(dir)
	displacement := dir.Mul(p.Speed() * w.TickDuration.Seconds())
	p.Pos = w.Grid.CollideCircle(p.Pos, displacement, w.PlayerRadius,
		p.LastPlaced)
	if p.Cell() != p.LastPlaced {
		p.LastPlaced = NoCell
	}
}

func (w *World) checkPickups() {
	for id, pu := range w.Powerups.All() {
		for i := range w.Players {
			p := &w.Players[i]
			if !p.Alive() || !SameCell(pu.Pos, p.Pos) {
				continue
			}
			p.ApplyPowerup(pu.Kind)
			w.JustPickedUp = append(w.JustPickedUp, Pickup{Player: i,
				Powerup: *pu})
			w.Effects.SpawnEffect(Effect{Kind: EffectPickup, Pos: pu.Pos})
			w.Sounds.PlaySound(SoundPowerup)
			w.Log.Debug().
				Int("player", i).
				Stringer("kind", pu.Kind).
				Msg("powerup collected")
			w.Powerups.Remove(id)
			break
		}
	}
}

func (w *World) maybeSpawnPowerup() {
	pu, ok := w.MaybeSpawn(w.Now(), w.Powerups.Len(), w.MaxPowerups,
		w.PowerupCooldown, w.Grid, &w.Rand)
	if !ok {
		return
	}
	w.Powerups.Add(pu)
	w.Log.Debug().
		Stringer("kind", pu.Kind).
		Int("x", pu.Cell.X).
		Int("y", pu.Cell.Y).
		Msg("powerup spawned")
}

func (w *World) checkGameOver() {
	for i := range w.Players {
		if !w.Players[i].Alive() {
			w.Over = true
		}
	}
	if !w.Over {
		return
	}
	l0, l1 := w.Players[0].Lives, w.Players[1].Lives
	switch {
	case l0 > l1:
		w.Winner = 0
	case l1 > l0:
		w.Winner = 1
	default:
		w.Winner = -1
	}
	w.Log.Info().
		Int("winner", w.Winner).
		Int("lives0", l0).
		Int("lives1", l1).
		Msg("game over")
}
