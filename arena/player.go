package arena

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleSmoothing is the fraction of the remaining turn a player makes towards
// its movement direction every tick.
const AngleSmoothing = 0.1

// PlayerStats are the starting values and limits every player shares.
type PlayerStats struct {
	BaseSpeed     float64
	SpeedPerLevel float64
	SpeedCap      float64
	StartBombs    int
	StartLives    int
	Fuse          time.Duration
}

var DefaultPlayerStats = PlayerStats{
	BaseSpeed:     2.5,
	SpeedPerLevel: 0.2,
	SpeedCap:      6,
	StartBombs:    1,
	StartLives:    3,
	Fuse:          2 * time.Second,
}

type Inventory struct {
	// Bombs is the number of bombs the player can place right now. A placed
	// bomb gives its charge back when it detonates.
	Bombs       int
	SpeedLevel  int
	RadiusLevel int
	Fuse        time.Duration
	// LastPlaced is the cell of the bomb the player placed most recently, as
	// long as the player hasn't left that cell yet. The player does not
	// collide with it. NoCell otherwise.
	LastPlaced Pt
}

type Player struct {
	Id    int
	Pos   mgl64.Vec3
	Angle float64
	Lives int
	Score int
	Inventory
	Spawn mgl64.Vec3
	Stats PlayerStats
}

func NewPlayer(id int, spawn mgl64.Vec3, stats PlayerStats) (p Player) {
	p.Id = id
	p.Spawn = spawn
	p.Stats = stats
	p.Reset()
	return
}

func (p *Player) Speed() float64 {
	return math.Min(p.Stats.BaseSpeed+float64(p.SpeedLevel)*p.Stats.SpeedPerLevel,
		p.Stats.SpeedCap)
}

func (p *Player) BombRadius() int {
	return 1 + p.RadiusLevel
}

func (p *Player) FuseDuration() time.Duration {
	return p.Fuse
}

func (p *Player) Cell() Pt {
	return CellOf(Ground(p.Pos))
}

func (p *Player) Alive() bool {
	return p.Lives > 0
}

// Kill takes a life and half of the player's powerups (rounded up) and puts
// the player back at its spawn point.
func (p *Player) Kill() {
	p.Lives--
	p.Bombs = halfUp(p.Bombs)
	p.SpeedLevel = halfUp(p.SpeedLevel)
	p.RadiusLevel = halfUp(p.RadiusLevel)
	p.LastPlaced = NoCell
	p.ResetPosition()
}

func (p *Player) ResetPosition() {
	p.Pos = p.Spawn
	p.Angle = 0
}

// Reset restores everything to the state at the start of a session.
func (p *Player) Reset() {
	p.Inventory = Inventory{
		Bombs:      p.Stats.StartBombs,
		Fuse:       p.Stats.Fuse,
		LastPlaced: NoCell,
	}
	p.Lives = p.Stats.StartLives
	p.Score = 0
	p.ResetPosition()
}

func (p *Player) ApplyPowerup(kind PowerupKind) {
	switch kind {
	case PowerupSpeed:
		p.SpeedLevel++
	case PowerupRadius:
		p.RadiusLevel++
	case PowerupBomb:
		p.Bombs++
	default:
		panic("unhandled default case")
	}
}

// Face turns the player a step towards the direction of motion. A zero
// motion leaves the angle alone.
func (p *Player) Face(motion mgl64.Vec3) {
	if motion[0] == 0 && motion[2] == 0 {
		return
	}
	target := math.Atan2(-motion[2], motion[0])*180/math.Pi - 90
	target = WrapDegrees(target)
	p.Angle += WrapDegrees(target-p.Angle) * AngleSmoothing
}

// WrapDegrees maps an angle in degrees to [-180, 180).
func WrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

func halfUp(x int) int {
	return (x + 1) / 2
}
