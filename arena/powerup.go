package arena

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type PowerupKind uint8

const (
	PowerupSpeed PowerupKind = iota
	PowerupRadius
	PowerupBomb
	NPowerupKinds
)

func (k PowerupKind) String() string {
	switch k {
	case PowerupSpeed:
		return "speed"
	case PowerupRadius:
		return "radius"
	case PowerupBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

func (k PowerupKind) Material() MaterialId {
	switch k {
	case PowerupSpeed:
		return MaterialPowerupSpeed
	case PowerupRadius:
		return MaterialPowerupRadius
	default:
		return MaterialPowerupBomb
	}
}

// Powerup is a pickup lying on the grid. It stays until a player collects
// it. Powerups do not occupy the foreground layer, so they neither block
// movement nor stop explosions.
type Powerup struct {
	Kind PowerupKind
	Cell Pt
	Pos  mgl64.Vec3
}

// PowerupHeight is the Y coordinate powerups float at.
const PowerupHeight = 0.5

// Spawner decides when new powerups appear.
type Spawner struct {
	// NextSpawn is the earliest time at which a spawn is allowed.
	NextSpawn time.Duration
}

// MaybeSpawn returns a new powerup if fewer than maxActive are active, the
// cooldown has passed and the grid has an empty cell. The cooldown restarts
// only when a powerup is actually created. When there is no empty cell,
// nothing changes, including the state of rng.
func (s *Spawner) MaybeSpawn(now time.Duration, active int, maxActive int,
	cooldown time.Duration, grid *Grid, rng *Rand) (Powerup, bool) {
	if active >= maxActive || now <= s.NextSpawn {
		return Powerup{}, false
	}
	cell, ok := grid.RandomEmptyCell(rng)
	if !ok {
		return Powerup{}, false
	}
	kind := PowerupKind(rng.RInt(0, int(NPowerupKinds)-1))
	s.NextSpawn = now + cooldown
	return Powerup{
		Kind: kind,
		Cell: cell,
		Pos:  CellCenter(cell, PowerupHeight),
	}, true
}

// Pickup records a powerup collected during the last step.
type Pickup struct {
	Player  int
	Powerup Powerup
}
