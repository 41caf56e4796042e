package arena

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRules are the default rules without powerups, so nothing random
// happens in the tests unless a test asks for it.
func testRules() Rules {
	r := DefaultRules
	r.MaxPowerups = 0
	return r
}

func newTestWorld(t *testing.T, rows ...string) *World {
	t.Helper()
	w, err := NewWorld(Level{Name: "test", Foreground: rows}, 0, testRules())
	require.NoError(t, err)
	return w
}

var openArena = []string{
	"#######",
	"#     #",
	"#     #",
	"#     #",
	"#######",
}

// placeBombAt puts a player on cell, makes it place a bomb of the given
// radius there and then moves the player to pos.
func placeBombAt(t *testing.T, w *World, player int, cell Pt, radius int,
	pos mgl64.Vec3) Id {
	t.Helper()
	p := &w.Players[player]
	p.Pos = CellCenter(cell, 0)
	p.RadiusLevel = radius - 1
	id := w.PlaceBomb(player)
	require.NotEqual(t, NoId, id)
	p.Pos = pos
	p.LastPlaced = NoCell
	return id
}

// stepUntilExplosion steps the world until at least one bomb goes off.
func stepUntilExplosion(t *testing.T, w *World) {
	t.Helper()
	for range 10000 {
		w.Step(Input{})
		if len(w.JustExploded) > 0 {
			return
		}
	}
	require.Fail(t, "no explosion happened")
}

// Somewhere no explosion in these tests can reach: inside a wall.
var safePos = mgl64.Vec3{0.5, 0, 0.5}

func TestExplosion_RaysStopAtObstacles(t *testing.T) {
	w := newTestWorld(t,
		"#####",
		"##T##",
		"#  ##",
		"##T##",
		"#####")
	id := placeBombAt(t, w, 0, Pt{2, 2}, 2, safePos)
	assert.Equal(t, BombTile, w.Grid.Tile(Pt{2, 2}))
	assert.Equal(t, 0, w.Players[0].Bombs)

	stepUntilExplosion(t, w)
	require.Len(t, w.JustExploded, 1)
	e := w.JustExploded[0]
	assert.Equal(t, id, e.Bomb)
	assert.Equal(t, []ExplosionCell{
		{Cell: Pt{2, 2}, Step: 0},
		{Cell: Pt{2, 1}, Step: 1, Destroyed: Tombstone},
		{Cell: Pt{2, 3}, Step: 1, Destroyed: Tombstone},
		{Cell: Pt{1, 2}, Step: 1},
	}, e.Cells)
	assert.Equal(t, 2, e.NDestroyed())

	// Destructibles are gone, walls are untouched, the bomb is gone.
	assert.Equal(t, Empty, w.Grid.Tile(Pt{2, 2}))
	assert.Equal(t, Empty, w.Grid.Tile(Pt{2, 1}))
	assert.Equal(t, Empty, w.Grid.Tile(Pt{2, 3}))
	assert.Equal(t, Wall, w.Grid.Tile(Pt{3, 2}))
	assert.Equal(t, Wall, w.Grid.Tile(Pt{0, 2}))
	assert.Equal(t, 0, w.Bombs.Len())

	// The charge came back.
	assert.Equal(t, 1, w.Players[0].Bombs)
	assert.Empty(t, e.Killed)
}

func TestExplosion_DestroysOnlyTheFirstDestructible(t *testing.T) {
	w := newTestWorld(t,
		"#########",
		"#  OOO  #",
		"#########")
	placeBombAt(t, w, 0, Pt{2, 1}, 5, safePos)
	stepUntilExplosion(t, w)
	assert.Equal(t, Empty, w.Grid.Tile(Pt{3, 1}))
	assert.Equal(t, Barrel, w.Grid.Tile(Pt{4, 1}))
	assert.Equal(t, Barrel, w.Grid.Tile(Pt{5, 1}))
	assert.Equal(t, 1, w.JustExploded[0].NDestroyed())
}

func TestExplosion_WaitsForTheFuse(t *testing.T) {
	w := newTestWorld(t, openArena...)
	placeBombAt(t, w, 0, Pt{3, 2}, 1, safePos)
	stepUntilExplosion(t, w)
	assert.GreaterOrEqual(t, w.Now(), DefaultPlayerStats.Fuse)
	assert.Less(t, w.Now(), DefaultPlayerStats.Fuse+w.TickDuration)
}

func TestExplosion_KillsPlayer(t *testing.T) {
	w := newTestWorld(t, openArena...)
	placeBombAt(t, w, 1, Pt{2, 2}, 1, safePos)

	victim := &w.Players[0]
	victim.Pos = mgl64.Vec3{2.5, 0, 2.5}
	victim.Bombs = 5
	victim.SpeedLevel = 3
	victim.RadiusLevel = 4

	stepUntilExplosion(t, w)
	assert.Equal(t, []int{0}, w.JustExploded[0].Killed)
	assert.Equal(t, []int{0}, w.JustKilled)
	assert.Equal(t, 2, victim.Lives)
	assert.Equal(t, 3, victim.Bombs)
	assert.Equal(t, 2, victim.SpeedLevel)
	assert.Equal(t, 2, victim.RadiusLevel)
	assert.Equal(t, victim.Spawn, victim.Pos)
	assert.Equal(t, 0.0, victim.Angle)

	assert.Equal(t, 1, w.Players[1].Score)
	assert.Equal(t, 0, victim.Score)
	assert.Equal(t, 3, w.Players[1].Lives)
	assert.False(t, w.Over)
}

func TestExplosion_KillsAtMostOncePerExplosion(t *testing.T) {
	w := newTestWorld(t, openArena...)
	// A big explosion centered on the player: every ray starts next to the
	// player's cell.
	placeBombAt(t, w, 1, Pt{3, 2}, 4, safePos)
	w.Players[0].Pos = mgl64.Vec3{3.5, 0, 2.5}

	stepUntilExplosion(t, w)
	assert.Equal(t, 2, w.Players[0].Lives)
	assert.Equal(t, 1, w.Players[1].Score)
	assert.Equal(t, []int{0}, w.JustExploded[0].Killed)
}

func TestExplosion_SelfKillCreditsTheOtherPlayer(t *testing.T) {
	w := newTestWorld(t, openArena...)
	p := &w.Players[0]
	p.Pos = mgl64.Vec3{3.5, 0, 2.5}
	p.Bombs = 4
	require.NotEqual(t, NoId, w.PlaceBomb(0))

	stepUntilExplosion(t, w)
	assert.Equal(t, 2, p.Lives)
	assert.Equal(t, 1, w.Players[1].Score)
	// 3 left after placing, halved to 2, plus the one that came back.
	assert.Equal(t, 3, p.Bombs)
}

func TestExplosion_ChainReaction(t *testing.T) {
	w := newTestWorld(t, openArena...)
	id1 := placeBombAt(t, w, 0, Pt{2, 2}, 1, safePos)
	id2 := placeBombAt(t, w, 1, Pt{3, 2}, 1, mgl64.Vec3{6.5, 0, 0.5})
	w.Bombs.Get(id2).DetonateAt = time.Hour

	stepUntilExplosion(t, w)
	require.Len(t, w.JustExploded, 2)
	assert.Equal(t, id1, w.JustExploded[0].Bomb)
	assert.Equal(t, []Id{id2}, w.JustExploded[0].Chained)
	assert.Equal(t, id2, w.JustExploded[1].Bomb)
	assert.Equal(t, 0, w.Bombs.Len())
	assert.Equal(t, Empty, w.Grid.Tile(Pt{3, 2}))
	assert.Equal(t, 1, w.Players[0].Bombs)
	assert.Equal(t, 1, w.Players[1].Bombs)

	// The bomb blocked the first ray, so (3, 2) is only reached by the
	// second explosion, which reaches (4, 2) as well.
	cells := func(e Explosion) (pts []Pt) {
		for _, c := range e.Cells {
			pts = append(pts, c.Cell)
		}
		return
	}
	assert.NotContains(t, cells(w.JustExploded[0]), Pt{3, 2})
	assert.Contains(t, cells(w.JustExploded[1]), Pt{4, 2})
}

func TestExplosion_ChainReactionsDisabled(t *testing.T) {
	w := newTestWorld(t, openArena...)
	w.ChainReactions = false
	placeBombAt(t, w, 0, Pt{2, 2}, 3, safePos)
	id2 := placeBombAt(t, w, 1, Pt{3, 2}, 1, mgl64.Vec3{6.5, 0, 0.5})
	w.Bombs.Get(id2).DetonateAt = time.Hour

	stepUntilExplosion(t, w)
	require.Len(t, w.JustExploded, 1)
	assert.Empty(t, w.JustExploded[0].Chained)
	assert.NotNil(t, w.Bombs.Get(id2))
	assert.Equal(t, BombTile, w.Grid.Tile(Pt{3, 2}))
	for _, c := range w.JustExploded[0].Cells {
		assert.NotEqual(t, Pt{4, 2}, c.Cell)
	}
}

func TestExplosion_ChainedExplosionsKillSeparately(t *testing.T) {
	level := Level{
		Foreground: openArena,
		Spawns:     []Spawn{{X: 1.5, Z: 2.5}, {X: 5.5, Z: 3.5}},
	}
	w, err := NewWorld(level, 0, testRules())
	require.NoError(t, err)
	w.Players[1].Bombs = 2
	placeBombAt(t, w, 1, Pt{2, 2}, 2, safePos)
	id2 := placeBombAt(t, w, 1, Pt{3, 2}, 2, safePos)
	w.Bombs.Get(id2).DetonateAt = time.Hour
	w.Players[0].Pos = mgl64.Vec3{2.5, 0, 1.5}

	// The first explosion kills the player, who respawns at (1, 2). The first
	// explosion reaches that cell too, but it already killed the player. The
	// second explosion reaches it as well and kills the player again.
	stepUntilExplosion(t, w)
	require.Len(t, w.JustExploded, 2)
	assert.Equal(t, []int{0}, w.JustExploded[0].Killed)
	assert.Equal(t, []int{0}, w.JustExploded[1].Killed)
	assert.Equal(t, []int{0, 0}, w.JustKilled)
	assert.Equal(t, 1, w.Players[0].Lives)
	assert.Equal(t, 2, w.Players[1].Score)
}

func TestPlaceBomb_Rejected(t *testing.T) {
	w := newTestWorld(t,
		"#####",
		"# T #",
		"#   #",
		"#####")
	p := &w.Players[0]

	// No charges left.
	p.Pos = mgl64.Vec3{1.5, 0, 2.5}
	p.Bombs = 0
	before := p.Inventory
	assert.Equal(t, NoId, w.PlaceBomb(0))
	assert.Equal(t, before, p.Inventory)
	assert.Equal(t, Empty, w.Grid.Tile(Pt{1, 2}))
	assert.Equal(t, 0, w.Bombs.Len())

	// Standing on something that isn't empty.
	p.Bombs = 1
	p.Pos = mgl64.Vec3{2.5, 0, 1.5}
	before = p.Inventory
	assert.Equal(t, NoId, w.PlaceBomb(0))
	assert.Equal(t, before, p.Inventory)
	assert.Equal(t, Tombstone, w.Grid.Tile(Pt{2, 1}))

	// Standing on a bomb.
	p.Bombs = 2
	p.Pos = mgl64.Vec3{1.5, 0, 2.5}
	assert.NotEqual(t, NoId, w.PlaceBomb(0))
	before = p.Inventory
	assert.Equal(t, NoId, w.PlaceBomb(0))
	assert.Equal(t, before, p.Inventory)
	assert.Equal(t, 1, w.Bombs.Len())
}

func TestStep_BombButtonIsEdgeTriggered(t *testing.T) {
	w := newTestWorld(t, openArena...)
	p := &w.Players[0]
	p.Bombs = 3

	var in Input
	in.Players[0].Bomb = true
	for range 10 {
		w.Step(in)
	}
	assert.Equal(t, 1, w.Bombs.Len())
	assert.Equal(t, 2, p.Bombs)

	// Move to another cell while still holding the button: nothing.
	p.Pos = mgl64.Vec3{3.5, 0, 2.5}
	p.LastPlaced = NoCell
	w.Step(in)
	assert.Equal(t, 1, w.Bombs.Len())

	// Release and press again.
	w.Step(Input{})
	w.Step(in)
	assert.Equal(t, 2, w.Bombs.Len())
	assert.Equal(t, 1, p.Bombs)
	assert.Len(t, w.JustPlaced, 1)
}

func TestStep_OwnerCanWalkOffTheirBomb(t *testing.T) {
	w := newTestWorld(t, openArena...)
	p := &w.Players[0]
	p.Pos = mgl64.Vec3{2.5, 0, 2.5}

	var in Input
	in.Players[0].Bomb = true
	w.Step(in)
	require.Equal(t, 1, w.Bombs.Len())
	assert.Equal(t, Pt{2, 2}, p.LastPlaced)

	in.Players[0].Bomb = false
	in.Players[0].Right = true
	prevX := p.Pos[0]
	for range 30 {
		w.Step(in)
		assert.Greater(t, p.Pos[0], prevX)
		prevX = p.Pos[0]
	}
	assert.Equal(t, NoCell, p.LastPlaced)
	assert.Greater(t, p.Pos[0], 3.0+w.PlayerRadius)

	// Now the bomb blocks the way back.
	in.Players[0].Right = false
	in.Players[0].Left = true
	for range 60 {
		w.Step(in)
	}
	assert.InDelta(t, 2.7+w.PlayerRadius, p.Pos[0], 1e-9)
}

func TestStep_PauseFreezesFuses(t *testing.T) {
	w := newTestWorld(t, openArena...)
	id := placeBombAt(t, w, 0, Pt{3, 2}, 1, safePos)
	for range 60 {
		w.Step(Input{})
	}
	now := w.Now()

	w.Pause()
	var in Input
	in.Players[1].Bomb = true
	in.Players[1].Left = true
	pos := w.Players[1].Pos
	for range 1000 {
		w.Step(in)
	}
	assert.Equal(t, now, w.Now())
	assert.NotNil(t, w.Bombs.Get(id))
	assert.Equal(t, pos, w.Players[1].Pos)

	// Resuming doesn't set off the bomb, and the button that was held
	// through the pause doesn't place a bomb.
	w.Resume()
	w.Step(in)
	assert.NotNil(t, w.Bombs.Get(id))
	assert.Equal(t, 1, w.Bombs.Len())

	stepUntilExplosion(t, w)
	assert.GreaterOrEqual(t, w.Now(), DefaultPlayerStats.Fuse)
	assert.Less(t, w.Now(), DefaultPlayerStats.Fuse+w.TickDuration)
}

func TestStep_GameOver(t *testing.T) {
	w := newTestWorld(t, openArena...)
	placeBombAt(t, w, 1, Pt{2, 2}, 1, safePos)
	w.Players[0].Lives = 1
	w.Players[0].Pos = mgl64.Vec3{2.5, 0, 2.5}

	stepUntilExplosion(t, w)
	assert.True(t, w.Over)
	assert.Equal(t, 1, w.Winner)

	// Nothing moves anymore.
	now := w.Now()
	var in Input
	in.Players[1].Up = true
	pos := w.Players[1].Pos
	w.Step(in)
	assert.Equal(t, now, w.Now())
	assert.Equal(t, pos, w.Players[1].Pos)
}

func TestStep_GameOverDraw(t *testing.T) {
	w := newTestWorld(t, openArena...)
	placeBombAt(t, w, 1, Pt{2, 2}, 1, safePos)
	w.Players[0].Lives = 1
	w.Players[1].Lives = 1
	w.Players[0].Pos = mgl64.Vec3{2.5, 0, 2.5}
	w.Players[1].Pos = mgl64.Vec3{3.5, 0, 2.5}

	stepUntilExplosion(t, w)
	assert.True(t, w.Over)
	assert.Equal(t, -1, w.Winner)
	assert.Equal(t, 1, w.Players[0].Score)
	assert.Equal(t, 1, w.Players[1].Score)
}

func TestStep_PickupPowerup(t *testing.T) {
	w := newTestWorld(t, openArena...)
	cell := Pt{3, 2}
	id := w.Powerups.Add(Powerup{Kind: PowerupRadius, Cell: cell,
		Pos: CellCenter(cell, PowerupHeight)})

	// Both players are on it, the first one gets it.
	w.Players[0].Pos = mgl64.Vec3{3.4, 0, 2.6}
	w.Players[1].Pos = mgl64.Vec3{3.6, 0, 2.4}
	w.Step(Input{})
	assert.Nil(t, w.Powerups.Get(id))
	assert.Equal(t, 1, w.Players[0].RadiusLevel)
	assert.Equal(t, 0, w.Players[1].RadiusLevel)
	require.Len(t, w.JustPickedUp, 1)
	assert.Equal(t, 0, w.JustPickedUp[0].Player)
	assert.Equal(t, PowerupRadius, w.JustPickedUp[0].Powerup.Kind)
}

func TestStep_PowerupsSpawn(t *testing.T) {
	w := newTestWorld(t, openArena...)
	w.MaxPowerups = 2
	w.PowerupCooldown = time.Second
	// Keep the players where they can't pick anything up.
	w.Players[0].Pos = safePos
	w.Players[1].Pos = safePos

	w.Step(Input{})
	assert.Equal(t, 1, w.Powerups.Len())
	for range 30 {
		w.Step(Input{})
	}
	assert.Equal(t, 1, w.Powerups.Len())
	for range 60 {
		w.Step(Input{})
	}
	assert.Equal(t, 2, w.Powerups.Len())
	for range 600 {
		w.Step(Input{})
	}
	assert.Equal(t, 2, w.Powerups.Len())

	for _, pu := range w.Powerups.All() {
		assert.True(t, w.Grid.IsEmpty(pu.Cell))
		assert.Less(t, pu.Kind, NPowerupKinds)
	}
}

func TestWorld_Reset(t *testing.T) {
	level := Level{
		Foreground: []string{
			"#######",
			"#XXXXX#",
			"#XXXXX#",
			"#######",
		},
		RandomFill: map[string]int{"O": 1, "T": 1, " ": 1},
	}
	w, err := NewWorld(level, 42, DefaultRules)
	require.NoError(t, err)
	initial := w.StateBytes()

	var in Input
	in.Players[0].Right = true
	in.Players[0].Bomb = true
	for range 500 {
		w.Step(in)
	}
	w.Players[1].Score = 3
	assert.NotEqual(t, initial, w.StateBytes())

	w.Reset()
	assert.Equal(t, initial, w.StateBytes())
	assert.Equal(t, time.Duration(0), w.Now())
	assert.Equal(t, 0, w.Players[1].Score)
	assert.Equal(t, 0, w.Bombs.Len())
	assert.Equal(t, 0, w.Powerups.Len())
	assert.False(t, w.Over)
}

func TestWorld_ResetKillsOldBombIds(t *testing.T) {
	w := newTestWorld(t, openArena...)
	var in Input
	in.Players[0].Bomb = true
	w.Step(in)
	require.Len(t, w.JustPlaced, 1)
	old := w.JustPlaced[0]

	w.Reset()
	in = Input{}
	in.Players[1].Bomb = true
	w.Step(in)
	require.Len(t, w.JustPlaced, 1)
	id := w.JustPlaced[0]

	assert.Nil(t, w.Bombs.Get(old))
	require.NotNil(t, w.Bombs.Get(id))
	assert.Equal(t, 1, w.Bombs.Get(id).Owner)
}

type recorder struct {
	effects []Effect
	sounds  []Sound
}

func (r *recorder) SpawnEffect(e Effect) { r.effects = append(r.effects, e) }
func (r *recorder) PlaySound(s Sound)    { r.sounds = append(r.sounds, s) }

func TestWorld_CallsCollaborators(t *testing.T) {
	w := newTestWorld(t, openArena...)
	var rec recorder
	w.Effects = &rec
	w.Sounds = &rec

	placeBombAt(t, w, 1, Pt{2, 2}, 1, safePos)
	assert.Equal(t, []Sound{SoundBombPlaced}, rec.sounds)
	w.Players[0].Pos = mgl64.Vec3{2.5, 0, 1.5}
	rec.effects = nil
	rec.sounds = nil

	stepUntilExplosion(t, w)
	assert.Equal(t, []Sound{SoundExplosion, SoundDeath}, rec.sounds)
	var steps []int
	for _, e := range rec.effects {
		if e.Kind == EffectExplosion {
			steps = append(steps, e.Step)
		}
	}
	assert.Equal(t, []int{0, 1, 1, 1, 1}, steps)
	assert.Equal(t, EffectDeath, rec.effects[len(rec.effects)-1].Kind)
}

func TestWorld_Instances(t *testing.T) {
	w := newTestWorld(t,
		"####",
		"# O#",
		"####")
	w.Powerups.Add(Powerup{Kind: PowerupBomb, Cell: Pt{1, 1},
		Pos: CellCenter(Pt{1, 1}, PowerupHeight)})
	inst := w.Instances(nil)

	count := map[MeshId]int{}
	for _, i := range inst {
		count[i.Mesh]++
	}
	assert.Equal(t, 10, count[MeshWall])
	assert.Equal(t, 1, count[MeshBarrel])
	// Only the empty cell gets a floor.
	assert.Equal(t, 1, count[MeshFloor])
	assert.Equal(t, 1, count[MeshPowerup])
	assert.Equal(t, 2, count[MeshPlayer])

	last := inst[len(inst)-1]
	assert.Equal(t, MaterialPlayer2, last.Material)
	assert.Equal(t, w.Players[1].Pos, last.Pos)
}
