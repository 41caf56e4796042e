package arena

import "time"

type BombState uint8

const (
	BombArmed BombState = iota
	// BombDetonating is the state of a bomb that is queued to explode during
	// the current step, either because its fuse ran out or because another
	// explosion reached it.
	BombDetonating
)

type Bomb struct {
	Owner      int
	Cell       Pt
	Radius     int
	DetonateAt time.Duration
	State      BombState
}

// PlaceBomb makes a player drop a bomb on the cell it is standing in. It does
// nothing and returns NoId if the player has no bombs left or the cell is not
// empty.
func (w *World) PlaceBomb(player int) Id {
	p := &w.Players[player]
	cell := p.Cell()
	if p.Bombs < 1 || !w.Grid.InBounds(cell) || !w.Grid.IsEmpty(cell) {
		return NoId
	}

	p.Bombs--
	Assert(p.Bombs >= 0)
	p.LastPlaced = cell
	id := w.Bombs.Add(Bomb{
		Owner:      player,
		Cell:       cell,
		Radius:     p.BombRadius(),
		DetonateAt: w.Now() + p.FuseDuration(),
		State:      BombArmed,
	})
	w.Grid.SetTile(cell, BombTile)
	w.JustPlaced = append(w.JustPlaced, id)
	w.Effects.SpawnEffect(Effect{Kind: EffectBombPlaced,
		Pos: CellCenter(cell, 0)})
	w.Sounds.PlaySound(SoundBombPlaced)
	w.Log.Debug().
		Int("player", player).
		Int("x", cell.X).
		Int("y", cell.Y).
		Int("radius", p.BombRadius()).
		Msg("bomb placed")
	return id
}

// BombAt returns the live bomb sitting on cell, if any.
func (w *World) BombAt(cell Pt) (Id, *Bomb) {
	for id, b := range w.Bombs.All() {
		if b.Cell == cell {
			return id, b
		}
	}
	return NoId, nil
}

// advanceBombs detonates every armed bomb whose fuse has run out, along with
// every bomb caught in those explosions. Bombs due at the same time go off in
// pool order; bombs set off by another explosion go off after it, in the
// order they were reached.
func (w *World) advanceBombs() {
	now := w.Now()
	queue := w.detonationQueue[:0]
	for id, b := range w.Bombs.All() {
		if b.State == BombArmed && now >= b.DetonateAt {
			b.State = BombDetonating
			queue = append(queue, id)
		}
	}
	for i := 0; i < len(queue); i++ {
		queue = w.detonate(queue[i], queue)
	}
	w.detonationQueue = queue[:0]
}

// detonate removes a bomb from the grid, resolves its explosion and gives
// the owner its bomb back. Bombs reached by the explosion are appended to
// queue.
func (w *World) detonate(id Id, queue []Id) []Id {
	b := *w.Bombs.Get(id)
	Assert(b.State == BombDetonating)
	Assert(w.Grid.Tile(b.Cell) == BombTile)
	w.Bombs.Remove(id)
	w.Grid.SetTile(b.Cell, Empty)

	e, queue := w.explode(id, b, queue)
	w.Players[b.Owner].Bombs++
	w.JustExploded = append(w.JustExploded, e)

	w.Log.Debug().
		Int("owner", b.Owner).
		Int("x", b.Cell.X).
		Int("y", b.Cell.Y).
		Int("cells", len(e.Cells)).
		Int("destroyed", e.NDestroyed()).
		Msg("bomb detonated")
	return queue
}
