package arena

// ExplosionCell is one cell reached by an explosion. Step is the distance
// from the origin along the ray, 0 for the origin itself. Destroyed is the
// tile the explosion cleared from the cell, or Empty.
type ExplosionCell struct {
	Cell      Pt
	Step      int
	Destroyed TileType
}

// Explosion is the complete, already resolved, result of one bomb going off.
// The simulation applies all of it in a single step. Anything that wants to
// reveal it gradually (one ray step at a time) does so on its own, using
// ExplosionCell.Step.
type Explosion struct {
	Bomb   Id
	Owner  int
	Origin Pt
	Radius int
	Cells  []ExplosionCell
	// Killed lists the players killed by this explosion, each at most once.
	Killed []int
	// Chained lists the bombs this explosion set off.
	Chained []Id
}

func (e *Explosion) NDestroyed() (n int) {
	for _, c := range e.Cells {
		if c.Destroyed != Empty {
			n++
		}
	}
	return
}

// explode resolves the explosion of bomb b, which has already been removed
// from the grid.
//
// Rays go out from the origin in the four cardinal directions, up to the
// bomb's radius:
// - A cell outside the grid or holding an indestructible tile ends the ray
// without being reached.
// - A destructible tile is cleared and ends the ray.
// - A bomb ends the ray and, if chain reactions are on, is set to go off in
// this same step.
// - An empty cell is reached and the ray continues.
//
// Players standing in any reached cell are killed, once per explosion no
// matter how many reached cells they overlap.
func (w *World) explode(id Id, b Bomb, queue []Id) (Explosion, []Id) {
	e := Explosion{
		Bomb:   id,
		Owner:  b.Owner,
		Origin: b.Cell,
		Radius: b.Radius,
	}
	e.Cells = append(e.Cells, ExplosionCell{Cell: b.Cell})

	for _, dir := range Directions {
		for step := 1; step <= b.Radius; step++ {
			cell := b.Cell.Plus(dir.Times(step))
			if !w.Grid.InBounds(cell) {
				break
			}
			t := w.Grid.Tile(cell)
			if t == Empty {
				e.Cells = append(e.Cells, ExplosionCell{Cell: cell, Step: step})
				continue
			}
			if t == BombTile {
				if w.ChainReactions {
					if chainedId, chained := w.BombAt(cell); chained != nil &&
						chained.State == BombArmed {
						chained.State = BombDetonating
						chained.DetonateAt = w.Now()
						e.Chained = append(e.Chained, chainedId)
						queue = append(queue, chainedId)
					}
				}
				break
			}
			if !w.Grid.IsDestructible(cell) {
				break
			}
			w.Grid.SetTile(cell, Empty)
			e.Cells = append(e.Cells, ExplosionCell{
				Cell:      cell,
				Step:      step,
				Destroyed: t,
			})
			break
		}
	}

	for _, c := range e.Cells {
		w.Effects.SpawnEffect(Effect{
			Kind: EffectExplosion,
			Pos:  CellCenter(c.Cell, 0.5),
			Step: c.Step,
		})
	}
	w.Sounds.PlaySound(SoundExplosion)

	// Find every player hit before killing anyone, since a kill moves the
	// player back to its spawn point.
	var hit [NPlayers]bool
	for _, c := range e.Cells {
		center := CellCenter(c.Cell, 0)
		for i := range w.Players {
			if w.Players[i].Alive() && SameCell(w.Players[i].Pos, center) {
				hit[i] = true
			}
		}
	}
	for i := range hit {
		if hit[i] {
			w.killPlayer(i)
			e.Killed = append(e.Killed, i)
		}
	}
	return e, queue
}

// killPlayer credits the other player and applies the death penalty.
func (w *World) killPlayer(victim int) {
	pos := w.Players[victim].Pos
	for i := range w.Players {
		if i != victim {
			w.Players[i].Score++
		}
	}
	w.Players[victim].Kill()
	w.JustKilled = append(w.JustKilled, victim)
	w.Effects.SpawnEffect(Effect{Kind: EffectDeath, Pos: pos})
	w.Sounds.PlaySound(SoundDeath)
	w.Log.Info().
		Int("player", victim).
		Int("lives", w.Players[victim].Lives).
		Msg("player killed")
}
