package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marisvali/blastarena/arena"
)

// ExplosionStepDelay is how much later each ray step of an explosion appears
// than the one before it, so the fire spreads out from the bomb. The World
// changes everything in a single tick; only the visuals are staggered.
const ExplosionStepDelay = 100 * time.Millisecond

var effectDurations = map[arena.EffectKind]time.Duration{
	arena.EffectExplosion:  500 * time.Millisecond,
	arena.EffectBombPlaced: 150 * time.Millisecond,
	arena.EffectPickup:     400 * time.Millisecond,
	arena.EffectDeath:      800 * time.Millisecond,
}

// TemporaryAnimation is an effect that appears in one place, runs for a
// while and then goes away. It doesn't represent an ongoing entity in the
// World.
type TemporaryAnimation struct {
	Kind      arena.EffectKind
	Pos       mgl64.Vec3
	Animation Animation
}

// VisWorld is a world parallel to World that holds "visual logic". Its role
// is to store data and execute logic for ongoing visual effects. Draw()
// relies on the information in VisWorld to draw things, just like it relies
// on World.
//
// The World hands effects to VisWorld through SpawnEffect while it steps.
// VisWorld runs on its own timeline, advanced by Step() once per frame in
// Update().
type VisWorld struct {
	Temporary []*TemporaryAnimation
}

func (v *VisWorld) SpawnEffect(e arena.Effect) {
	a := &TemporaryAnimation{
		Kind: e.Kind,
		Pos:  e.Pos,
		Animation: NewAnimation(time.Duration(e.Step)*ExplosionStepDelay,
			effectDurations[e.Kind]),
	}
	v.Temporary = append(v.Temporary, a)
}

func (v *VisWorld) Step() {
	// Step existing animations.
	for _, a := range v.Temporary {
		a.Animation.Step()
	}

	// Filter out obsolete animations.
	n := 0
	for i := range v.Temporary {
		if !v.Temporary[i].Animation.Finished() {
			v.Temporary[n] = v.Temporary[i]
			n++
		}
	}
	clear(v.Temporary[n:])
	v.Temporary = v.Temporary[:n]
}

func (v *VisWorld) Clear() {
	clear(v.Temporary)
	v.Temporary = v.Temporary[:0]
}
