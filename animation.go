package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramesFor converts a duration to a number of Update() frames.
func FramesFor(d time.Duration) int64 {
	return int64(d) * int64(ebiten.DefaultTPS) / int64(time.Second)
}

// Animation is the timeline of a procedural effect, counted in frames. It
// waits for Delay frames, then runs for Duration frames.
// It is cheap to copy.
type Animation struct {
	Delay    int64
	Duration int64
	FrameIdx int64
}

func NewAnimation(delay, duration time.Duration) Animation {
	return Animation{
		Delay:    FramesFor(delay),
		Duration: max(FramesFor(duration), 1),
	}
}

func (a *Animation) Step() {
	a.FrameIdx++
}

func (a *Animation) Started() bool {
	return a.FrameIdx >= a.Delay
}

func (a *Animation) Finished() bool {
	return a.FrameIdx >= a.Delay+a.Duration
}

// Progress goes from 0 when the animation starts to 1 when it finishes.
func (a *Animation) Progress() float64 {
	if !a.Started() {
		return 0
	}
	if a.Finished() {
		return 1
	}
	return float64(a.FrameIdx-a.Delay) / float64(a.Duration)
}
