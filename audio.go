package main

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/marisvali/blastarena/arena"
)

const sampleRate = beep.SampleRate(48000)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// sweep is an oscillator whose frequency moves linearly from freqStart to
// freqEnd over its duration.
type sweep struct {
	freqStart float64
	freqEnd   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
}

func NewSweep(freqStart, freqEnd float64, duration time.Duration,
	wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		freqStart: freqStart,
		freqEnd:   freqEnd,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(s.position) / float64(s.duration)
		freq := s.freqStart + (s.freqEnd-s.freqStart)*t
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay fades a stream out linearly after a short attack.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func NewDecay(s beep.Streamer, duration, attack time.Duration,
	rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, i > 0
		}
		vol := 1.0
		if d.position < d.attack {
			vol = float64(d.position) / float64(d.attack)
		} else if d.total > d.attack {
			vol = float64(d.total-d.position) / float64(d.total-d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// math.Log2(0) is -Inf, so 0 volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func ExplosionSound(rate beep.SampleRate) beep.Streamer {
	const d = 450 * time.Millisecond
	noise := NewDecay(NewSweep(0, 0, d, WaveNoise, rate), d,
		5*time.Millisecond, rate)
	rumble := NewDecay(NewSweep(90, 40, d, WaveSine, rate), d,
		5*time.Millisecond, rate)
	return beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.8))
}

func PowerupSound(rate beep.SampleRate) beep.Streamer {
	const d = 200 * time.Millisecond
	return newVolume(NewDecay(NewSweep(600, 1400, d, WaveSine, rate), d,
		10*time.Millisecond, rate), 0.6)
}

func BombPlacedSound(rate beep.SampleRate) beep.Streamer {
	const d = 40 * time.Millisecond
	return newVolume(NewDecay(NewSweep(220, 180, d, WaveSquare, rate), d,
		2*time.Millisecond, rate), 0.3)
}

func DeathSound(rate beep.SampleRate) beep.Streamer {
	const d = 600 * time.Millisecond
	return newVolume(NewDecay(NewSweep(440, 110, d, WaveSquare, rate), d,
		10*time.Millisecond, rate), 0.4)
}

// SoundFor returns a new streamer for the sound, or nil if the sound is not
// known.
func SoundFor(s arena.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case arena.SoundExplosion:
		return ExplosionSound(rate)
	case arena.SoundPowerup:
		return PowerupSound(rate)
	case arena.SoundBombPlaced:
		return BombPlacedSound(rate)
	case arena.SoundDeath:
		return DeathSound(rate)
	default:
		return nil
	}
}

// SoundManager plays the sounds requested by the World. If the speaker could
// not be initialized, or sound is disabled, every request is ignored.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
}

func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) PlaySound(s arena.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := SoundFor(s, sampleRate)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(newVolume(streamer, sm.volume))
	speaker.Unlock()
}

// Silence drops every sound that is still playing.
func (sm *SoundManager) Silence() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
