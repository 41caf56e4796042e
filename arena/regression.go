package arena

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"
)

type bombState struct {
	_msgpack struct{} `msgpack:",as_array"`

	Owner      int
	Cell       Pt
	Radius     int
	DetonateAt int64
}

type playerState struct {
	_msgpack struct{} `msgpack:",as_array"`

	Pos         [3]float64
	Angle       float64
	Lives       int
	Score       int
	Bombs       int
	SpeedLevel  int
	RadiusLevel int
}

type powerupState struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind PowerupKind
	Cell Pt
}

type worldState struct {
	_msgpack struct{} `msgpack:",as_array"`

	Now      int64
	Tiles    []TileType
	Players  [NPlayers]playerState
	Bombs    []bombState
	Powerups []powerupState
	Over     bool
	Winner   int
}

// StateBytes is an array of bytes that represent the current state of the
// World, as perceived by the outside. If two Worlds have the same StateBytes
// they are considered "the same", even though they may be implemented
// differently.
//
// The state is what a player can see: the foreground tiles, the players with
// their inventories, the bombs with their fuses, the powerups and whether the
// match is over. Internal bookkeeping (pool slots, free lists, the Just*
// lists) is left out on purpose, so it can change without breaking recorded
// playthroughs.
func (w *World) StateBytes() []byte {
	var s worldState
	s.Now = int64(w.Now())
	size := w.Grid.Size()
	s.Tiles = make([]TileType, 0, size.X*size.Y)
	var pt Pt
	for pt.Y = 0; pt.Y < size.Y; pt.Y++ {
		for pt.X = 0; pt.X < size.X; pt.X++ {
			s.Tiles = append(s.Tiles, w.Grid.Tile(pt))
		}
	}
	for i := range w.Players {
		p := &w.Players[i]
		s.Players[i] = playerState{
			Pos:         p.Pos,
			Angle:       p.Angle,
			Lives:       p.Lives,
			Score:       p.Score,
			Bombs:       p.Bombs,
			SpeedLevel:  p.SpeedLevel,
			RadiusLevel: p.RadiusLevel,
		}
	}
	for _, b := range w.Bombs.All() {
		s.Bombs = append(s.Bombs, bombState{
			Owner:      b.Owner,
			Cell:       b.Cell,
			Radius:     b.Radius,
			DetonateAt: int64(b.DetonateAt),
		})
	}
	for _, pu := range w.Powerups.All() {
		s.Powerups = append(s.Powerups, powerupState{Kind: pu.Kind,
			Cell: pu.Cell})
	}
	s.Over = w.Over
	s.Winner = w.Winner

	data, err := msgpack.Marshal(&s)
	if err != nil {
		// Every field is a plain value, encoding can't fail.
		panic(err)
	}
	return data
}

// RegressionId returns a string which uniquely identifies the playthrough.
// It is a hash of all the states of the World. It is meant to check if the
// state of the World at each frame in the playthrough is the same after a
// refactorization of the World.
//
// RegressionId is meant to be used this way:
// - Compute the RegressionId for a playthrough.
// - Refactor the implementation of the World.
// - Compute the RegressionId for the same playthrough.
// - If the RegressionId hasn't changed, the refactoring did not alter the
// playthrough.
func RegressionId(p *Playthrough) (string, error) {
	hash := sha256.New()

	w, err := NewWorldFromPlaythrough(p)
	if err != nil {
		return "", err
	}
	hash.Write(w.StateBytes())

	for i := range p.History {
		w.Step(p.History[i])
		hash.Write(w.StateBytes())
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
