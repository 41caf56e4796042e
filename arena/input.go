package arena

import "github.com/go-gl/mathgl/mgl64"

// NPlayers is fixed: the arena is a local two-player game.
const NPlayers = 2

// PlayerInput is the held state of one player's controls during a tick.
// Bomb is the held state too; the World turns it into a single placement per
// press.
type PlayerInput struct {
	_msgpack struct{} `msgpack:",as_array"`

	Left  bool
	Right bool
	Up    bool
	Down  bool
	Bomb  bool
}

type Input struct {
	_msgpack struct{} `msgpack:",as_array"`

	Players [NPlayers]PlayerInput
}

// Direction returns the unit ground-plane direction the player wants to move
// in, or zero. Up is +Z.
func (in PlayerInput) Direction() mgl64.Vec3 {
	var d mgl64.Vec3
	if in.Right {
		d[0] += 1
	}
	if in.Left {
		d[0] -= 1
	}
	if in.Up {
		d[2] += 1
	}
	if in.Down {
		d[2] -= 1
	}
	if d[0] == 0 && d[2] == 0 {
		return d
	}
	return d.Normalize()
}

func (in PlayerInput) EventOccurred() bool {
	return in.Left || in.Right || in.Up || in.Down || in.Bomb
}
