package arena

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Level is the description of an arena, as written in a level file.
//
// Each string in Foreground is one row of the grid, one symbol per cell (see
// the tile registry). Two symbols are only valid in level files:
// - RandomSymbol ('X') is replaced by a symbol drawn from RandomFill, using
// the weights as relative probabilities.
// - '_' in the foreground means an empty cell with floor under it.
//
// Background is optional. When present, it must have the same shape as
// Foreground. When absent, every cell that is empty (or random) in the
// foreground gets a floor tile in the background.
type Level struct {
	Name       string      `yaml:"Name"`
	Foreground []string    `yaml:"Foreground"`
	Background []string    `yaml:"Background"`
	RandomFill FillWeights `yaml:"RandomFill"`
	Spawns     []Spawn     `yaml:"Spawns"`
}

// FillWeights maps a tile symbol to its relative probability. It encodes to
// msgpack with sorted keys, so a playthrough always serializes to the same
// bytes.
type FillWeights map[string]int

func (w FillWeights) EncodeMsgpack(enc *msgpack.Encoder) error {
	if w == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(w)); err != nil {
		return err
	}
	for _, sym := range slices.Sorted(maps.Keys(w)) {
		if err := enc.EncodeString(sym); err != nil {
			return err
		}
		if err := enc.EncodeInt(int64(w[sym])); err != nil {
			return err
		}
	}
	return nil
}

func (w *FillWeights) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		*w = nil
		return nil
	}
	m := make(FillWeights, n)
	for range n {
		sym, err := dec.DecodeString()
		if err != nil {
			return err
		}
		weight, err := dec.DecodeInt()
		if err != nil {
			return err
		}
		m[sym] = weight
	}
	*w = m
	return nil
}

// Spawn is a player start position on the ground plane.
type Spawn struct {
	X float64 `yaml:"X"`
	Z float64 `yaml:"Z"`
}

func LoadLevel(data []byte) (l Level, err error) {
	if err = yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("invalid level yaml: %w", err)
	}
	if err = l.Validate(); err != nil {
		return l, fmt.Errorf("invalid level %q: %w", l.Name, err)
	}
	return l, nil
}

// Size returns the number of columns and rows. The level must be valid.
func (l *Level) Size() Pt {
	if len(l.Foreground) == 0 {
		return Pt{}
	}
	return Pt{utf8.RuneCountInString(l.Foreground[0]), len(l.Foreground)}
}

func (l *Level) Validate() error {
	if len(l.Foreground) == 0 {
		return fmt.Errorf("foreground has no rows")
	}
	size := l.Size()
	if size.X == 0 {
		return fmt.Errorf("foreground has no columns")
	}

	hasRandom := false
	for y, row := range l.Foreground {
		if n := utf8.RuneCountInString(row); n != size.X {
			return fmt.Errorf("foreground row %d has %d cells, expected %d",
				y, n, size.X)
		}
		for x, r := range []rune(row) {
			if r == RandomSymbol {
				hasRandom = true
				continue
			}
			if r == '_' {
				continue
			}
			t, ok := TileFromSymbol(r)
			if !ok {
				return fmt.Errorf("unknown symbol %q at (%d, %d)", r, x, y)
			}
			if t == BombTile {
				return fmt.Errorf("bombs can't be part of a level, found "+
					"one at (%d, %d)", x, y)
			}
		}
	}

	if len(l.Background) > 0 {
		if len(l.Background) != size.Y {
			return fmt.Errorf("background has %d rows, expected %d",
				len(l.Background), size.Y)
		}
		for y, row := range l.Background {
			if n := utf8.RuneCountInString(row); n != size.X {
				return fmt.Errorf("background row %d has %d cells, "+
					"expected %d", y, n, size.X)
			}
			for x, r := range []rune(row) {
				t, ok := TileFromSymbol(r)
				if !ok {
					return fmt.Errorf("unknown background symbol %q at "+
						"(%d, %d)", r, x, y)
				}
				if len(t.Info().Colliders) > 0 {
					return fmt.Errorf("background can't hold the solid "+
						"tile %q, found at (%d, %d)", r, x, y)
				}
			}
		}
	}

	total := 0
	for sym, weight := range l.RandomFill {
		if utf8.RuneCountInString(sym) != 1 {
			return fmt.Errorf("random fill key %q must be a single symbol",
				sym)
		}
		r, _ := utf8.DecodeRuneInString(sym)
		t, ok := TileFromSymbol(r)
		// Floor only belongs in the background. In the foreground it would
		// be a cell that is neither empty nor destructible.
		if !ok || t == BombTile || t == Floor {
			return fmt.Errorf("invalid random fill symbol %q", sym)
		}
		if weight < 0 {
			return fmt.Errorf("negative weight %d for random fill symbol %q",
				weight, sym)
		}
		total += weight
	}
	if hasRandom && total == 0 {
		return fmt.Errorf("level uses %q but has no random fill weights",
			RandomSymbol)
	}

	if len(l.Spawns) != 0 && len(l.Spawns) != NPlayers {
		return fmt.Errorf("level has %d spawns, expected %d",
			len(l.Spawns), NPlayers)
	}
	for i, s := range l.Spawns {
		if s.X < 0 || s.Z < 0 || s.X >= float64(size.X) ||
			s.Z >= float64(size.Y) {
			return fmt.Errorf("spawn %d (%g, %g) is outside the arena",
				i, s.X, s.Z)
		}
		// A player that starts inside a collider is never pushed out.
		cell := CellOf(mgl64.Vec2{s.X, s.Z})
		r := []rune(l.Foreground[cell.Y])[cell.X]
		if r != ' ' && r != '_' {
			return fmt.Errorf("spawn %d (%g, %g) is on %q, not on an empty "+
				"cell", i, s.X, s.Z, r)
		}
	}
	return nil
}

// Build creates the grid for the level. Random cells are filled using rng,
// in row-major order, so the same rng state always builds the same grid.
func (l *Level) Build(rng *Rand) (*Grid, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	g := NewGrid(l.Size())

	// Expand the weights into a list of tiles, in a fixed order.
	var fill []TileType
	for _, sym := range slices.Sorted(maps.Keys(l.RandomFill)) {
		r, _ := utf8.DecodeRuneInString(sym)
		t, _ := TileFromSymbol(r)
		for range l.RandomFill[sym] {
			fill = append(fill, t)
		}
	}

	for y, row := range l.Foreground {
		for x, r := range []rune(row) {
			pt := Pt{x, y}
			switch r {
			case RandomSymbol:
				g.SetTile(pt, fill[rng.RInt(0, len(fill)-1)])
				g.SetBackground(pt, Floor)
			case '_':
				g.SetBackground(pt, Floor)
			default:
				t, _ := TileFromSymbol(r)
				g.SetTile(pt, t)
				if t == Empty {
					g.SetBackground(pt, Floor)
				}
			}
		}
	}

	if len(l.Background) > 0 {
		for y, row := range l.Background {
			for x, r := range []rune(row) {
				t, _ := TileFromSymbol(r)
				g.SetBackground(Pt{x, y}, t)
			}
		}
	}
	return g, nil
}

// SpawnPoints returns the start positions of the players. Without explicit
// spawns, the players start in opposite corners, one cell in from the
// border.
func (l *Level) SpawnPoints(size Pt) (spawns [NPlayers]mgl64.Vec3) {
	if len(l.Spawns) == NPlayers {
		for i, s := range l.Spawns {
			spawns[i] = mgl64.Vec3{s.X, 0, s.Z}
		}
		return
	}
	spawns[0] = mgl64.Vec3{1.5, 0, 1.5}
	spawns[1] = mgl64.Vec3{float64(size.X) - 1.5, 0, float64(size.Y) - 1.5}
	return
}
