package arena

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// InputVersion is the version of the byte representation of the Playthrough
// structure. If the Playthrough structure changes such that serializing it
// produces a different array of bytes, then InputVersion must change as well.
// An executable can replay any playthrough with the same InputVersion and
// SimulationVersion as its own.
const InputVersion = 1

// Playthrough is everything needed to play a match again: the level, the
// rules, the seed and the input of every tick. Given the same simulation, a
// Playthrough always produces the same match.
type Playthrough struct {
	InputVersion      int64
	SimulationVersion int64
	ReleaseVersion    int64
	Level             Level
	Rules             Rules
	Id                uuid.UUID
	Seed              int64
	History           []Input
}

func NewPlaythrough(level Level, rules Rules, seed int64,
	releaseVersion int64) (p Playthrough) {
	p.InputVersion = InputVersion
	p.SimulationVersion = SimulationVersion
	p.ReleaseVersion = releaseVersion
	p.Level = level
	p.Rules = rules
	p.Id = uuid.New()
	p.Seed = seed
	return
}

// Serialize encodes the playthrough as gzip-compressed msgpack.
func (p *Playthrough) Serialize() ([]byte, error) {
	raw := new(bytes.Buffer)
	enc := msgpack.NewEncoder(raw)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding playthrough: %w", err)
	}

	buf := new(bytes.Buffer)
	zw := gzip.NewWriter(buf)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing playthrough: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing playthrough: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Playthrough) Clone() *Playthrough {
	clone := *p
	clone.History = slices.Clone(p.History)
	return &clone
}

func DeserializePlaythrough(data []byte) (p Playthrough, err error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return p, fmt.Errorf("decompressing playthrough: %w", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return p, fmt.Errorf("decompressing playthrough: %w", err)
	}
	if err = msgpack.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decoding playthrough: %w", err)
	}
	if p.InputVersion != InputVersion {
		return p, fmt.Errorf("can't deserialize this playthrough - we are "+
			"at InputVersion %d and playthrough was generated with "+
			"InputVersion %d", InputVersion, p.InputVersion)
	}
	return p, nil
}

// NewWorldFromPlaythrough creates the World a playthrough starts from.
func NewWorldFromPlaythrough(p *Playthrough) (*World, error) {
	if p.SimulationVersion != SimulationVersion {
		return nil, fmt.Errorf("can't replay this playthrough - we are at "+
			"SimulationVersion %d and playthrough was generated with "+
			"SimulationVersion %d", SimulationVersion, p.SimulationVersion)
	}
	return NewWorld(p.Level, p.Seed, p.Rules)
}
