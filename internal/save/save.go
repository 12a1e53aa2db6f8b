// Package save converts players to and from persisted progression blobs.
//
// A blob is a small JSON envelope: format version, a BLAKE2b-256 checksum
// and the progression payload. Anything that fails to parse or verify is
// reported as ErrCorrupt so callers can fall back to a fresh state.
package save

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/rpgbattle/internal/model"
)

// FormatVersion is the current envelope version.
const FormatVersion = 1

// ErrCorrupt is wrapped by every decoding failure.
var ErrCorrupt = errors.New("corrupt player save")

// Progress is the logical persisted state of a player.
// Fight-scoped state (buffs, defense changes) is never part of it.
type Progress struct {
	Life       int      `json:"life"`
	Mana       int      `json:"mana"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	WeaponID   string   `json:"weapon_id"`
	Skills     []string `json:"skills"`
}

// Validate checks the ranges that do not depend on content.
func (p Progress) Validate() error {
	switch {
	case p.Level < 1:
		return fmt.Errorf("level %d below 1", p.Level)
	case p.Experience < 0:
		return fmt.Errorf("negative experience %d", p.Experience)
	case p.Life < 0 || p.Mana < 0:
		return fmt.Errorf("negative pools life=%d mana=%d", p.Life, p.Mana)
	}
	return nil
}

// FromPlayer extracts the persisted fields of p.
func FromPlayer(p *model.Player) Progress {
	return Progress{
		Life:       p.Life().Current(),
		Mana:       p.Mana().Current(),
		Level:      p.Level(),
		Experience: p.Experience(),
		WeaponID:   p.WeaponID(),
		Skills:     p.KnownSkills(),
	}
}

type envelope struct {
	Version int             `json:"v"`
	Sum     string          `json:"sum"`
	Data    json.RawMessage `json:"data"`
}

func checksum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Encode serializes progress into a blob.
func Encode(p Progress) ([]byte, error) {
	p.Skills = slices.Clone(p.Skills)
	slices.Sort(p.Skills)
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding progress: %w", err)
	}
	blob, err := json.Marshal(envelope{Version: FormatVersion, Sum: checksum(payload), Data: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return blob, nil
}

// Serialize encodes the persisted fields of p.
func Serialize(p *model.Player) ([]byte, error) {
	return Encode(FromPlayer(p))
}

// Decode parses and verifies a blob. All failures wrap ErrCorrupt.
func Decode(blob []byte) (Progress, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return Progress{}, fmt.Errorf("%w: envelope: %v", ErrCorrupt, err)
	}
	if env.Version != FormatVersion {
		return Progress{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, env.Version)
	}
	if env.Sum != checksum(env.Data) {
		return Progress{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	var p Progress
	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Progress{}, fmt.Errorf("%w: payload: %v", ErrCorrupt, err)
	}
	if err := p.Validate(); err != nil {
		return Progress{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p, nil
}

// DecodeOrFresh decodes blob, substituting fresh when the blob is empty or
// corrupt. recovered reports that a corrupt blob was replaced.
func DecodeOrFresh(blob []byte, fresh Progress) (p Progress, recovered bool) {
	if len(blob) == 0 {
		return fresh, false
	}
	p, err := Decode(blob)
	if err != nil {
		slog.Warn("discarding unreadable player save", "error", err, "size", len(blob))
		return fresh, true
	}
	return p, false
}
