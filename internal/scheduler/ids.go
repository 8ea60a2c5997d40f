package scheduler

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out booking identifiers.  Implementations must never
// return the same ID twice within a process.
type IDGenerator interface {
	NextID() string
}

// Sequence is a monotonic counter-based IDGenerator producing IDs such
// as "BK000001".  It is safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence returns a Sequence whose IDs start with prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NextID() string {
	return fmt.Sprintf("%s%06d", s.prefix, s.n.Add(1))
}

// UUIDGenerator produces prefixed random (v4) UUIDs.  Use it when
// booking IDs must not reveal booking volume.
type UUIDGenerator struct {
	Prefix string
}

func (g UUIDGenerator) NextID() string {
	return g.Prefix + uuid.NewString()
}

// NewIDGenerator returns the generator for strategy: "sequence" (the
// default when empty) or "uuid".
func NewIDGenerator(strategy, prefix string) (IDGenerator, error) {
	switch strategy {
	case "", "sequence":
		return NewSequence(prefix), nil
	case "uuid":
		return UUIDGenerator{Prefix: prefix}, nil
	}
	return nil, fmt.Errorf("unknown booking id strategy %q", strategy)
}
