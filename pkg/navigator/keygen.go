package navigator

import (
	cryptorand "crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// KeyGenerator produces node keys for newly created screens and
// containers. Generation is injectable so tests can use deterministic
// keys while production gets unique, sortable ones.
type KeyGenerator interface {
	NewKey() string
}

// ULIDGenerator issues monotonic ULIDs, so keys created by one
// navigator sort in creation order.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates the default production key generator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(cryptorand.Reader, 0)}
}

// NewKey returns a new ULID string.
func (g *ULIDGenerator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// UUIDGenerator issues random UUIDs, for hosts that already key their
// state by UUID.
type UUIDGenerator struct{}

// NewKey returns a new UUID string.
func (UUIDGenerator) NewKey() string {
	return uuid.NewString()
}

// SequentialGenerator issues prefix1, prefix2, ... for deterministic
// tests.
type SequentialGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialGenerator creates a deterministic generator.
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// NewKey returns the next key in the sequence.
func (g *SequentialGenerator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}
