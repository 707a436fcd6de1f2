package gate

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Mode selects shared (Read) or exclusive (Write) access.
type Mode int

const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Owner identifies the worker holding the gate. Workers obtain one with
// NewOwner and pass it to every Lock/Unlock pair.
type Owner uint64

// NoOwner is never handed out by NewOwner.
const NoOwner Owner = 0

var lastOwner atomic.Uint64

// NewOwner returns a process-unique owner token.
func NewOwner() Owner {
	return Owner(lastOwner.Add(1))
}

// Gate is a writer-reentrant read/write lock. The zero value is an idle
// gate ready for use.
//
// Waiting writers get no priority over arriving readers: under a steady
// stream of readers a writer can wait indefinitely. A reader asking for
// Write while it still holds Read deadlocks against itself unless it was
// already the writer.
type Gate struct {
	mu      sync.Mutex
	cond    sync.Cond
	readers int
	writer  Owner
	depth   int
}

// New returns an idle gate.
func New() *Gate {
	return &Gate{}
}

// Lock blocks until owner may hold the gate in mode.
func (g *Gate) Lock(owner Owner, mode Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cond.L == nil {
		g.cond.L = &g.mu
	}

	if mode == Read {
		for !g.readable(owner) {
			g.cond.Wait()
		}
		g.readers++
		return
	}

	for !g.writable(owner) {
		g.cond.Wait()
	}
	g.writer = owner
	g.depth++
}

// Unlock releases one acquisition of mode made by owner.
func (g *Gate) Unlock(owner Owner, mode Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cond.L == nil {
		g.cond.L = &g.mu
	}

	if mode == Read {
		if g.readers == 0 {
			panic("gate: read unlock of gate not held for reading")
		}
		g.readers--
		if g.readers == 0 {
			g.cond.Broadcast()
		}
		return
	}

	if g.depth == 0 || g.writer != owner {
		panic(fmt.Sprintf("gate: write unlock by owner %d, writer is %d", owner, g.writer))
	}
	g.depth--
	if g.depth == 0 {
		g.writer = NoOwner
		g.cond.Broadcast()
	}
}

func (g *Gate) RLock(owner Owner)   { g.Lock(owner, Read) }
func (g *Gate) RUnlock(owner Owner) { g.Unlock(owner, Read) }
func (g *Gate) WLock(owner Owner)   { g.Lock(owner, Write) }
func (g *Gate) WUnlock(owner Owner) { g.Unlock(owner, Write) }

func (g *Gate) readable(owner Owner) bool {
	return g.writer == NoOwner || g.writer == owner
}

func (g *Gate) writable(owner Owner) bool {
	if owner != NoOwner && g.writer == owner {
		return true
	}
	return g.writer == NoOwner && g.readers == 0
}

// State is a point-in-time view of the gate.
type State struct {
	Readers int
	Writer  Owner
	Depth   int
}

// Idle reports whether nobody holds the gate.
func (s State) Idle() bool {
	return s.Readers == 0 && s.Writer == NoOwner
}

func (s State) String() string {
	switch {
	case s.Writer != NoOwner:
		return fmt.Sprintf("Writing(%d, %d)", s.Writer, s.Depth)
	case s.Readers > 0:
		return fmt.Sprintf("Reading(%d)", s.Readers)
	default:
		return "Idle"
	}
}

// State returns the current holders of the gate.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{Readers: g.readers, Writer: g.writer, Depth: g.depth}
}
