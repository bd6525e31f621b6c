// Package id generates the prefixed ULIDs that name windows, VFS nodes and
// sticky notes.
//
// Every id has the form <prefix>_<ULID>. ULIDs sort by creation time and the
// generator draws monotonic entropy, so ids minted within one millisecond
// still sort in creation order.
package id

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrMalformed is returned by Parse for strings that are not prefixed ULIDs
var ErrMalformed = errors.New("id: malformed")

// WindowID identifies a window instance
type WindowID string

// NodeID identifies a VFS node
type NodeID string

// NoteID identifies a sticky note
type NoteID string

const (
	WindowPrefix = "win"
	NodePrefix   = "node"
	NotePrefix   = "note"
)

// Generator mints ULIDs from a shared entropy source
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0), now: time.Now}
}

// ULID returns the next raw ULID
func (g *Generator) ULID() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// Prefixed returns prefix_ULID
func (g *Generator) Prefixed(prefix string) string {
	return prefix + "_" + g.ULID().String()
}

// NewWindowID generates a new window ID
func NewWindowID() WindowID { return WindowID(Default().Prefixed(WindowPrefix)) }

// NewNodeID generates a new VFS node ID
func NewNodeID() NodeID { return NodeID(Default().Prefixed(NodePrefix)) }

// NewNoteID generates a new sticky note ID
func NewNoteID() NoteID { return NoteID(Default().Prefixed(NotePrefix)) }

func (id WindowID) String() string { return string(id) }
func (id NodeID) String() string   { return string(id) }
func (id NoteID) String() string   { return string(id) }

// Parse splits a prefixed id into its prefix and ULID
func Parse(s string) (string, ulid.ULID, error) {
	prefix, raw, ok := strings.Cut(s, "_")
	if !ok || prefix == "" {
		return "", ulid.ULID{}, ErrMalformed
	}
	u, err := ulid.ParseStrict(raw)
	if err != nil {
		return "", ulid.ULID{}, ErrMalformed
	}
	return prefix, u, nil
}

// HasPrefix reports whether s is a well formed id minted with prefix
func HasPrefix(s, prefix string) bool {
	p, _, err := Parse(s)
	return err == nil && p == prefix
}

// Created returns the creation time encoded in a prefixed id
func Created(s string) (time.Time, error) {
	_, u, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
