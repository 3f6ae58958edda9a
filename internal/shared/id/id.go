// Package id provides identifier generation for lists, todos and requests.
//
// Identifiers are prefixed ULIDs:
//   - Sortable: ids minted later compare greater, also within one millisecond
//   - Prefixed: list_*, todo_*, req_* make ids readable in logs and URLs
//   - Typed: ListID and TodoID cannot be mixed up at compile time
//
// Entities keep their id for their whole life, so deleting one never changes
// how the others are addressed.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ListID identifies a todo list within a session
type ListID string

// TodoID identifies a todo within its list
type TodoID string

// RequestID identifies an HTTP request or trace span
type RequestID string

const (
	ListPrefix    = "list"
	TodoPrefix    = "todo"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // MonotonicEntropy is not safe for concurrent use
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// ordering inside a millisecond.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewListID generates a new list ID
func NewListID() ListID {
	return ListID(Default().GenerateWithPrefix(ListPrefix))
}

// NewTodoID generates a new todo ID
func NewTodoID() TodoID {
	return TodoID(Default().GenerateWithPrefix(TodoPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id ListID) String() string    { return string(id) }
func (id TodoID) String() string    { return string(id) }
func (id RequestID) String() string { return string(id) }

// ParsePrefixed checks that s is "<prefix>_<ulid>" and returns the ULID part.
func ParsePrefixed(prefix, s string) (ulid.ULID, error) {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("id %q does not have prefix %q", s, prefix)
	}
	u, err := ulid.Parse(rest)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("id %q: %w", s, err)
	}
	return u, nil
}

// ParseListID validates a list id taken from user input
func ParseListID(s string) (ListID, error) {
	if _, err := ParsePrefixed(ListPrefix, s); err != nil {
		return "", err
	}
	return ListID(s), nil
}

// ParseTodoID validates a todo id taken from user input
func ParseTodoID(s string) (TodoID, error) {
	if _, err := ParsePrefixed(TodoPrefix, s); err != nil {
		return "", err
	}
	return TodoID(s), nil
}
