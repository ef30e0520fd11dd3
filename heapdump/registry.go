// ABOUTME: Registry of snapshot parsers; sniffs the format and dispatches to the matching Parser
// ABOUTME: Adapted from the teacher's tee-reader-based registry, kept so a second format can register later

package heapdump

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/prateek/rheap/graph"
)

// ErrNoParser is returned when no registered parser recognizes the input.
var ErrNoParser = errors.New("heapdump: no parser found for dump format")

type parserRegistry struct {
	mu      sync.RWMutex
	parsers []Parser
}

var registry = &parserRegistry{}

// Register adds a parser to the registry. Parsers are tried in
// registration order; the NDJSON parser registers itself in this
// package's init.
func Register(p Parser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.parsers = append(registry.parsers, p)
}

// Open reads a heap snapshot and builds a ReferenceGraph, trying each
// registered parser against a buffered preview of the stream until one
// claims it.
func Open(r io.Reader) (*graph.ReferenceGraph, graph.ObjID, error) {
	buf := new(bytes.Buffer)
	tee := io.TeeReader(r, buf)

	detectBuf := make([]byte, 4096)
	n, err := tee.Read(detectBuf)
	if err != nil && err != io.EOF {
		return nil, 0, err
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, parser := range registry.parsers {
		if parser.CanParse(bytes.NewReader(detectBuf[:n])) {
			full := io.MultiReader(bytes.NewReader(detectBuf[:n]), r)
			return parser.Parse(full)
		}
	}
	return nil, 0, ErrNoParser
}
