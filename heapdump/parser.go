// ABOUTME: Parser interface for snapshot formats, adapted from the teacher's pluggable-parser contract
// ABOUTME: Defines the boundary between the core's graph-build contract and format-specific decoding

package heapdump

import (
	"io"

	"github.com/prateek/rheap/graph"
)

// Parser is the contract a snapshot format implements. CanParse should
// treat r as a preview: read a small amount to sniff the format and
// never assume the stream can be rewound. Parse receives a fresh reader
// positioned at the start of the stream.
type Parser interface {
	CanParse(r io.Reader) bool
	Parse(r io.Reader) (*graph.ReferenceGraph, graph.ObjID, error)
}
