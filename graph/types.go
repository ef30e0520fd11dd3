// ABOUTME: Core data types for the retention analyzer's reference graph
// ABOUTME: Defines ObjID, Object, Stats and the monoid they form

package graph

import "fmt"

// ObjID is a non-negative object identity: the object's address, so ids
// are not densely numbered. 0 is reserved for the
// synthetic super-root the analyzer roots every snapshot at.
type ObjID uint64

// SuperRoot is the address of the synthetic node every snapshot-declared
// root hangs off of.
const SuperRoot ObjID = 0

// Object is one heap allocation, or the synthetic super-root.
//
// Two Objects are equal iff their addresses are equal; address is also the
// node's identity in the graph and the key every map in this package uses.
type Object struct {
	Address ObjID  // non-negative identity; 0 is the super-root
	Bytes   uint64 // self size in bytes; 0 for the super-root
	Kind    string // type tag, e.g. "STRING", or a rewritten class name
	Label   string // optional human-readable display string; not part of identity
}

// Stats is the monoid every aggregate in this package is built from:
// identity (0, 0), and pointwise addition.
type Stats struct {
	Count uint64
	Bytes uint64
}

// Add returns the pointwise sum of two Stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{Count: s.Count + other.Count, Bytes: s.Bytes + other.Bytes}
}

// stats returns the identity contribution of a single object: itself.
func (o *Object) stats() Stats {
	return Stats{Count: 1, Bytes: o.Bytes}
}

// superRoot constructs the synthetic root object.
func superRoot() *Object {
	return &Object{Address: SuperRoot, Bytes: 0, Kind: "ROOT", Label: "root"}
}

// IsSuperRoot reports whether this object is the synthetic super-root.
func (o *Object) IsSuperRoot() bool {
	return o.Address == SuperRoot
}

// String renders the object via its label if set, else "kind[0xaddress]".
func (o *Object) String() string {
	if o.Label != "" {
		return o.Label
	}
	return fmt.Sprintf("%s[%#x]", o.Kind, uint64(o.Address))
}
