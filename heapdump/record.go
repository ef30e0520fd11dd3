// ABOUTME: Record mirrors one line of a Ruby ObjectSpace.dump_all-style heap snapshot
// ABOUTME: Address parsing and label formatting here implement the §6/§9 schema and edge cases
package heapdump

import (
	"strconv"
	"strings"

	"github.com/prateek/rheap/graph"
)

// Record is one decoded snapshot line, per spec §6.
type Record struct {
	Address    string   `json:"address"`
	MemSize    *uint64  `json:"memsize"`
	References []string `json:"references"`
	Type       string   `json:"type"`
	Class      string   `json:"class"`
	Root       string   `json:"root"`
	Name       string   `json:"name"`
	Length     *uint64  `json:"length"`
	Size       *uint64  `json:"size"`
	Value      string   `json:"value"`
}

// parseAddress parses a "0x..."-prefixed hex address: the first two
// characters are skipped without being checked, and the rest is parsed as
// hex. Malformed input (too short, non-hex after the first two
// characters) is tolerated by returning ok ==
// false rather than an error: per §7, a malformed reference or class
// pointer just becomes absent, it never aborts the parse.
func parseAddress(s string) (graph.ObjID, bool) {
	if len(s) < 3 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, false
	}
	return graph.ObjID(n), true
}

// address returns the record's own address, degrading to 0 on any parse
// failure — which, per §6, forces the record to be treated as the
// synthetic root (if Type == "ROOT") or dropped entirely otherwise.
func (r Record) address() graph.ObjID {
	id, ok := parseAddress(r.Address)
	if !ok {
		return 0
	}
	return id
}

func (r Record) bytes() uint64 {
	if r.MemSize == nil {
		return 0
	}
	return *r.MemSize
}

// references resolves every reference that parses as a valid address;
// unparsable entries are silently dropped, per §6/§9(ii).
func (r Record) references() []graph.ObjID {
	out := make([]graph.ObjID, 0, len(r.References))
	for _, ref := range r.References {
		if id, ok := parseAddress(ref); ok {
			out = append(out, id)
		}
	}
	return out
}

// classAddress resolves the Class field, if present and well-formed.
func (r Record) classAddress() (graph.ObjID, bool) {
	if r.Class == "" {
		return 0, false
	}
	return parseAddress(r.Class)
}

// label formats the object's initial display string, per the
// CLASS/MODULE/ICLASS/ARRAY/HASH/STRING cases in §6/§9. Any record
// missing the field its kind requires gets no label at all — dropped
// silently, never an error (§7.1).
func (r Record) label(addr graph.ObjID) string {
	switch r.Type {
	case "CLASS", "MODULE", "ICLASS":
		if r.Name == "" {
			return ""
		}
		return formatAddr(r.Name, addr) + "[" + r.Type + "]"
	case "ARRAY":
		if r.Length == nil {
			return ""
		}
		return "Array" + formatAddrBracket(addr) + "[len=" + strconv.FormatUint(*r.Length, 10) + "]"
	case "HASH":
		if r.Size == nil {
			return ""
		}
		return "Hash" + formatAddrBracket(addr) + "[size=" + strconv.FormatUint(*r.Size, 10) + "]"
	case "STRING":
		if r.Value == "" {
			return ""
		}
		return "String" + formatAddrBracket(addr) + "[" + truncatedStringPreview(r.Value) + "]"
	default:
		return ""
	}
}

func formatAddr(name string, addr graph.ObjID) string {
	return name + formatAddrBracket(addr)
}

func formatAddrBracket(addr graph.ObjID) string {
	return "[0x" + strconv.FormatUint(uint64(addr), 16) + "]"
}

// truncatedStringPreview mirrors parse.rs's STRING label: the first 40
// runes, control characters dropped, backslashes swapped for a
// lookalike so the preview never breaks DOT/Graphviz output, plus an
// ellipsis if a 41st rune exists.
func truncatedStringPreview(value string) string {
	runes := []rune(value)
	limit := 40
	if len(runes) < limit {
		limit = len(runes)
	}

	var b strings.Builder
	for _, c := range runes[:limit] {
		switch {
		case strconv.IsPrint(c) == false:
			continue
		case c == '\\':
			b.WriteRune('﹨')
		default:
			b.WriteRune(c)
		}
	}
	if len(runes) > 40 {
		b.WriteString("…")
	}
	return b.String()
}
