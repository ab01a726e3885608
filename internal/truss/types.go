package truss

import (
	"fmt"
	"sort"
	"strings"
)

// Support is the kind of support restraining a node.
type Support int

const (
	// SupportNone leaves the node free.
	SupportNone Support = iota
	// SupportPinned restrains both translations and contributes two
	// reaction components (horizontal and vertical).
	SupportPinned
	// SupportRoller restrains translation perpendicular to its rolling
	// surface and contributes one reaction component.
	SupportRoller
)

func (s Support) String() string {
	switch s {
	case SupportPinned:
		return "pinned"
	case SupportRoller:
		return "roller"
	default:
		return "none"
	}
}

// ParseSupport converts a support name from an input file to a Support kind.
// Matching is case-insensitive; an empty string means no support.
func ParseSupport(s string) (Support, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return SupportNone, nil
	case "pinned", "pin", "fixed":
		return SupportPinned, nil
	case "roller":
		return SupportRoller, nil
	}
	return SupportNone, fmt.Errorf("unknown support kind %q", s)
}

// Node is one joint of the truss. Coordinates and loads share whatever
// consistent unit system the input uses (e.g. m and kN).
type Node struct {
	Key string // canonical (trimmed, upper-cased) identifier

	X float64
	Y float64

	// Applied external load at the joint.
	Fx float64
	Fy float64

	Support Support

	// SurfaceAngle is the rolling-surface orientation in degrees for a
	// roller support. 0 = horizontal surface, reaction acts vertically.
	SurfaceAngle float64
}

// Bar is one axial member connecting two nodes. The label is display-only;
// bars are addressed by position in the input order.
type Bar struct {
	Label string
	U     string // canonical start-node key
	V     string // canonical end-node key
}

// Structure is the canonical, indexable truss model built from raw input.
// It is immutable for the duration of one computation.
type Structure struct {
	Nodes map[string]*Node
	Bars  []Bar

	keys  []string       // node keys in sorted order
	index map[string]int // node key -> equation index
}

// NodeKeys returns the node keys in the canonical sorted order that fixes
// both the equation-row layout and the reaction-component scan order.
func (s *Structure) NodeKeys() []string { return s.keys }

// NodeIndex returns the equation index of a canonical node key, or -1 when
// the key is not part of the structure.
func (s *Structure) NodeIndex(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return -1
}

func (s *Structure) reindex() {
	s.keys = make([]string, 0, len(s.Nodes))
	for k := range s.Nodes {
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)
	s.index = make(map[string]int, len(s.keys))
	for i, k := range s.keys {
		s.index[k] = i
	}
}

// CanonicalKey normalizes a node identifier for use as a map key. Bar
// endpoint lookups succeed regardless of input case because every key
// passes through here.
func CanonicalKey(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
