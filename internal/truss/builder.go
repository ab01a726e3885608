package truss

// NodeRecord is one raw node row as produced by an editor or model file.
type NodeRecord struct {
	ID           string
	X            float64
	Y            float64
	Fx           float64
	Fy           float64
	Support      Support
	SurfaceAngle float64
}

// BarRecord is one raw bar row. Rows missing an id or an endpoint are
// dropped without error.
type BarRecord struct {
	ID          string
	StartNodeID string
	EndNodeID   string
}

// BuildOptions controls raw-input normalization.
type BuildOptions struct {
	// StrictNodes turns a bar endpoint that names an undefined node into
	// an UnknownNodeError. The default mirrors the permissive behavior of
	// interactive editing: the node is created at the origin with no load
	// and no support, so a typo shows up as a phantom joint at (0,0).
	StrictNodes bool
}

// Build normalizes raw node and bar rows into a canonical Structure.
// It is a pure transformation; the returned model is rebuilt from scratch
// on every call and shares no state with previous results.
func Build(nodes []NodeRecord, bars []BarRecord, opts BuildOptions) (*Structure, error) {
	s := &Structure{Nodes: make(map[string]*Node)}

	for _, r := range nodes {
		key := CanonicalKey(r.ID)
		if key == "" {
			continue
		}
		s.Nodes[key] = &Node{
			Key:          key,
			X:            r.X,
			Y:            r.Y,
			Fx:           r.Fx,
			Fy:           r.Fy,
			Support:      r.Support,
			SurfaceAngle: r.SurfaceAngle,
		}
	}

	for _, r := range bars {
		u := CanonicalKey(r.StartNodeID)
		v := CanonicalKey(r.EndNodeID)
		if r.ID == "" || u == "" || v == "" {
			continue
		}
		for _, key := range []string{u, v} {
			if _, ok := s.Nodes[key]; ok {
				continue
			}
			if opts.StrictNodes {
				return nil, &UnknownNodeError{Key: key, Bar: r.ID}
			}
			s.Nodes[key] = &Node{Key: key}
		}
		s.Bars = append(s.Bars, Bar{Label: r.ID, U: u, V: v})
	}

	if len(s.Nodes) == 0 {
		return nil, ErrEmptyStructure
	}

	s.reindex()
	return s, nil
}
