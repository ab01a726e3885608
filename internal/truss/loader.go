package truss

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/truongaus/gotruss/internal/expr"
)

// Scalar is a numeric model-file field that accepts either a JSON number
// or a restricted arithmetic expression string, e.g. 4.5 or "3*sqrt(2)".
type Scalar float64

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := expr.Eval(raw)
		if err != nil {
			return fmt.Errorf("expression %q: %w", raw, err)
		}
		*s = Scalar(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s", data)
	}
	*s = Scalar(v)
	return nil
}

// NodeSpec is one node entry of a truss model file.
type NodeSpec struct {
	ID           string `json:"id"`
	X            Scalar `json:"x"`
	Y            Scalar `json:"y"`
	Fx           Scalar `json:"fx,omitempty"`
	Fy           Scalar `json:"fy,omitempty"`
	Support      string `json:"support,omitempty"`
	SurfaceAngle Scalar `json:"surface_angle,omitempty"`
}

// BarSpec is one bar entry of a truss model file.
type BarSpec struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TrussFile is the JSON model consumed by the CLI.
type TrussFile struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Nodes       []NodeSpec `json:"nodes"`
	Bars        []BarSpec  `json:"bars"`
}

// LoadFromFile loads and validates a truss definition from a JSON file.
func LoadFromFile(filepath string) (*TrussFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var f TrussFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate checks the model definition before it is turned into records.
func (f *TrussFile) Validate() error {
	if len(f.Nodes) == 0 {
		return &ValidationError{"model must define at least one node"}
	}
	seen := make(map[string]bool, len(f.Nodes))
	for i, n := range f.Nodes {
		key := CanonicalKey(n.ID)
		if key == "" {
			return &ValidationError{fmt.Sprintf("node %d has no id", i+1)}
		}
		if seen[key] {
			return &ValidationError{fmt.Sprintf("duplicate node id %s", key)}
		}
		seen[key] = true
		if _, err := ParseSupport(n.Support); err != nil {
			return &ValidationError{fmt.Sprintf("node %s: %v", key, err)}
		}
	}
	for i, b := range f.Bars {
		if CanonicalKey(b.Start) == CanonicalKey(b.End) && CanonicalKey(b.Start) != "" {
			return &ValidationError{fmt.Sprintf("bar %d connects node %s to itself", i+1, CanonicalKey(b.Start))}
		}
	}
	return nil
}

// Records converts the validated model into the raw rows consumed by Build.
func (f *TrussFile) Records() ([]NodeRecord, []BarRecord) {
	nodes := make([]NodeRecord, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		support, _ := ParseSupport(n.Support)
		nodes = append(nodes, NodeRecord{
			ID:           n.ID,
			X:            float64(n.X),
			Y:            float64(n.Y),
			Fx:           float64(n.Fx),
			Fy:           float64(n.Fy),
			Support:      support,
			SurfaceAngle: float64(n.SurfaceAngle),
		})
	}

	bars := make([]BarRecord, 0, len(f.Bars))
	for _, b := range f.Bars {
		bars = append(bars, BarRecord{ID: b.ID, StartNodeID: b.Start, EndNodeID: b.End})
	}
	return nodes, bars
}

// ValidationError reports an invalid model definition.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }
