// Package stage defines installation stages: the ordered, externally
// authored records that drive camera framing, layer visibility and labels.
package stage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Overview is the number of the first stage. It shows the whole model on
// the default camera and never ghosts or labels anything.
const Overview = 1

// Reveal is the action operation that highlights the layers it shows.
const Reveal = "reveal"

// Vec3 is a native-space vector. In stage files it may be written either as
// a sequence [x, y, z] or as a mapping {x: .., y: .., z: ..}.
type Vec3 mgl32.Vec3

// Vec returns v as an mgl32 vector.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// UnmarshalYAML accepts both the sequence and the mapping form.
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xs []float32
		if err := node.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(xs))
		}
		*v = Vec3{xs[0], xs[1], xs[2]}
	case yaml.MappingNode:
		var m struct {
			X float32 `yaml:"x"`
			Y float32 `yaml:"y"`
			Z float32 `yaml:"z"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*v = Vec3{m.X, m.Y, m.Z}
	default:
		return fmt.Errorf("line %d: vector must be a list or a mapping", node.Line)
	}
	return nil
}

// MarshalYAML writes the vector in sequence form.
func (v Vec3) MarshalYAML() (interface{}, error) {
	return []float32{v[0], v[1], v[2]}, nil
}

// CameraPose is a camera position and look-at target in native space.
type CameraPose struct {
	Position Vec3 `yaml:"position"`
	Target   Vec3 `yaml:"target"`
}

// LayerAction toggles mesh groups. Layers is a comma-separated list of
// Layer:<name> (show) and !Layer:<name> (hide) tokens.
type LayerAction struct {
	Layers    string `yaml:"layers"`
	Operation string `yaml:"operation,omitempty"`
}

// IsReveal reports whether the action highlights the layers it shows.
func (a LayerAction) IsReveal() bool {
	return strings.EqualFold(strings.TrimSpace(a.Operation), Reveal)
}

// Label is a floating text anchored at a native-space position.
type Label struct {
	Marker   string `yaml:"marker"`
	Text     string `yaml:"text"`
	Position Vec3   `yaml:"position"`
}

// Renderable reports whether the label has something to show at a real
// anchor.
func (l Label) Renderable() bool {
	if l.Marker == "" && l.Text == "" {
		return false
	}
	return !l.Position.IsZero()
}

// Stage is one step of an installation sequence.
type Stage struct {
	Number      int           `yaml:"number"`
	Title       string        `yaml:"title,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Camera      *CameraPose   `yaml:"camera"`
	Actions     []LayerAction `yaml:"actions"`
	Labels      []Label       `yaml:"labels"`
}

// List is an ordered stage sequence.
type List []Stage

// Find returns the stage with the given number.
func (l List) Find(number int) (*Stage, bool) {
	for i := range l {
		if l[i].Number == number {
			return &l[i], true
		}
	}
	return nil, false
}

// Through returns the stages numbered 1..number in ascending order. The
// receiver is not modified.
func (l List) Through(number int) []*Stage {
	out := make([]*Stage, 0, len(l))
	for i := range l {
		if l[i].Number >= Overview && l[i].Number <= number {
			out = append(out, &l[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Count returns the number of navigable stages. Navigation ranges over
// 1..Count regardless of gaps in the authored numbering.
func (l List) Count() int {
	return len(l)
}
