package stage

import "strings"

const (
	showPrefix = "Layer:"
	hidePrefix = "!Layer:"
)

// Toggle is one parsed layer token: a name fragment and whether matching
// meshes are shown.
type Toggle struct {
	Name    string
	Visible bool
}

// ParseLayers splits a layer spec such as "Layer:deck,!Layer:membrane" into
// toggles. Tokens without a known prefix and empty names are skipped: an
// empty name would match every mesh.
func ParseLayers(spec string) []Toggle {
	var out []Toggle
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		var t Toggle
		switch {
		case strings.HasPrefix(tok, hidePrefix):
			t = Toggle{Name: strings.TrimSpace(tok[len(hidePrefix):]), Visible: false}
		case strings.HasPrefix(tok, showPrefix):
			t = Toggle{Name: strings.TrimSpace(tok[len(showPrefix):]), Visible: true}
		default:
			continue
		}
		if t.Name == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Toggles returns the parsed toggles of the action.
func (a LayerAction) Toggles() []Toggle {
	return ParseLayers(a.Layers)
}
