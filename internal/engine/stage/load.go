package stage

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the top-level shape of a stage file. A bare sequence of
// stages is accepted as well.
type document struct {
	Stages List `yaml:"stages"`
}

// Parse decodes a stage list from YAML or JSON (JSON is valid YAML).
// Stages without an explicit number are numbered by position.
func Parse(data []byte) (List, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding stages: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var list List
	switch top := root.Content[0]; top.Kind {
	case yaml.SequenceNode:
		if err := top.Decode(&list); err != nil {
			return nil, fmt.Errorf("decoding stages: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := top.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding stages: %w", err)
		}
		list = doc.Stages
	default:
		return nil, fmt.Errorf("decoding stages: expected a list or a mapping with a stages key")
	}

	for i := range list {
		if list[i].Number == 0 {
			list[i].Number = i + 1
		}
	}
	return list, nil
}

// Read decodes a stage list from r.
func Read(r io.Reader) (List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stages: %w", err)
	}
	return Parse(data)
}

// Load reads a stage file from disk.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Marshal encodes a stage list as YAML under a stages key.
func Marshal(list List) ([]byte, error) {
	return yaml.Marshal(document{Stages: list})
}
