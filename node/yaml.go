package node

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a YAML document's root is not a mapping.
var ErrNotMapping = errors.New("yaml node: document root is not a mapping")

// YAML is a node backed by a yaml.v3 mapping node. Scalars are mapping
// entries with scalar values; children are entries with mapping values.
type YAML struct {
	n *yaml.Node
}

// NewYAML returns an empty YAML mapping node.
func NewYAML() *YAML {
	return &YAML{n: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// ParseYAML parses a YAML document whose root is a mapping. An empty
// document yields an empty node.
func ParseYAML(data []byte) (*YAML, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml node: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewYAML(), nil
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return &YAML{n: root}, nil
}

// Marshal encodes the node as a YAML document.
func (y *YAML) Marshal() ([]byte, error) {
	return yaml.Marshal(y.n)
}

// lookup returns the value node for key, or nil.
func (y *YAML) lookup(key string) *yaml.Node {
	for i := 0; i+1 < len(y.n.Content); i += 2 {
		if y.n.Content[i].Value == key {
			return y.n.Content[i+1]
		}
	}
	return nil
}

// Value implements Reader.
func (y *YAML) Value(name string) (string, bool) {
	v := y.lookup(name)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return "", false
	}
	return v.Value, true
}

// Child implements Reader.
func (y *YAML) Child(name string) (Reader, bool) {
	v := y.lookup(name)
	if v == nil || v.Kind != yaml.MappingNode {
		return nil, false
	}
	return &YAML{n: v}, true
}

// SetValue implements Writer.
func (y *YAML) SetValue(name, value string) {
	if v := y.lookup(name); v != nil {
		*v = yaml.Node{Kind: yaml.ScalarNode, Value: value}
		return
	}
	y.n.Content = append(y.n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// AddChild implements Writer.
func (y *YAML) AddChild(name string) Writer {
	if v := y.lookup(name); v != nil {
		if v.Kind != yaml.MappingNode {
			*v = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		return &YAML{n: v}
	}
	child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	y.n.Content = append(y.n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
		child,
	)
	return &YAML{n: child}
}
