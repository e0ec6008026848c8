package input

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agbru/polyroots/internal/roots"
)

// ParseYAML reads a YAML document. The node tree is walked directly so
// scalar values keep their literal text ("0111" stays a numeral, it is not
// reinterpreted as an integer) and repeated labels are reported.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDocument)
	}

	items := make([]item, 0, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: labels must be scalars", ErrInvalidDocument, key.Line)
		}
		it, err := yamlItem(key.Value, value)
		if err != nil {
			return nil, &roots.LabelError{Label: key.Value, Err: err}
		}
		items = append(items, it)
	}
	return build(items)
}

func yamlItem(label string, node *yaml.Node) (item, error) {
	it := item{label: label}
	if node.Kind != yaml.MappingNode {
		return it, nil
	}

	it.isObject = true
	it.fields = make(map[string]scalar, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, v := node.Content[i].Value, node.Content[i+1]
		if _, dup := it.fields[name]; dup {
			return it, fmt.Errorf("%w: field %q repeated (line %d)", ErrMalformedEntry, name, node.Content[i].Line)
		}
		switch {
		case v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null":
			it.fields[name] = scalar{null: true}
		case v.Kind == yaml.ScalarNode:
			it.fields[name] = scalar{text: v.Value}
		case name == "base" || name == "value" || name == "n" || name == "k":
			return it, fmt.Errorf("%w: field %q must be a scalar (line %d)", ErrMalformedEntry, name, v.Line)
		}
	}
	return it, nil
}
