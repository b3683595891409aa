package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// enumPrefix marks a leaf listing the values a field accepts.
const enumPrefix = "choose one from:"

// Template is a named request body shape: field names mapped to an
// illustrative type, a nested shape, or a list of allowed values.
type Template struct {
	Name string
	node *yaml.Node
}

var (
	loadOnce  sync.Once
	templates map[string]Template
	names     []string
)

func load() {
	loadOnce.Do(func() {
		var err error
		templates, names, err = parse(templatesYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded templates: %v", err))
		}
	})
}

func parse(data []byte) (map[string]Template, []string, error) {
	var doc struct {
		Templates yaml.Node `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Templates.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("templates must be a mapping")
	}

	byName := make(map[string]Template, len(doc.Templates.Content)/2)
	order := make([]string, 0, len(doc.Templates.Content)/2)
	for i := 0; i+1 < len(doc.Templates.Content); i += 2 {
		name := doc.Templates.Content[i].Value
		body := doc.Templates.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("template %s must be a mapping", name)
		}
		if _, dup := byName[name]; dup {
			return nil, nil, fmt.Errorf("duplicate template %s", name)
		}
		byName[name] = Template{Name: name, node: body}
		order = append(order, name)
	}
	return byName, order, nil
}

// Names returns every template name in catalogue order.
func Names() []string {
	load()
	return slices.Clone(names)
}

// Lookup returns the template registered under name.
func Lookup(name string) (Template, bool) {
	load()
	t, ok := templates[name]
	return t, ok
}

// All returns every template in catalogue order.
func All() []Template {
	load()
	out := make([]Template, 0, len(names))
	for _, name := range names {
		out = append(out, templates[name])
	}
	return out
}

// Fields returns the top-level field names in declaration order.
func (t Template) Fields() []string {
	fields := make([]string, 0, len(t.node.Content)/2)
	for i := 0; i < len(t.node.Content); i += 2 {
		fields = append(fields, t.node.Content[i].Value)
	}
	return fields
}

// Shape returns a fresh copy of the template as map[string]any, []any
// and string values. Callers may modify the result.
func (t Template) Shape() map[string]any {
	var shape map[string]any
	if err := t.node.Decode(&shape); err != nil {
		// Mapping nodes of plain scalars always decode.
		panic(fmt.Sprintf("catalog: decode %s: %v", t.Name, err))
	}
	return shape
}

// Enums maps each enumerated field to its allowed values. Paths use dots
// for nested objects and [] for list entries, e.g. "links[].type".
func (t Template) Enums() map[string][]string {
	enums := make(map[string][]string)
	walkEnums(t.node, "", enums)
	return enums
}

func walkEnums(n *yaml.Node, path string, enums map[string][]string) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if path != "" {
				key = path + "." + key
			}
			walkEnums(n.Content[i+1], key, enums)
		}
	case yaml.SequenceNode:
		for _, child := range n.Content {
			walkEnums(child, path+"[]", enums)
		}
	case yaml.ScalarNode:
		if choices, ok := parseEnum(n.Value); ok {
			enums[path] = choices
		}
	}
}

func parseEnum(s string) ([]string, bool) {
	rest, ok := strings.CutPrefix(s, enumPrefix)
	if !ok {
		return nil, false
	}
	var choices []string
	for _, c := range strings.Split(rest, "|") {
		if c = strings.TrimSpace(c); c != "" {
			choices = append(choices, c)
		}
	}
	return choices, len(choices) > 0
}

// YAML renders the template in declaration order.
func (t Template) YAML() ([]byte, error) {
	out, err := yaml.Marshal(t.node)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", t.Name, err)
	}
	return out, nil
}

// JSON renders the template as indented JSON.
func (t Template) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(t.Shape(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", t.Name, err)
	}
	return out, nil
}
