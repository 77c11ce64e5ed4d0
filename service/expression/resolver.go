// Package expression compiles parameter trees into literal values or JSONata
// expressions addressing the execution engine runtime context.
package expression

import (
	"fmt"

	"github.com/viant/stepflow/model/param"
)

// Resolve compiles a parameter node into a literal or a namespaced expression string
func Resolve(node *param.Node) (interface{}, error) {
	if node == nil {
		return nil, nil
	}
	context := node.Context()
	switch context {
	case param.ContextCustom:
		if !node.IsObject() {
			return node.Value, nil
		}
		return ResolveProperties(node.Properties)
	case param.ContextInput:
		return wrap("$states.input." + node.Source()), nil
	case param.ContextJSONata:
		return node.Value, nil
	}
	ns, ok := Lookup(context)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContext, context)
	}
	field, err := ns.Field(node.Source())
	if err != nil {
		return nil, err
	}
	return wrap("$states.context." + ns.Name + "." + field), nil
}

// ResolveProperties compiles nodes into a map keyed by node name
func ResolveProperties(nodes []*param.Node) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(nodes))
	for _, node := range nodes {
		value, err := Resolve(node)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parameter %s: %w", node.Name, err)
		}
		result[node.Name] = value
	}
	return result, nil
}

func wrap(expr string) string {
	return "{% " + expr + " %}"
}
