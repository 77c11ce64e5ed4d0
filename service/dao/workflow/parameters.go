package workflow

import (
	"fmt"

	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/stepflow/model/param"
	"github.com/viant/stepflow/service/dao/workflow/parameters"
)

// parseArgument reads a task payload: a mapping becomes an object of parameters, anything else a literal
func parseArgument(node *yml.Node) (*param.Node, error) {
	if !node.IsMapping() {
		return param.NewValue("", node.Interface()), nil
	}
	properties, err := parseParameters(node)
	if err != nil {
		return nil, err
	}
	return param.NewObject("", properties...), nil
}

// parseParameters reads parameter mapping keys in the name[type](context/source) form
func parseParameters(node *yml.Node) ([]*param.Node, error) {
	if !node.IsMapping() {
		return nil, fmt.Errorf("%w: parameters should be a mapping", ErrInvalidNode)
	}
	var result []*param.Node
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		parameter, err := parseParameter(key, valueNode)
		if err != nil {
			return err
		}
		result = append(result, parameter)
		return nil
	})
	return result, err
}

func parseParameter(key string, node *yml.Node) (*param.Node, error) {
	parameter := &param.Node{Name: key}
	if parameters.IsCompact(key) {
		parsed, err := parameters.Parse([]byte(key))
		if err != nil {
			return nil, fmt.Errorf("failed to parse parameter %s: %w", key, err)
		}
		parameter = parsed
	}
	switch parameter.Context() {
	case param.ContextCustom:
		if !node.IsMapping() {
			parameter.Value = node.Interface()
			return parameter, nil
		}
		properties, err := parseParameters(node)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", parameter.Name, err)
		}
		parameter.Properties = properties
		if parameter.DataType == "" {
			parameter.DataType = param.ObjectType
		}
	case param.ContextJSONata:
		parameter.Value = node.Value
	default:
		// source may be given as the value: orderId(input): order.id
		if parameter.Location.In == "" {
			parameter.Location.In = node.Value
		}
	}
	return parameter, nil
}
