package workflow

import (
	"fmt"

	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/toolbox"
)

func intValue(node *yml.Node) (*int, error) {
	value, err := toolbox.ToInt(node.Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: expected integer: %v", ErrInvalidNode, node.Line, node.Value)
	}
	return &value, nil
}

func floatValue(node *yml.Node) (*float64, error) {
	value, err := toolbox.ToFloat(node.Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: expected number: %v", ErrInvalidNode, node.Line, node.Value)
	}
	return &value, nil
}

func boolValue(node *yml.Node) (bool, error) {
	if !node.IsScalar() {
		return false, fmt.Errorf("%w: line %d: expected boolean", ErrInvalidNode, node.Line)
	}
	return toolbox.AsBoolean(node.Interface()), nil
}
