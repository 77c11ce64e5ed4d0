package param

import (
	"strings"

	"github.com/viant/bindly/state"
)

// Context identifies where a parameter value comes from
type Context string

const (
	ContextCustom       Context = "custom"
	ContextInput        Context = "input"
	ContextExecution    Context = "execution"
	ContextStateMachine Context = "state_machine"
	ContextState        Context = "state"
	ContextTask         Context = "task"
	ContextJSONata      Context = "jsonata"
)

// IsValid returns true for a known context
func (c Context) IsValid() bool {
	switch c {
	case ContextCustom, ContextInput, ContextExecution, ContextStateMachine, ContextState, ContextTask, ContextJSONata:
		return true
	}
	return false
}

// ObjectType marks a custom node whose value is built from its properties
const ObjectType = "object"

// Node represents a parameter tree node. Location.Kind holds the context,
// Location.In the source selector (for example order.id or start_time).
type Node struct {
	Name       string          `json:"name" yaml:"name"`
	DataType   string          `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Location   *state.Location `json:"location,omitempty" yaml:"location,omitempty"`
	Value      interface{}     `json:"value,omitempty" yaml:"value,omitempty"`
	Properties []*Node         `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Context returns node context, custom when no location was supplied
func (n *Node) Context() Context {
	if n.Location == nil || n.Location.Kind == "" {
		return ContextCustom
	}
	return Context(strings.ToLower(n.Location.Kind))
}

// Source returns the namespace field selector
func (n *Node) Source() string {
	if n.Location == nil {
		return ""
	}
	return n.Location.In
}

// IsObject returns true for custom nodes assembled from nested properties
func (n *Node) IsObject() bool {
	return len(n.Properties) > 0 || strings.EqualFold(n.DataType, ObjectType)
}

// WithProperty appends a nested property
func (n *Node) WithProperty(property *Node) *Node {
	n.Properties = append(n.Properties, property)
	return n
}

// NewValue creates a custom literal node
func NewValue(name string, value interface{}) *Node {
	return &Node{Name: name, Value: value}
}

// NewObject creates a custom object node
func NewObject(name string, properties ...*Node) *Node {
	return &Node{Name: name, DataType: ObjectType, Properties: properties}
}

// NewContext creates a node selecting source from the supplied context namespace
func NewContext(name string, context Context, source string) *Node {
	return &Node{Name: name, Location: &state.Location{Kind: string(context), In: source}}
}

// NewJSONata creates a raw JSONata pass-through node
func NewJSONata(name string, expr string) *Node {
	return &Node{Name: name, Location: &state.Location{Kind: string(ContextJSONata)}, Value: expr}
}
