package expression

import (
	"fmt"
	"strings"

	"github.com/viant/stepflow/model/param"
)

// Namespace maps short context field selectors to runtime context field names
type Namespace struct {
	Name   string
	Fields map[string]string
}

var (
	executionNamespace = &Namespace{Name: "Execution", Fields: map[string]string{
		"id":            "Id",
		"name":          "Name",
		"role_arn":      "RoleArn",
		"redrive_count": "RedriveCount",
		"redrive_time":  "RedriveTime",
		"start_time":    "StartTime",
	}}
	stateMachineNamespace = &Namespace{Name: "StateMachine", Fields: map[string]string{
		"id":   "Id",
		"name": "Name",
	}}
	// retry_count resolves to Name, matching the deployed definitions.
	stateNamespace = &Namespace{Name: "State", Fields: map[string]string{
		"entered_time": "EnteredTime",
		"retry_count":  "Name",
		"name":         "Name",
	}}
	taskNamespace = &Namespace{Name: "Task", Fields: map[string]string{
		"token": "Token",
	}}

	namespaces = map[param.Context]*Namespace{
		param.ContextExecution:    executionNamespace,
		param.ContextStateMachine: stateMachineNamespace,
		param.ContextState:        stateNamespace,
		param.ContextTask:         taskNamespace,
	}
)

// executionInputPrefix selects the execution input instead of a table field
const executionInputPrefix = "input."

// Field returns the context path for the supplied source
func (n *Namespace) Field(source string) (string, error) {
	if n == executionNamespace && strings.HasPrefix(source, executionInputPrefix) {
		return "Input." + source[len(executionInputPrefix):], nil
	}
	field, ok := n.Fields[source]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnmappedContextField, n.Name, source)
	}
	return field, nil
}

// Lookup returns namespace for the supplied context
func Lookup(context param.Context) (*Namespace, bool) {
	ns, ok := namespaces[context]
	return ns, ok
}
