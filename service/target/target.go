// Package target resolves task steps into the invocable targets referenced by
// compiled Task states.
package target

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/stepflow/model/graph"
)

// ErrNoTarget is returned when no resolver can produce a target for a task
var ErrNoTarget = errors.New("no invocation target")

// Target identifies the deployed unit invoked by a Task state
type Target struct {
	FunctionName string `json:"functionName" yaml:"functionName"`
}

// Resolver resolves a task step declared by workflow into its target
type Resolver interface {
	Resolve(ctx context.Context, workflow string, task *graph.TaskStep) (*Target, error)
}

// Func adapts a function to Resolver
type Func func(ctx context.Context, workflow string, task *graph.TaskStep) (*Target, error)

// Resolve calls fn
func (fn Func) Resolve(ctx context.Context, workflow string, task *graph.TaskStep) (*Target, error) {
	return fn(ctx, workflow, task)
}

const (
	TaskPlaceholder     = "{task}"
	WorkflowPlaceholder = "{workflow}"
	// DefaultFormat names functions after the task and its workflow
	DefaultFormat = TaskPlaceholder + "-" + WorkflowPlaceholder
)

// Naming derives function names from a format with {task} and {workflow} placeholders
type Naming struct {
	Format string
}

// Resolve formats the function name
func (n *Naming) Resolve(ctx context.Context, workflow string, task *graph.TaskStep) (*Target, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format := n.Format
	if format == "" {
		format = DefaultFormat
	}
	name := strings.NewReplacer(TaskPlaceholder, task.Name, WorkflowPlaceholder, workflow).Replace(format)
	return &Target{FunctionName: name}, nil
}

// NewNaming creates format based resolver
func NewNaming(format string) *Naming {
	return &Naming{Format: format}
}

// Registry resolves explicitly registered tasks, delegating others to Fallback
type Registry struct {
	Functions map[string]string
	Fallback  Resolver
}

// Register maps a task name (or workflow/task) to a function name
func (r *Registry) Register(task, functionName string) {
	if r.Functions == nil {
		r.Functions = map[string]string{}
	}
	r.Functions[task] = functionName
}

// Resolve returns registered target, qualified workflow/task entries win over bare task names
func (r *Registry) Resolve(ctx context.Context, workflow string, task *graph.TaskStep) (*Target, error) {
	if name, ok := r.Functions[workflow+"/"+task.Name]; ok {
		return &Target{FunctionName: name}, nil
	}
	if name, ok := r.Functions[task.Name]; ok {
		return &Target{FunctionName: name}, nil
	}
	if r.Fallback == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoTarget, workflow, task.Name)
	}
	return r.Fallback.Resolve(ctx, workflow, task)
}

// NewRegistry creates registry resolver
func NewRegistry(functions map[string]string, fallback Resolver) *Registry {
	return &Registry{Functions: functions, Fallback: fallback}
}
