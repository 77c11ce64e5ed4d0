// Package compiler flattens a workflow flow of task steps and inline control
// states into a uniquely named state document.
//
// Traversal is depth-first and single threaded: inline state names depend on
// visitation order, so every compiler visits reachable states in one
// deterministic sequence. Parallel branches and map bodies are compiled by
// nested compilers with their own name counters and state maps.
package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/model/graph"
	"github.com/viant/stepflow/service/expression"
	"github.com/viant/stepflow/service/target"
	"github.com/viant/stepflow/tracing"
)

// Compiler compiles one flow into a document
type Compiler struct {
	flow     *graph.Flow
	resolver target.Resolver
	logger   *slog.Logger
	depth    int
	states   map[string]*asl.State
	names    *allocator
}

// Option customises compiler
type Option func(c *Compiler)

// WithLogger sets compiler logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates a compiler for the supplied flow; resolver maps task steps to invocation targets
func New(flow *graph.Flow, resolver target.Resolver, options ...Option) *Compiler {
	ret := &Compiler{flow: flow, resolver: resolver}
	for _, option := range options {
		option(ret)
	}
	if ret.resolver == nil {
		ret.resolver = target.NewNaming("")
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ret
}

// Compile returns the flattened document. Each call starts with empty state
// and fresh name counters, so repeated calls yield identical documents.
func (c *Compiler) Compile(ctx context.Context) (doc *asl.Document, err error) {
	ctx, span := tracing.StartSpan(ctx, "stepflow.compile", "INTERNAL")
	span.WithAttributes(map[string]string{"workflow": c.flow.Name}).WithCount("depth", c.depth)
	defer func() { tracing.EndSpan(span, err) }()

	c.states = map[string]*asl.State{}
	c.names = newAllocator(func(name string) bool {
		_, ok := c.flow.Task(name)
		return ok
	})
	if c.flow.StartAt.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrMissingStart, c.flow.Name)
	}
	startAt, err := c.resolve(ctx, c.flow.StartAt, false)
	if err != nil {
		return nil, err
	}
	span.WithCount("states", len(c.states))
	return &asl.Document{StartAt: startAt, States: c.states}, nil
}

// resolve compiles the referenced step and returns its state name; empty when
// the reference is absent or suppressed by end.
func (c *Compiler) resolve(ctx context.Context, next *graph.Next, endSuppressed bool) (string, error) {
	if next.IsEmpty() || endSuppressed {
		return "", nil
	}
	if next.State == nil {
		return c.task(ctx, next.Task)
	}
	name := c.names.allocate(next.State.Type())
	state, err := c.inline(ctx, next.State)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	c.states[name] = state
	c.logger.Debug("compiled state", "workflow", c.flow.Name, "state", name, "type", state.Type)
	return name, nil
}

// task compiles a declared step once; later references reuse its name.
func (c *Compiler) task(ctx context.Context, name string) (string, error) {
	if _, ok := c.states[name]; ok {
		return name, nil
	}
	task, ok := c.flow.Task(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStep, name)
	}
	aTarget, err := c.target(ctx, task)
	if err != nil {
		return "", err
	}
	payload, err := c.payload(task)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	state := &asl.State{
		Type:      asl.TypeTask,
		Resource:  asl.ResourceLambdaInvoke,
		Arguments: &asl.TaskArguments{Payload: payload, FunctionName: aTarget.FunctionName},
		Assign:    task.Assign,
		Output:    task.Output,
		End:       task.End,
	}
	// registered before successors so that loops back to this task terminate
	c.states[name] = state
	if state.Next, err = c.resolve(ctx, task.Next, task.End); err != nil {
		return "", err
	}
	if err = c.attach(ctx, state, task.Policies()); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	c.logger.Debug("compiled task", "workflow", c.flow.Name, "state", name, "function", aTarget.FunctionName)
	return name, nil
}

func (c *Compiler) target(ctx context.Context, task *graph.TaskStep) (aTarget *target.Target, err error) {
	ctx, span := tracing.StartSpan(ctx, "stepflow.target", "CLIENT")
	span.WithAttributes(map[string]string{"workflow": c.flow.Name, "task": task.Name})
	defer func() { tracing.EndSpan(span, err) }()
	if aTarget, err = c.resolver.Resolve(ctx, c.flow.Name, task); err != nil {
		return nil, err
	}
	if aTarget == nil {
		return nil, fmt.Errorf("%w: %s/%s", target.ErrNoTarget, c.flow.Name, task.Name)
	}
	return aTarget, nil
}

func (c *Compiler) payload(task *graph.TaskStep) (interface{}, error) {
	if task.Argument == nil {
		return map[string]interface{}{}, nil
	}
	return expression.Resolve(task.Argument)
}

// sub creates an isolated compiler for a parallel branch or map body
func (c *Compiler) sub(flow *graph.Flow) *Compiler {
	if flow.Name == "" {
		named := *flow
		named.Name = c.flow.Name
		flow = &named
	}
	return &Compiler{flow: flow, resolver: c.resolver, logger: c.logger, depth: c.depth + 1}
}

func (c *Compiler) compileFlow(ctx context.Context, flow *graph.Flow, location string) (*asl.Document, error) {
	if flow == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingStart, location)
	}
	doc, err := c.sub(flow).Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return doc, nil
}
