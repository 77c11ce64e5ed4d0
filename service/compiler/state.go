package compiler

import (
	"context"
	"fmt"

	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/model/graph"
	"github.com/viant/stepflow/service/expression"
)

func (c *Compiler) inline(ctx context.Context, state graph.State) (*asl.State, error) {
	switch actual := state.(type) {
	case *graph.Wait:
		return c.wait(ctx, actual)
	case *graph.Choice:
		return c.choice(ctx, actual)
	case *graph.Fail:
		return &asl.State{Type: asl.TypeFail, Cause: actual.Cause, Error: actual.Error}, nil
	case *graph.Succeed:
		return &asl.State{Type: asl.TypeSucceed, Output: actual.Output}, nil
	case *graph.Pass:
		return c.pass(ctx, actual)
	case *graph.Parallel:
		return c.parallel(ctx, actual)
	case *graph.Map:
		return c.mapState(ctx, actual)
	}
	return nil, fmt.Errorf("unsupported state type %T", state)
}

func (c *Compiler) wait(ctx context.Context, wait *graph.Wait) (*asl.State, error) {
	ret := &asl.State{Type: asl.TypeWait, Seconds: wait.Seconds, Timestamp: wait.Timestamp}
	var err error
	ret.Next, err = c.resolve(ctx, wait.Next, false)
	return ret, err
}

func (c *Compiler) choice(ctx context.Context, choice *graph.Choice) (*asl.State, error) {
	ret := &asl.State{Type: asl.TypeChoice, Choices: make([]*asl.Choice, 0, len(choice.Choices))}
	for i, rule := range choice.Choices {
		next, err := c.resolve(ctx, rule.Next, false)
		if err != nil {
			return nil, err
		}
		if next == "" {
			return nil, fmt.Errorf("%w: choices[%d]", ErrMissingNext, i)
		}
		ret.Choices = append(ret.Choices, &asl.Choice{Condition: rule.Condition, Next: next})
	}
	var err error
	ret.Default, err = c.resolve(ctx, choice.Default, false)
	return ret, err
}

func (c *Compiler) pass(ctx context.Context, pass *graph.Pass) (*asl.State, error) {
	ret := &asl.State{Type: asl.TypePass, Assign: pass.Assign, Output: pass.Output, End: pass.End}
	var err error
	ret.Next, err = c.resolve(ctx, pass.Next, pass.End)
	return ret, err
}

func (c *Compiler) parallel(ctx context.Context, parallel *graph.Parallel) (*asl.State, error) {
	ret := &asl.State{Type: asl.TypeParallel, Assign: parallel.Assign, Output: parallel.Output, End: parallel.End}
	for i, branch := range parallel.Branches {
		doc, err := c.compileFlow(ctx, branch, fmt.Sprintf("branches[%d]", i))
		if err != nil {
			return nil, err
		}
		ret.Branches = append(ret.Branches, doc)
	}
	switch {
	case len(parallel.ArgumentParams) > 0:
		args, err := expression.ResolveProperties(parallel.ArgumentParams)
		if err != nil {
			return nil, err
		}
		ret.Arguments = args
	case parallel.Arguments != nil:
		ret.Arguments = parallel.Arguments
	}
	var err error
	if ret.Next, err = c.resolve(ctx, parallel.Next, parallel.End); err != nil {
		return nil, err
	}
	return ret, c.attach(ctx, ret, parallel.Policies())
}
