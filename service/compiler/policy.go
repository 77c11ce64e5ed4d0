package compiler

import (
	"context"
	"fmt"

	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/model/graph"
)

// attach sets Retry and Catch on Task, Parallel and Map states. Catch targets
// are resolved like any other transition, so they may introduce new inline states.
func (c *Compiler) attach(ctx context.Context, state *asl.State, policies *graph.Recovery) error {
	if policies == nil {
		return nil
	}
	if len(policies.Retry) > 0 {
		state.Retry = make([]*asl.Retry, 0, len(policies.Retry))
		for _, retry := range policies.Retry {
			state.Retry = append(state.Retry, &asl.Retry{
				ErrorEquals:     retry.ErrorEquals,
				BackoffRate:     retry.BackoffRate,
				IntervalSeconds: retry.IntervalSeconds,
				MaxAttempts:     retry.MaxAttempt,
				MaxDelaySeconds: retry.MaxDelaySeconds,
			})
		}
	}
	if len(policies.Catch) > 0 {
		state.Catch = make([]*asl.Catch, 0, len(policies.Catch))
		for i, catch := range policies.Catch {
			next, err := c.resolve(ctx, catch.Next, false)
			if err != nil {
				return err
			}
			if next == "" {
				return fmt.Errorf("%w: catch[%d]", ErrMissingNext, i)
			}
			state.Catch = append(state.Catch, &asl.Catch{ErrorEquals: catch.ErrorEquals, Next: next})
		}
	}
	return nil
}
