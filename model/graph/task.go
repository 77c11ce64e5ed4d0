package graph

import "github.com/viant/stepflow/model/param"

// TaskStep represents a pre-declared unit of invocable work
type TaskStep struct {
	Name     string      `json:"name" yaml:"name"`
	Next     *Next       `json:"next,omitempty" yaml:"next,omitempty"`
	End      bool        `json:"end,omitempty" yaml:"end,omitempty"`
	Assign   interface{} `json:"assign,omitempty" yaml:"assign,omitempty"`
	Output   interface{} `json:"output,omitempty" yaml:"output,omitempty"`
	Argument *param.Node `json:"argument,omitempty" yaml:"argument,omitempty"`
	Recovery `yaml:",inline"`
}

// WithNext sets next reference
func (t *TaskStep) WithNext(next *Next) *TaskStep {
	t.Next = next
	return t
}

// WithEnd marks the step terminal
func (t *TaskStep) WithEnd() *TaskStep {
	t.End = true
	return t
}

// WithArgument sets the task payload parameter tree
func (t *TaskStep) WithArgument(argument *param.Node) *TaskStep {
	t.Argument = argument
	return t
}

// WithRetry appends retry policies
func (t *TaskStep) WithRetry(retry ...*Retry) *TaskStep {
	t.Retry = append(t.Retry, retry...)
	return t
}

// WithCatch appends catch policies
func (t *TaskStep) WithCatch(catch ...*Catch) *TaskStep {
	t.Catch = append(t.Catch, catch...)
	return t
}
