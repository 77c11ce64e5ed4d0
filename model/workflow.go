package model

import (
	"fmt"
	"sort"

	"github.com/viant/stepflow/model/graph"
)

// Source provides information about the origin of the workflow
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Workflow represents a workflow source
type Workflow struct {
	// Source provides information about the origin of the workflow
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Description provides a human-readable description of the workflow
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version specifies the workflow version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// ExecutionType is the target state machine type (standard or express)
	ExecutionType string `json:"executionType,omitempty" yaml:"executionType,omitempty"`

	graph.Flow `yaml:",inline"`
}

// Validate performs a best-effort structural validation of the workflow.  The
// returned slice is empty when the workflow is sound; otherwise it contains
// human-readable error descriptions.  Conditions and expressions are not
// evaluated.
func (w *Workflow) Validate() []error {
	var issues []error
	if w.StartAt.IsEmpty() {
		issues = append(issues, fmt.Errorf("workflow %s has no start reference", w.Name))
		return issues
	}
	validateFlow(&w.Flow, w.Name, &issues)
	return issues
}

func validateFlow(flow *graph.Flow, location string, issues *[]error) {
	check := func(owner string, next *graph.Next) {
		walkNext(next, func(name string) {
			if _, ok := flow.Task(name); !ok {
				*issues = append(*issues, fmt.Errorf("%s: %s refers to unknown task %s", location, owner, name))
			}
		}, func(branch string, nested *graph.Flow) {
			if nested.StartAt.IsEmpty() {
				*issues = append(*issues, fmt.Errorf("%s: %s has no start reference", location, branch))
				return
			}
			validateFlow(nested, location+"/"+branch, issues)
		})
	}

	check("startAt", flow.StartAt)
	for _, name := range sortedTaskNames(flow) {
		task := flow.Tasks[name]
		if task.Name != name {
			*issues = append(*issues, fmt.Errorf("%s: task %s declared under %s", location, task.Name, name))
		}
		check(name, task.Next)
		for _, c := range task.Catch {
			check(name+".catch", c.Next)
		}
	}
}

// walkNext visits every task reference and nested flow reachable from the
// supplied reference without crossing into another task.
func walkNext(next *graph.Next, onTask func(string), onFlow func(string, *graph.Flow)) {
	if next.IsEmpty() {
		return
	}
	if next.State == nil {
		onTask(next.Task)
		return
	}
	switch actual := next.State.(type) {
	case *graph.Wait:
		walkNext(actual.Next, onTask, onFlow)
	case *graph.Choice:
		for _, rule := range actual.Choices {
			walkNext(rule.Next, onTask, onFlow)
		}
		walkNext(actual.Default, onTask, onFlow)
	case *graph.Pass:
		walkNext(actual.Next, onTask, onFlow)
	case *graph.Parallel:
		for i, branch := range actual.Branches {
			if branch != nil {
				onFlow(fmt.Sprintf("parallel.branch[%d]", i), branch)
			}
		}
		walkNext(actual.Next, onTask, onFlow)
		for _, c := range actual.Catch {
			walkNext(c.Next, onTask, onFlow)
		}
	case *graph.Map:
		if actual.Body != nil {
			onFlow("map.body", actual.Body)
		}
		walkNext(actual.Next, onTask, onFlow)
		for _, c := range actual.Catch {
			walkNext(c.Next, onTask, onFlow)
		}
	}
}

func sortedTaskNames(flow *graph.Flow) []string {
	names := make([]string, 0, len(flow.Tasks))
	for name := range flow.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewWorkflow creates a new workflow with the given name
func NewWorkflow(name string) *Workflow {
	return &Workflow{Flow: *graph.NewFlow(name)}
}

// WithDescription sets the description of the workflow
func (w *Workflow) WithDescription(description string) *Workflow {
	w.Description = description
	return w
}

// WithVersion sets the version of the workflow
func (w *Workflow) WithVersion(version string) *Workflow {
	w.Version = version
	return w
}

// WithExecutionType sets the state machine execution type
func (w *Workflow) WithExecutionType(executionType string) *Workflow {
	w.ExecutionType = executionType
	return w
}

// WithStart sets the start reference
func (w *Workflow) WithStart(next *graph.Next) *Workflow {
	w.StartAt = next
	return w
}
