package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stepflow/model/graph"
)

func TestProgrammaticWorkflowCreation(t *testing.T) {
	workflow := NewWorkflow("orders").
		WithDescription("order processing").
		WithVersion("1").
		WithExecutionType("express").
		WithStart(graph.To("validate"))

	workflow.NewTask("validate").
		WithRetry(graph.NewRetry("States.Timeout").WithMaxAttempt(3)).
		WithCatch(graph.NewCatch(graph.Inline(&graph.Fail{Error: "Invalid"}), "States.ALL")).
		WithNext(graph.Inline(&graph.Choice{
			Choices: []*graph.Rule{{Condition: "{% $states.input.valid %}", Next: graph.To("ship")}},
			Default: graph.Inline(&graph.Fail{Cause: "rejected"}),
		}))
	workflow.NewTask("ship").WithEnd()

	assert.Equal(t, "orders", workflow.Name)
	assert.Equal(t, "express", workflow.ExecutionType)
	assert.Len(t, workflow.Tasks, 2)
	assert.Empty(t, workflow.Validate())
}

func TestWorkflow_Validate(t *testing.T) {
	testCases := []struct {
		description string
		workflow    func() *Workflow
		expect      []string
	}{
		{
			description: "missing start",
			workflow:    func() *Workflow { return NewWorkflow("orders") },
			expect:      []string{"workflow orders has no start reference"},
		},
		{
			description: "unknown start task",
			workflow: func() *Workflow {
				return NewWorkflow("orders").WithStart(graph.To("validate"))
			},
			expect: []string{"orders: startAt refers to unknown task validate"},
		},
		{
			description: "unknown task behind inline states",
			workflow: func() *Workflow {
				workflow := NewWorkflow("orders").WithStart(graph.To("a"))
				workflow.NewTask("a").WithNext(graph.Inline(&graph.Wait{Seconds: 1, Next: graph.Inline(&graph.Pass{Next: graph.To("b")})}))
				return workflow
			},
			expect: []string{"orders: a refers to unknown task b"},
		},
		{
			description: "unknown catch target",
			workflow: func() *Workflow {
				workflow := NewWorkflow("orders").WithStart(graph.To("a"))
				workflow.NewTask("a").WithEnd().WithCatch(graph.NewCatch(graph.To("handler")))
				return workflow
			},
			expect: []string{"orders: a.catch refers to unknown task handler"},
		},
		{
			description: "branch scope",
			workflow: func() *Workflow {
				branch := graph.NewFlow("")
				branch.WithStart(graph.To("a"))
				body := graph.NewFlow("")
				workflow := NewWorkflow("orders").WithStart(graph.Inline(&graph.Parallel{
					Branches: []*graph.Flow{branch},
					Next:     graph.Inline(&graph.Map{Body: body, End: true}),
				}))
				workflow.NewTask("a").WithEnd()
				return workflow
			},
			expect: []string{
				"orders/parallel.branch[0]: startAt refers to unknown task a",
				"orders: map.body has no start reference",
			},
		},
		{
			description: "task declared under other name",
			workflow: func() *Workflow {
				workflow := NewWorkflow("orders").WithStart(graph.To("a"))
				workflow.AddTask(&graph.TaskStep{Name: "a", End: true})
				workflow.Tasks["b"] = &graph.TaskStep{Name: "c", End: true}
				return workflow
			},
			expect: []string{"orders: task c declared under b"},
		},
		{
			description: "loop",
			workflow: func() *Workflow {
				workflow := NewWorkflow("orders").WithStart(graph.To("poll"))
				workflow.NewTask("poll").WithNext(graph.Inline(&graph.Wait{Seconds: 10, Next: graph.To("poll")}))
				return workflow
			},
		},
	}

	for _, testCase := range testCases {
		var actual []string
		for _, issue := range testCase.workflow().Validate() {
			actual = append(actual, issue.Error())
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
