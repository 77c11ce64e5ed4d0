package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/model/graph"
	"github.com/viant/stepflow/model/param"
	"github.com/viant/stepflow/service/expression"
	"github.com/viant/stepflow/service/target"
)

func compile(t *testing.T, flow *graph.Flow) *asl.Document {
	t.Helper()
	doc, err := New(flow, nil).Compile(context.Background())
	require.NoError(t, err)
	require.Empty(t, doc.Dangling())
	return doc
}

func TestCompiler_Compile_ChoiceScenario(t *testing.T) {
	flow := graph.NewFlow("orders")
	flow.NewTask("A").WithNext(graph.Inline(&graph.Choice{
		Choices: []*graph.Rule{{Condition: "true", Next: graph.To("B")}},
		Default: graph.Inline(&graph.Fail{Cause: "x", Error: "E"}),
	}))
	flow.NewTask("B").WithEnd()
	flow.WithStart(graph.To("A"))

	doc := compile(t, flow)
	actual, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "StartAt": "A",
  "States": {
    "A": {"Type": "Task", "Resource": "arn:aws:states:::lambda:invoke", "Arguments": {"Payload": {}, "FunctionName": "A-orders"}, "Next": "choice-1"},
    "choice-1": {"Type": "Choice", "Choices": [{"Condition": "true", "Next": "B"}], "Default": "fail-1"},
    "B": {"Type": "Task", "Resource": "arn:aws:states:::lambda:invoke", "Arguments": {"Payload": {}, "FunctionName": "B-orders"}, "End": true},
    "fail-1": {"Type": "Fail", "Cause": "x", "Error": "E"}
  }
}`, string(actual))
}

func TestCompiler_Compile_TaskMemoization(t *testing.T) {
	calls := map[string]int{}
	resolver := target.Func(func(ctx context.Context, workflow string, task *graph.TaskStep) (*target.Target, error) {
		calls[task.Name]++
		return &target.Target{FunctionName: task.Name}, nil
	})
	flow := graph.NewFlow("orders")
	flow.NewTask("A").WithNext(graph.Inline(&graph.Choice{
		Choices: []*graph.Rule{
			{Condition: "{% $states.input.ok %}", Next: graph.To("B")},
			{Condition: "{% $states.input.retry %}", Next: graph.To("B")},
		},
		Default: graph.Inline(&graph.Wait{Seconds: 5, Next: graph.To("B")}),
	}))
	flow.NewTask("B").WithEnd()
	flow.WithStart(graph.To("A"))

	doc, err := New(flow, resolver).Compile(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.States, 4)
	assert.Equal(t, 1, calls["B"])
	choice := doc.States["choice-1"]
	for _, rule := range choice.Choices {
		assert.Equal(t, "B", rule.Next)
	}
	assert.Equal(t, "wait-1", choice.Default)
	assert.Equal(t, "B", doc.States["wait-1"].Next)
}

func TestCompiler_Compile_DeterministicNaming(t *testing.T) {
	flow := graph.NewFlow("orders")
	flow.WithStart(graph.Inline(&graph.Wait{Seconds: 1, Next: graph.Inline(&graph.Wait{Timestamp: "{% $states.input.at %}", Next: graph.To("B")})}))
	flow.NewTask("B").WithNext(graph.Inline(&graph.Wait{Seconds: 3, Next: graph.Inline(&graph.Succeed{})}))

	doc := compile(t, flow)
	assert.Equal(t, "wait-1", doc.StartAt)
	assert.Equal(t, "wait-2", doc.States["wait-1"].Next)
	assert.Equal(t, "B", doc.States["wait-2"].Next)
	assert.Equal(t, "wait-3", doc.States["B"].Next)
	assert.Equal(t, "succeed-1", doc.States["wait-3"].Next)
	assert.Equal(t, "{% $states.input.at %}", doc.States["wait-2"].Timestamp)

	again := compile(t, flow)
	expect, _ := json.Marshal(doc)
	actual, _ := json.Marshal(again)
	assert.JSONEq(t, string(expect), string(actual))
}

func TestCompiler_Compile_WaitPassThrough(t *testing.T) {
	flow := graph.NewFlow("orders")
	flow.WithStart(graph.Inline(&graph.Wait{Seconds: 10, Timestamp: "2026-01-01T00:00:00Z"}))
	doc := compile(t, flow)
	wait := doc.States["wait-1"]
	assert.Equal(t, 10, wait.Seconds)
	assert.Equal(t, "2026-01-01T00:00:00Z", wait.Timestamp)
	assert.Empty(t, wait.Next)
}

func TestCompiler_Compile_PolicyScoping(t *testing.T) {
	retry := graph.NewRetry("States.Timeout").WithMaxAttempt(3).WithInterval(2).WithBackoffRate(1.5).WithMaxDelay(30)
	catchAll := func() []*graph.Catch {
		return []*graph.Catch{graph.NewCatch(graph.Inline(&graph.Pass{Output: "{% $states.errorOutput %}", End: true}), "States.ALL")}
	}
	body := graph.NewFlow("")
	body.NewTask("item").WithEnd()
	body.WithStart(graph.To("item"))
	branch := graph.NewFlow("")
	branch.WithStart(graph.Inline(&graph.Succeed{}))

	flow := graph.NewFlow("orders")
	flow.NewTask("A").WithRetry(retry).WithCatch(catchAll()...).WithNext(graph.Inline(&graph.Parallel{
		Branches: []*graph.Flow{branch},
		Recovery: graph.Recovery{Retry: []*graph.Retry{retry}, Catch: catchAll()},
		Next: graph.Inline(&graph.Map{
			Body:     body,
			Recovery: graph.Recovery{Catch: catchAll()},
			Next: graph.Inline(&graph.Choice{
				Choices: []*graph.Rule{{Condition: "{% $states.input.done %}", Next: graph.Inline(&graph.Succeed{})}},
				Default: graph.Inline(&graph.Fail{Error: "NotDone"}),
			}),
		}),
	}))
	flow.WithStart(graph.To("A"))

	doc := compile(t, flow)
	for name, state := range doc.States {
		switch state.Type {
		case asl.TypeTask, asl.TypeParallel, asl.TypeMap:
			assert.True(t, state.HasPolicies(), name)
		default:
			assert.False(t, state.HasPolicies(), name)
		}
	}
	task := doc.States["A"]
	require.Len(t, task.Retry, 1)
	assert.EqualValues(t, &asl.Retry{
		ErrorEquals:     []string{"States.Timeout"},
		BackoffRate:     retry.BackoffRate,
		IntervalSeconds: retry.IntervalSeconds,
		MaxAttempts:     retry.MaxAttempt,
		MaxDelaySeconds: retry.MaxDelaySeconds,
	}, task.Retry[0])
	// task successors are compiled before its catch targets
	assert.Equal(t, "parallel-1", task.Next)
	assert.Equal(t, "pass-3", task.Catch[0].Next)
	assert.Equal(t, "pass-1", doc.States["map-1"].Catch[0].Next)
	assert.Equal(t, "pass-2", doc.States["parallel-1"].Catch[0].Next)
	assert.Nil(t, doc.States["map-1"].Retry)
	assert.True(t, doc.States["pass-1"].End)
}

func TestCompiler_Compile_MapModes(t *testing.T) {
	maxItems := 100
	batch := 10
	body := graph.NewFlow("")
	body.WithStart(graph.Inline(&graph.Pass{End: true}))
	reader := func(source string) *graph.ItemReader {
		return &graph.ItemReader{
			Source: source, Bucket: "items", Key: "input/items." + source, Delimiter: ",",
			Headers: &graph.CSVHeaders{Location: "GIVEN", Titles: []string{"id", "qty"}}, MaxItems: &maxItems,
		}
	}
	writer := &graph.ResultWriter{Bucket: "results", Prefix: "out/", Config: &graph.WriterConfig{OutputType: "JSONL", Transformation: "FLATTEN"}}

	testCases := []struct {
		description string
		aMap        *graph.Map
		expect      string
	}{
		{
			description: "inline ignores distributed settings",
			aMap:        &graph.Map{Body: body, ItemReader: reader("csv"), ResultWriter: writer, MaxItemsPerBatch: &batch, End: true},
			expect: `{"Type":"Map","End":true,"ItemProcessor":{"StartAt":"pass-1","States":{"pass-1":{"Type":"Pass","End":true}},
"ProcessorConfig":{"Mode":"INLINE"}}}`,
		},
		{
			description: "distributed json reader omits csv fields",
			aMap:        &graph.Map{Body: body, Mode: graph.MapModeDistributed, ExecutionType: "express", ItemReader: reader("json"), End: true},
			expect: `{"Type":"Map","End":true,"ItemProcessor":{"StartAt":"pass-1","States":{"pass-1":{"Type":"Pass","End":true}},
"ProcessorConfig":{"Mode":"DISTRIBUTED","ExecutionType":"EXPRESS"}},
"ItemReader":{"Resource":"arn:aws:states:::s3:getObject","Arguments":{"Bucket":"items","Key":"input/items.json"},"ReaderConfig":{"InputType":"JSON"}}}`,
		},
		{
			description: "distributed csv reader with writer and batching",
			aMap:        &graph.Map{Body: body, Mode: graph.MapModeDistributed, ItemReader: reader("csv"), ResultWriter: writer, MaxItemsPerBatch: &batch, End: true},
			expect: `{"Type":"Map","End":true,"ItemProcessor":{"StartAt":"pass-1","States":{"pass-1":{"Type":"Pass","End":true}},
"ProcessorConfig":{"Mode":"DISTRIBUTED","ExecutionType":"STANDARD"}},
"ItemReader":{"Resource":"arn:aws:states:::s3:getObject","Arguments":{"Bucket":"items","Key":"input/items.csv"},
"ReaderConfig":{"InputType":"CSV","CSVDelimiter":",","CSVHeaderLocation":"GIVEN","CSVHeaders":["id","qty"],"MaxItems":100}},
"ResultWriter":{"Resource":"arn:aws:states:::s3:putObject","Parameters":{"Bucket":"results","Prefix":"out/"},"WriterConfig":{"OutputType":"JSONL","Transformation":"FLATTEN"}},
"ItemBatcher":{"MaxItemsPerBatch":10}}`,
		},
		{
			description: "distributed writer without config",
			aMap:        &graph.Map{Body: body, Mode: graph.MapModeDistributed, ResultWriter: &graph.ResultWriter{Bucket: "results"}, End: true},
			expect: `{"Type":"Map","End":true,"ItemProcessor":{"StartAt":"pass-1","States":{"pass-1":{"Type":"Pass","End":true}},
"ProcessorConfig":{"Mode":"DISTRIBUTED","ExecutionType":"STANDARD"}},
"ResultWriter":{"Resource":"arn:aws:states:::s3:putObject","Parameters":{"Bucket":"results"}}}`,
		},
	}

	for _, testCase := range testCases {
		flow := graph.NewFlow("items")
		flow.WithStart(graph.Inline(testCase.aMap))
		doc := compile(t, flow)
		actual, err := json.Marshal(doc.States["map-1"])
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestCompiler_Compile_BranchIsolation(t *testing.T) {
	newBranch := func(task string) *graph.Flow {
		branch := graph.NewFlow("")
		branch.NewTask(task).WithEnd()
		branch.WithStart(graph.Inline(&graph.Wait{Seconds: 1, Next: graph.To(task)}))
		return branch
	}
	flow := graph.NewFlow("orders")
	flow.WithStart(graph.Inline(&graph.Wait{Seconds: 2, Next: graph.Inline(&graph.Parallel{
		Branches: []*graph.Flow{newBranch("left"), newBranch("right")},
		ArgumentParams: []*param.Node{
			param.NewContext("orderId", param.ContextInput, "order.id"),
			param.NewValue("region", "us-east-1"),
		},
		Next: graph.Inline(&graph.Wait{Seconds: 3, Next: graph.Inline(&graph.Succeed{})}),
	})}))

	doc := compile(t, flow)
	parallel := doc.States["parallel-1"]
	require.Len(t, parallel.Branches, 2)
	for i, branch := range parallel.Branches {
		assert.Equal(t, "wait-1", branch.StartAt, i)
		assert.Contains(t, branch.States, "wait-1", i)
		assert.Len(t, branch.States, 2, i)
		assert.Empty(t, branch.Dangling(), i)
	}
	assert.Equal(t, "left-orders", parallel.Branches[0].States["left"].Arguments.(*asl.TaskArguments).FunctionName)
	assert.Equal(t, "wait-2", parallel.Next)
	assert.Equal(t, "wait-1", doc.StartAt)
	assert.EqualValues(t, map[string]interface{}{"orderId": "{% $states.input.order.id %}", "region": "us-east-1"}, parallel.Arguments)
}

func TestCompiler_Compile_ParallelLiteralArguments(t *testing.T) {
	branch := graph.NewFlow("")
	branch.WithStart(graph.Inline(&graph.Succeed{}))
	flow := graph.NewFlow("orders")
	flow.WithStart(graph.Inline(&graph.Parallel{Branches: []*graph.Flow{branch}, Arguments: map[string]interface{}{"a": 1}, End: true}))
	doc := compile(t, flow)
	assert.EqualValues(t, map[string]interface{}{"a": 1}, doc.States["parallel-1"].Arguments)

	flow.WithStart(graph.Inline(&graph.Parallel{Branches: []*graph.Flow{branch}, End: true}))
	data, err := json.Marshal(compile(t, flow).States["parallel-1"])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Arguments")
}

func TestCompiler_Compile_TaskPayload(t *testing.T) {
	flow := graph.NewFlow("orders")
	flow.NewTask("A").WithEnd().WithArgument(param.NewObject("",
		param.NewContext("order", param.ContextInput, "order"),
		param.NewContext("token", param.ContextTask, "token"),
		param.NewJSONata("total", "{% $sum($states.input.items.price) %}"),
	))
	flow.Tasks["A"].Assign = map[string]interface{}{"orderId": "{% $states.input.order.id %}"}
	flow.WithStart(graph.To("A"))

	doc := compile(t, flow)
	task := doc.States["A"]
	assert.EqualValues(t, map[string]interface{}{
		"order": "{% $states.input.order %}",
		"token": "{% $states.context.Task.Token %}",
		"total": "{% $sum($states.input.items.price) %}",
	}, task.Arguments.(*asl.TaskArguments).Payload)
	assert.EqualValues(t, map[string]interface{}{"orderId": "{% $states.input.order.id %}"}, task.Assign)
	assert.Empty(t, task.Next)
}

func TestCompiler_Compile_Loop(t *testing.T) {
	flow := graph.NewFlow("poll")
	flow.NewTask("check").WithNext(graph.Inline(&graph.Choice{
		Choices: []*graph.Rule{{Condition: "{% $states.input.ready %}", Next: graph.Inline(&graph.Succeed{})}},
		Default: graph.Inline(&graph.Wait{Seconds: 30, Next: graph.To("check")}),
	}))
	flow.WithStart(graph.To("check"))

	doc := compile(t, flow)
	assert.Len(t, doc.States, 4)
	assert.Equal(t, "check", doc.States["wait-1"].Next)
}

func TestCompiler_Compile_ReservedNames(t *testing.T) {
	flow := graph.NewFlow("orders")
	flow.NewTask("wait-1").WithEnd()
	flow.WithStart(graph.Inline(&graph.Wait{Seconds: 1, Next: graph.To("wait-1")}))
	doc := compile(t, flow)
	assert.Equal(t, "wait-2", doc.StartAt)
	assert.Equal(t, asl.TypeTask, doc.States["wait-1"].Type)
}

func TestCompiler_Compile_Errors(t *testing.T) {
	resolverErr := errors.New("bundle failed")
	testCases := []struct {
		description string
		flow        func() *graph.Flow
		resolver    target.Resolver
		expectErr   error
	}{
		{
			description: "unknown start",
			flow: func() *graph.Flow {
				return graph.NewFlow("orders").WithStart(graph.To("missing"))
			},
			expectErr: ErrUnknownStep,
		},
		{
			description: "unknown catch target",
			flow: func() *graph.Flow {
				flow := graph.NewFlow("orders").WithStart(graph.To("A"))
				flow.NewTask("A").WithEnd().WithCatch(graph.NewCatch(graph.To("handler"), "States.ALL"))
				return flow
			},
			expectErr: ErrUnknownStep,
		},
		{
			description: "unknown step inside branch",
			flow: func() *graph.Flow {
				branch := graph.NewFlow("").WithStart(graph.To("A"))
				return graph.NewFlow("orders").WithStart(graph.Inline(&graph.Parallel{Branches: []*graph.Flow{branch}}))
			},
			expectErr: ErrUnknownStep,
		},
		{
			description: "missing start",
			flow: func() *graph.Flow {
				return graph.NewFlow("orders")
			},
			expectErr: ErrMissingStart,
		},
		{
			description: "missing map body",
			flow: func() *graph.Flow {
				return graph.NewFlow("orders").WithStart(graph.Inline(&graph.Map{}))
			},
			expectErr: ErrMissingStart,
		},
		{
			description: "choice rule without target",
			flow: func() *graph.Flow {
				return graph.NewFlow("orders").WithStart(graph.Inline(&graph.Choice{Choices: []*graph.Rule{{Condition: "true"}}}))
			},
			expectErr: ErrMissingNext,
		},
		{
			description: "unmapped context field",
			flow: func() *graph.Flow {
				flow := graph.NewFlow("orders").WithStart(graph.To("A"))
				flow.NewTask("A").WithEnd().WithArgument(param.NewObject("", param.NewContext("x", param.ContextExecution, "arn")))
				return flow
			},
			expectErr: expression.ErrUnmappedContextField,
		},
		{
			description: "task resolution failure",
			flow: func() *graph.Flow {
				flow := graph.NewFlow("orders").WithStart(graph.To("A"))
				flow.NewTask("A").WithEnd()
				return flow
			},
			resolver: target.Func(func(ctx context.Context, workflow string, task *graph.TaskStep) (*target.Target, error) {
				return nil, resolverErr
			}),
			expectErr: resolverErr,
		},
		{
			description: "nil target",
			flow: func() *graph.Flow {
				flow := graph.NewFlow("orders").WithStart(graph.To("A"))
				flow.NewTask("A").WithEnd()
				return flow
			},
			resolver: target.Func(func(ctx context.Context, workflow string, task *graph.TaskStep) (*target.Target, error) {
				return nil, nil
			}),
			expectErr: target.ErrNoTarget,
		},
	}

	for _, testCase := range testCases {
		doc, err := New(testCase.flow(), testCase.resolver).Compile(context.Background())
		assert.Nil(t, doc, testCase.description)
		assert.True(t, errors.Is(err, testCase.expectErr), "%s: %v", testCase.description, err)
	}
}

func TestAllocator(t *testing.T) {
	names := newAllocator(nil)
	assert.Equal(t, "wait-1", names.allocate(graph.StateTypeWait))
	assert.Equal(t, "choice-1", names.allocate(graph.StateTypeChoice))
	assert.Equal(t, "wait-2", names.allocate(graph.StateTypeWait))
	reserved := newAllocator(func(name string) bool { return name == "pass-1" })
	assert.Equal(t, "pass-2", reserved.allocate(graph.StateTypePass))
}
