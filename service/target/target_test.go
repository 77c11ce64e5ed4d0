package target

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stepflow/model/graph"
)

func TestNaming_Resolve(t *testing.T) {
	testCases := []struct {
		description string
		format      string
		expect      string
	}{
		{description: "default format", expect: "validate-orders"},
		{description: "custom format", format: "prod-{workflow}-{task}", expect: "prod-orders-validate"},
		{description: "static", format: "shared", expect: "shared"},
	}
	for _, testCase := range testCases {
		actual, err := NewNaming(testCase.format).Resolve(context.Background(), "orders", &graph.TaskStep{Name: "validate"})
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual.FunctionName, testCase.description)
	}
}

func TestNaming_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewNaming("").Resolve(ctx, "orders", &graph.TaskStep{Name: "validate"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry(map[string]string{
		"charge":        "arn:aws:lambda:us-east-1:123:function:charge",
		"orders/notify": "orders-notify-v2",
	}, NewNaming(""))

	testCases := []struct {
		description string
		workflow    string
		task        string
		expect      string
	}{
		{description: "bare task", workflow: "orders", task: "charge", expect: "arn:aws:lambda:us-east-1:123:function:charge"},
		{description: "qualified task", workflow: "orders", task: "notify", expect: "orders-notify-v2"},
		{description: "qualified task other workflow", workflow: "billing", task: "notify", expect: "notify-billing"},
	}
	for _, testCase := range testCases {
		actual, err := registry.Resolve(context.Background(), testCase.workflow, &graph.TaskStep{Name: testCase.task})
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual.FunctionName, testCase.description)
	}

	_, err := NewRegistry(nil, nil).Resolve(context.Background(), "orders", &graph.TaskStep{Name: "x"})
	assert.True(t, errors.Is(err, ErrNoTarget))
}
