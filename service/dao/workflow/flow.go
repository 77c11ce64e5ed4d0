package workflow

import (
	"fmt"
	"strings"

	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/stepflow/model/graph"
)

// parseFlow reads name, startAt and tasks of a workflow, parallel branch or map body
func parseFlow(node *yml.Node, flow *graph.Flow) error {
	if !node.IsMapping() {
		return fmt.Errorf("%w: flow should be a mapping", ErrInvalidNode)
	}
	if flow.Tasks == nil {
		flow.Tasks = map[string]*graph.TaskStep{}
	}
	return node.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			flow.Name = valueNode.Value
		case "startat":
			next, err := parseNext(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse startAt: %w", err)
			}
			flow.StartAt = next
		case "tasks":
			return parseTasks(valueNode, flow)
		}
		return nil
	})
}

// parseTasks accepts either a mapping keyed by task name or a sequence of tasks with a name attribute
func parseTasks(node *yml.Node, flow *graph.Flow) error {
	switch {
	case node.IsMapping():
		return node.Pairs(func(name string, taskNode *yml.Node) error {
			task, err := parseTask(name, taskNode)
			if err != nil {
				return err
			}
			flow.Tasks[name] = task
			return nil
		})
	case node.IsSequence():
		return node.Items(func(index int, taskNode *yml.Node) error {
			nameNode := taskNode.Lookup("name")
			if !nameNode.IsScalar() || nameNode.Value == "" {
				return fmt.Errorf("%w: tasks[%d] has no name", ErrInvalidNode, index)
			}
			task, err := parseTask(nameNode.Value, taskNode)
			if err != nil {
				return err
			}
			if _, ok := flow.Tasks[task.Name]; ok {
				return fmt.Errorf("%w: duplicate task %s", ErrInvalidNode, task.Name)
			}
			flow.Tasks[task.Name] = task
			return nil
		})
	}
	return fmt.Errorf("%w: tasks should be a mapping or a sequence", ErrInvalidNode)
}

func parseTask(name string, node *yml.Node) (*graph.TaskStep, error) {
	task := &graph.TaskStep{Name: name}
	if node.IsScalar() && node.Value == "" {
		return task, nil
	}
	if !node.IsMapping() {
		return nil, fmt.Errorf("%w: task %s should be a mapping", ErrInvalidNode, name)
	}
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "name":
			task.Name = valueNode.Value
		case "next":
			task.Next, err = parseNext(valueNode)
		case "end":
			task.End, err = boolValue(valueNode)
		case "assign":
			task.Assign = valueNode.Interface()
		case "output":
			task.Output = valueNode.Interface()
		case "argument", "arguments", "payload":
			task.Argument, err = parseArgument(valueNode)
		case "retry":
			task.Retry, err = parseRetries(valueNode)
		case "catch":
			task.Catch, err = parseCatches(valueNode)
		}
		if err != nil {
			return fmt.Errorf("%s.%s: %w", name, key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
