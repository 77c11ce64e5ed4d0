package workflow

import (
	"fmt"
	"strings"

	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/stepflow/model/graph"
)

// parseNext reads a transition: a scalar names a task, a mapping with a type declares an inline state
func parseNext(node *yml.Node) (*graph.Next, error) {
	switch {
	case node == nil:
		return nil, nil
	case node.IsScalar():
		if node.Tag == "!!null" || node.Value == "" {
			return nil, nil
		}
		return graph.To(node.Value), nil
	case node.IsMapping():
		state, err := parseState(node)
		if err != nil {
			return nil, err
		}
		return graph.Inline(state), nil
	}
	return nil, fmt.Errorf("%w: line %d: next should be a task name or an inline state", ErrInvalidNode, node.Line)
}

func parseState(node *yml.Node) (graph.State, error) {
	typeNode := node.Lookup("type")
	if !typeNode.IsScalar() {
		return nil, fmt.Errorf("%w: line %d: inline state has no type", ErrInvalidNode, node.Line)
	}
	switch graph.StateType(strings.ToLower(typeNode.Value)) {
	case graph.StateTypeWait:
		return parseWait(node)
	case graph.StateTypeChoice:
		return parseChoice(node)
	case graph.StateTypeFail:
		ret := &graph.Fail{}
		return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
			switch strings.ToLower(key) {
			case "cause":
				ret.Cause = valueNode.Value
			case "error":
				ret.Error = valueNode.Value
			}
			return nil
		})
	case graph.StateTypeSucceed:
		ret := &graph.Succeed{}
		if output := node.Lookup("output"); output != nil {
			ret.Output = output.Interface()
		}
		return ret, nil
	case graph.StateTypePass:
		return parsePass(node)
	case graph.StateTypeParallel:
		return parseParallel(node)
	case graph.StateTypeMap:
		return parseMap(node)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStateType, typeNode.Value)
}

func parseWait(node *yml.Node) (*graph.Wait, error) {
	ret := &graph.Wait{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "seconds":
			ret.Seconds = valueNode.Interface()
		case "timestamp":
			ret.Timestamp = valueNode.Interface()
		case "next":
			ret.Next, err = parseNext(valueNode)
		}
		return wrapKey("wait", key, err)
	})
}

func parseChoice(node *yml.Node) (*graph.Choice, error) {
	ret := &graph.Choice{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "choices":
			if !valueNode.IsSequence() {
				return fmt.Errorf("%w: choices should be a sequence", ErrInvalidNode)
			}
			err = valueNode.Items(func(index int, ruleNode *yml.Node) error {
				rule := &graph.Rule{}
				if condition := ruleNode.Lookup("condition"); condition != nil {
					rule.Condition = condition.Value
				}
				next, err := parseNext(ruleNode.Lookup("next"))
				if err != nil {
					return fmt.Errorf("choices[%d]: %w", index, err)
				}
				rule.Next = next
				ret.Choices = append(ret.Choices, rule)
				return nil
			})
		case "default":
			ret.Default, err = parseNext(valueNode)
		}
		return wrapKey("choice", key, err)
	})
}

func parsePass(node *yml.Node) (*graph.Pass, error) {
	ret := &graph.Pass{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "assign":
			ret.Assign = valueNode.Interface()
		case "output":
			ret.Output = valueNode.Interface()
		case "end":
			ret.End, err = boolValue(valueNode)
		case "next":
			ret.Next, err = parseNext(valueNode)
		}
		return wrapKey("pass", key, err)
	})
}

func parseParallel(node *yml.Node) (*graph.Parallel, error) {
	ret := &graph.Parallel{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "branches":
			if !valueNode.IsSequence() {
				return fmt.Errorf("%w: branches should be a sequence", ErrInvalidNode)
			}
			err = valueNode.Items(func(index int, branchNode *yml.Node) error {
				branch := graph.NewFlow("")
				if err := parseFlow(branchNode, branch); err != nil {
					return fmt.Errorf("branches[%d]: %w", index, err)
				}
				ret.Branches = append(ret.Branches, branch)
				return nil
			})
		case "arguments":
			ret.ArgumentParams, err = parseParameters(valueNode)
		case "assign":
			ret.Assign = valueNode.Interface()
		case "output":
			ret.Output = valueNode.Interface()
		case "end":
			ret.End, err = boolValue(valueNode)
		case "next":
			ret.Next, err = parseNext(valueNode)
		case "retry":
			ret.Retry, err = parseRetries(valueNode)
		case "catch":
			ret.Catch, err = parseCatches(valueNode)
		}
		return wrapKey("parallel", key, err)
	})
}

func parseMap(node *yml.Node) (*graph.Map, error) {
	ret := &graph.Map{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "body", "processor":
			ret.Body = graph.NewFlow("")
			err = parseFlow(valueNode, ret.Body)
		case "mode":
			ret.Mode = strings.ToLower(valueNode.Value)
		case "executiontype":
			ret.ExecutionType = valueNode.Value
		case "itemreader", "reader":
			ret.ItemReader, err = parseItemReader(valueNode)
		case "resultwriter", "writer":
			ret.ResultWriter, err = parseResultWriter(valueNode)
		case "maxitemsperbatch":
			ret.MaxItemsPerBatch, err = intValue(valueNode)
		case "assign":
			ret.Assign = valueNode.Interface()
		case "output":
			ret.Output = valueNode.Interface()
		case "end":
			ret.End, err = boolValue(valueNode)
		case "next":
			ret.Next, err = parseNext(valueNode)
		case "retry":
			ret.Retry, err = parseRetries(valueNode)
		case "catch":
			ret.Catch, err = parseCatches(valueNode)
		}
		return wrapKey("map", key, err)
	})
}

func parseItemReader(node *yml.Node) (*graph.ItemReader, error) {
	ret := &graph.ItemReader{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		var err error
		switch strings.ToLower(key) {
		case "source", "inputtype":
			ret.Source = strings.ToLower(valueNode.Value)
		case "bucket":
			ret.Bucket = valueNode.Value
		case "key":
			ret.Key = valueNode.Value
		case "delimiter":
			ret.Delimiter = valueNode.Value
		case "maxitems":
			ret.MaxItems, err = intValue(valueNode)
		case "headers":
			ret.Headers = &graph.CSVHeaders{}
			if location := valueNode.Lookup("location"); location != nil {
				ret.Headers.Location = location.Value
			}
			if titles := valueNode.Lookup("titles"); titles != nil {
				ret.Headers.Titles, err = titles.Strings()
			}
		}
		return wrapKey("itemReader", key, err)
	})
}

func parseResultWriter(node *yml.Node) (*graph.ResultWriter, error) {
	ret := &graph.ResultWriter{}
	return ret, node.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "bucket":
			ret.Bucket = valueNode.Value
		case "prefix":
			ret.Prefix = valueNode.Value
		case "config":
			ret.Config = &graph.WriterConfig{}
			if outputType := valueNode.Lookup("outputType"); outputType != nil {
				ret.Config.OutputType = outputType.Value
			}
			if transformation := valueNode.Lookup("transformation"); transformation != nil {
				ret.Config.Transformation = transformation.Value
			}
		}
		return nil
	})
}

func wrapKey(owner, key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %w", owner, key, err)
}
