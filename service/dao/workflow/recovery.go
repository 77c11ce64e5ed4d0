package workflow

import (
	"fmt"
	"strings"

	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/stepflow/model/graph"
)

func parseRetries(node *yml.Node) ([]*graph.Retry, error) {
	if !node.IsSequence() {
		return nil, fmt.Errorf("%w: retry should be a sequence", ErrInvalidNode)
	}
	var result []*graph.Retry
	err := node.Items(func(index int, item *yml.Node) error {
		retry := &graph.Retry{}
		err := item.Pairs(func(key string, valueNode *yml.Node) error {
			var err error
			switch strings.ToLower(key) {
			case "errorequals", "errors":
				retry.ErrorEquals, err = valueNode.Strings()
			case "maxattempts", "maxattempt":
				retry.MaxAttempt, err = intValue(valueNode)
			case "intervalseconds", "interval":
				retry.IntervalSeconds, err = intValue(valueNode)
			case "maxdelayseconds", "maxdelay":
				retry.MaxDelaySeconds, err = intValue(valueNode)
			case "backoffrate", "backoff":
				retry.BackoffRate, err = floatValue(valueNode)
			}
			return wrapKey(fmt.Sprintf("retry[%d]", index), key, err)
		})
		result = append(result, retry)
		return err
	})
	return result, err
}

func parseCatches(node *yml.Node) ([]*graph.Catch, error) {
	if !node.IsSequence() {
		return nil, fmt.Errorf("%w: catch should be a sequence", ErrInvalidNode)
	}
	var result []*graph.Catch
	err := node.Items(func(index int, item *yml.Node) error {
		catch := &graph.Catch{}
		err := item.Pairs(func(key string, valueNode *yml.Node) error {
			var err error
			switch strings.ToLower(key) {
			case "errorequals", "errors":
				catch.ErrorEquals, err = valueNode.Strings()
			case "next":
				catch.Next, err = parseNext(valueNode)
			}
			return wrapKey(fmt.Sprintf("catch[%d]", index), key, err)
		})
		result = append(result, catch)
		return err
	})
	return result, err
}
