// Package parameters parses compact parameter keys used in workflow sources.
package parameters

import (
	"fmt"
	"strings"

	bstate "github.com/viant/bindly/state"
	"github.com/viant/parsly"
	"github.com/viant/stepflow/model/param"
	"github.com/viant/stepflow/service/expression"
)

// IsCompact returns true if key carries a type or a location
func IsCompact(key string) bool {
	return strings.ContainsAny(key, "[(")
}

// Parse parses a parameter key in the format: name[type](context/source).
// Both the [type] and the (context/source) parts are optional.
func Parse(input []byte) (*param.Node, error) {
	cursor := parsly.NewCursor("", input, 0)
	node := &param.Node{}

	matched := cursor.MatchOne(identifierToken)
	if matched.Code != identifierToken.Code {
		return nil, cursor.NewError(identifierToken)
	}
	node.Name = matched.Text(cursor)
	if atEnd(cursor) {
		return node, nil
	}

	matched = cursor.MatchAny(openSquareBracketToken, openParenToken)
	switch matched.Code {
	case openSquareBracketToken.Code:
		matched = cursor.MatchOne(dataTypeToken)
		if matched.Code != dataTypeToken.Code {
			return nil, cursor.NewError(dataTypeToken)
		}
		node.DataType = matched.Text(cursor)
		if matched = cursor.MatchOne(closeSquareBracketToken); matched.Code != closeSquareBracketToken.Code {
			return nil, cursor.NewError(closeSquareBracketToken)
		}
		if atEnd(cursor) {
			return node, nil
		}
		if matched = cursor.MatchAfterOptional(whitespaceToken, openParenToken); matched.Code != openParenToken.Code {
			return nil, cursor.NewError(openParenToken)
		}
	case openParenToken.Code:
	default:
		return nil, cursor.NewError(openSquareBracketToken, openParenToken)
	}
	if err := parseLocation(cursor, node); err != nil {
		return nil, err
	}
	if !atEnd(cursor) {
		return nil, fmt.Errorf("unexpected trailing input at %d: %s", cursor.Pos, input[cursor.Pos:])
	}
	return node, nil
}

// parseLocation parses context/source) after the opening parenthesis
func parseLocation(cursor *parsly.Cursor, node *param.Node) error {
	node.Location = &bstate.Location{}
	matched := cursor.MatchAny(contextToken, closeParenToken)
	switch matched.Code {
	case closeParenToken.Code:
		return nil
	case contextToken.Code:
	default:
		return cursor.NewError(contextToken, closeParenToken)
	}
	node.Location.Kind = strings.TrimSpace(matched.Text(cursor))
	if context := node.Context(); !context.IsValid() {
		return fmt.Errorf("%w: %s", expression.ErrUnsupportedContext, context)
	}
	if matched = cursor.MatchOne(slashToken); matched.Code == slashToken.Code {
		if matched = cursor.MatchOne(sourceToken); matched.Code != sourceToken.Code {
			return cursor.NewError(sourceToken)
		}
		node.Location.In = strings.TrimSpace(matched.Text(cursor))
	}
	if matched = cursor.MatchOne(closeParenToken); matched.Code != closeParenToken.Code {
		return cursor.NewError(closeParenToken)
	}
	return nil
}

func atEnd(cursor *parsly.Cursor) bool {
	for cursor.Pos < cursor.InputSize {
		if c := cursor.Input[cursor.Pos]; c != ' ' && c != '\t' {
			return false
		}
		cursor.Pos++
	}
	return true
}
