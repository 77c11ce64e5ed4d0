// Package asl defines the compiled state-machine document in the Amazon
// States Language layout. Field names are emitted exactly as the execution
// engine expects them.
package asl

import (
	"sort"
	"strings"
)

// State types
const (
	TypeTask     = "Task"
	TypeWait     = "Wait"
	TypeChoice   = "Choice"
	TypeFail     = "Fail"
	TypeSucceed  = "Succeed"
	TypePass     = "Pass"
	TypeParallel = "Parallel"
	TypeMap      = "Map"
)

// Integration resources
const (
	ResourceLambdaInvoke = "arn:aws:states:::lambda:invoke"
	ResourceS3GetObject  = "arn:aws:states:::s3:getObject"
	ResourceS3PutObject  = "arn:aws:states:::s3:putObject"
)

// Processor modes and defaults
const (
	ModeInline           = "INLINE"
	ModeDistributed      = "DISTRIBUTED"
	ExecutionTypeDefault = "STANDARD"
	QueryLanguageJSONata = "JSONata"
)

// Document is a flattened, uniquely named state document
type Document struct {
	StartAt string            `json:"StartAt"`
	States  map[string]*State `json:"States"`
}

// Dangling returns transition targets that have no matching state, sorted by name
func (d *Document) Dangling() []string {
	var result []string
	seen := map[string]bool{}
	if _, ok := d.States[d.StartAt]; !ok {
		seen[d.StartAt] = true
		result = append(result, d.StartAt)
	}
	for _, state := range d.States {
		for _, name := range state.Transitions() {
			if _, ok := d.States[name]; ok || seen[name] {
				continue
			}
			seen[name] = true
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// Definition is the final document submitted to the execution engine
type Definition struct {
	Document
	QueryLanguage string `json:"QueryLanguage"`
	ExecutionType string `json:"ExecutionType,omitempty"`
}

// NewDefinition wraps document with the query language and upper-cased execution type
func NewDefinition(document *Document, executionType string) *Definition {
	return &Definition{
		Document:      *document,
		QueryLanguage: QueryLanguageJSONata,
		ExecutionType: strings.ToUpper(executionType),
	}
}
