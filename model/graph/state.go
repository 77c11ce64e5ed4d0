package graph

import "github.com/viant/stepflow/model/param"

// StateType identifies inline state variant
type StateType string

const (
	StateTypeWait     StateType = "wait"
	StateTypeChoice   StateType = "choice"
	StateTypeFail     StateType = "fail"
	StateTypeSucceed  StateType = "succeed"
	StateTypePass     StateType = "pass"
	StateTypeParallel StateType = "parallel"
	StateTypeMap      StateType = "map"
)

// Map processing modes
const (
	MapModeInline      = "inline"
	MapModeDistributed = "distributed"
)

// State is an inline control-flow state embedded at a transition point
type State interface {
	Type() StateType
}

type (
	// Wait delays the execution for seconds or until timestamp
	Wait struct {
		Seconds   interface{} `json:"seconds,omitempty" yaml:"seconds,omitempty"`
		Timestamp interface{} `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
		Next      *Next       `json:"next,omitempty" yaml:"next,omitempty"`
	}

	// Rule is a single choice branch
	Rule struct {
		Condition string `json:"condition" yaml:"condition"`
		Next      *Next  `json:"next" yaml:"next"`
	}

	// Choice routes to the first rule whose condition holds, or to Default
	Choice struct {
		Choices []*Rule `json:"choices,omitempty" yaml:"choices,omitempty"`
		Default *Next   `json:"default,omitempty" yaml:"default,omitempty"`
	}

	// Fail terminates the execution with an error
	Fail struct {
		Cause string `json:"cause,omitempty" yaml:"cause,omitempty"`
		Error string `json:"error,omitempty" yaml:"error,omitempty"`
	}

	// Succeed terminates the execution successfully
	Succeed struct {
		Output interface{} `json:"output,omitempty" yaml:"output,omitempty"`
	}

	// Pass forwards input, optionally assigning variables or shaping output
	Pass struct {
		Assign interface{} `json:"assign,omitempty" yaml:"assign,omitempty"`
		Output interface{} `json:"output,omitempty" yaml:"output,omitempty"`
		End    bool        `json:"end,omitempty" yaml:"end,omitempty"`
		Next   *Next       `json:"next,omitempty" yaml:"next,omitempty"`
	}

	// Parallel runs every branch flow concurrently
	Parallel struct {
		Branches       []*Flow                `json:"branches,omitempty" yaml:"branches,omitempty"`
		Arguments      map[string]interface{} `json:"arguments,omitempty" yaml:"arguments,omitempty"`
		ArgumentParams []*param.Node          `json:"argumentParams,omitempty" yaml:"argumentParams,omitempty"`
		Assign         interface{}            `json:"assign,omitempty" yaml:"assign,omitempty"`
		Output         interface{}            `json:"output,omitempty" yaml:"output,omitempty"`
		End            bool                   `json:"end,omitempty" yaml:"end,omitempty"`
		Next           *Next                  `json:"next,omitempty" yaml:"next,omitempty"`
		Recovery       `yaml:",inline"`
	}

	// Map runs the body flow for every item
	Map struct {
		Body             *Flow         `json:"body,omitempty" yaml:"body,omitempty"`
		Mode             string        `json:"mode,omitempty" yaml:"mode,omitempty"`
		ExecutionType    string        `json:"executionType,omitempty" yaml:"executionType,omitempty"`
		ItemReader       *ItemReader   `json:"itemReader,omitempty" yaml:"itemReader,omitempty"`
		ResultWriter     *ResultWriter `json:"resultWriter,omitempty" yaml:"resultWriter,omitempty"`
		MaxItemsPerBatch *int          `json:"maxItemsPerBatch,omitempty" yaml:"maxItemsPerBatch,omitempty"`
		Assign           interface{}   `json:"assign,omitempty" yaml:"assign,omitempty"`
		Output           interface{}   `json:"output,omitempty" yaml:"output,omitempty"`
		End              bool          `json:"end,omitempty" yaml:"end,omitempty"`
		Next             *Next         `json:"next,omitempty" yaml:"next,omitempty"`
		Recovery         `yaml:",inline"`
	}

	// ItemReader locates the distributed map items in a bucket
	ItemReader struct {
		Source    string      `json:"source" yaml:"source"`
		Bucket    string      `json:"bucket,omitempty" yaml:"bucket,omitempty"`
		Key       string      `json:"key,omitempty" yaml:"key,omitempty"`
		Delimiter string      `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
		Headers   *CSVHeaders `json:"headers,omitempty" yaml:"headers,omitempty"`
		MaxItems  *int        `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	}

	// CSVHeaders controls csv header handling
	CSVHeaders struct {
		Location string   `json:"location,omitempty" yaml:"location,omitempty"`
		Titles   []string `json:"titles,omitempty" yaml:"titles,omitempty"`
	}

	// ResultWriter stores distributed map results in a bucket
	ResultWriter struct {
		Bucket string        `json:"bucket,omitempty" yaml:"bucket,omitempty"`
		Prefix string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
		Config *WriterConfig `json:"config,omitempty" yaml:"config,omitempty"`
	}

	// WriterConfig shapes the written results
	WriterConfig struct {
		OutputType     string `json:"outputType,omitempty" yaml:"outputType,omitempty"`
		Transformation string `json:"transformation,omitempty" yaml:"transformation,omitempty"`
	}
)

func (w *Wait) Type() StateType     { return StateTypeWait }
func (c *Choice) Type() StateType   { return StateTypeChoice }
func (f *Fail) Type() StateType     { return StateTypeFail }
func (s *Succeed) Type() StateType  { return StateTypeSucceed }
func (p *Pass) Type() StateType     { return StateTypePass }
func (p *Parallel) Type() StateType { return StateTypeParallel }
func (m *Map) Type() StateType      { return StateTypeMap }

// IsDistributed returns true for distributed processing mode
func (m *Map) IsDistributed() bool {
	return m.Mode == MapModeDistributed
}

// IsCSV returns true when items are read from a csv object
func (r *ItemReader) IsCSV() bool {
	return r.Source == "csv"
}
