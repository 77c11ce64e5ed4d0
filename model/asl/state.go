package asl

type (
	// State is a compiled state; only fields relevant to Type are set
	State struct {
		Type          string         `json:"Type"`
		Resource      string         `json:"Resource,omitempty"`
		Seconds       interface{}    `json:"Seconds,omitempty"`
		Timestamp     interface{}    `json:"Timestamp,omitempty"`
		Choices       []*Choice      `json:"Choices,omitempty"`
		Default       string         `json:"Default,omitempty"`
		Cause         string         `json:"Cause,omitempty"`
		Error         string         `json:"Error,omitempty"`
		Arguments     interface{}    `json:"Arguments,omitempty"`
		Branches      []*Document    `json:"Branches,omitempty"`
		ItemProcessor *ItemProcessor `json:"ItemProcessor,omitempty"`
		ItemReader    *ItemReader    `json:"ItemReader,omitempty"`
		ResultWriter  *ResultWriter  `json:"ResultWriter,omitempty"`
		ItemBatcher   *ItemBatcher   `json:"ItemBatcher,omitempty"`
		Assign        interface{}    `json:"Assign,omitempty"`
		Output        interface{}    `json:"Output,omitempty"`
		Next          string         `json:"Next,omitempty"`
		End           bool           `json:"End,omitempty"`
		Retry         []*Retry       `json:"Retry,omitempty"`
		Catch         []*Catch       `json:"Catch,omitempty"`
	}

	Choice struct {
		Condition string `json:"Condition"`
		Next      string `json:"Next"`
	}

	// TaskArguments are the lambda invoke arguments
	TaskArguments struct {
		Payload      interface{} `json:"Payload"`
		FunctionName string      `json:"FunctionName"`
	}

	Retry struct {
		ErrorEquals     []string `json:"ErrorEquals"`
		BackoffRate     *float64 `json:"BackoffRate,omitempty"`
		IntervalSeconds *int     `json:"IntervalSeconds,omitempty"`
		MaxAttempts     *int     `json:"MaxAttempts,omitempty"`
		MaxDelaySeconds *int     `json:"MaxDelaySeconds,omitempty"`
	}

	Catch struct {
		ErrorEquals []string `json:"ErrorEquals"`
		Next        string   `json:"Next"`
	}

	// ItemProcessor is the compiled map body
	ItemProcessor struct {
		Document
		ProcessorConfig *ProcessorConfig `json:"ProcessorConfig"`
	}

	ProcessorConfig struct {
		Mode          string `json:"Mode"`
		ExecutionType string `json:"ExecutionType,omitempty"`
	}

	ItemReader struct {
		Resource     string        `json:"Resource"`
		Arguments    *ObjectRef    `json:"Arguments"`
		ReaderConfig *ReaderConfig `json:"ReaderConfig"`
	}

	// ObjectRef locates an object in a bucket
	ObjectRef struct {
		Bucket string `json:"Bucket,omitempty"`
		Key    string `json:"Key,omitempty"`
		Prefix string `json:"Prefix,omitempty"`
	}

	ReaderConfig struct {
		InputType         string   `json:"InputType"`
		CSVDelimiter      string   `json:"CSVDelimiter,omitempty"`
		CSVHeaderLocation string   `json:"CSVHeaderLocation,omitempty"`
		CSVHeaders        []string `json:"CSVHeaders,omitempty"`
		MaxItems          *int     `json:"MaxItems,omitempty"`
	}

	ResultWriter struct {
		Resource     string        `json:"Resource"`
		Parameters   *ObjectRef    `json:"Parameters"`
		WriterConfig *WriterConfig `json:"WriterConfig,omitempty"`
	}

	WriterConfig struct {
		OutputType     string `json:"OutputType,omitempty"`
		Transformation string `json:"Transformation,omitempty"`
	}

	ItemBatcher struct {
		MaxItemsPerBatch int `json:"MaxItemsPerBatch"`
	}
)

// Transitions returns names this state may transition to
func (s *State) Transitions() []string {
	var result []string
	if s.Next != "" {
		result = append(result, s.Next)
	}
	if s.Default != "" {
		result = append(result, s.Default)
	}
	for _, choice := range s.Choices {
		result = append(result, choice.Next)
	}
	for _, c := range s.Catch {
		result = append(result, c.Next)
	}
	return result
}

// HasPolicies returns true when retry or catch policies are attached
func (s *State) HasPolicies() bool {
	return len(s.Retry) > 0 || len(s.Catch) > 0
}
