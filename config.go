package stepflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/service/target"
)

// Config is a serialisable representation of the compiler configuration. It can
// be populated from JSON or YAML; zero-value nested fields take their defaults.
type Config struct {
	Target  TargetConfig  `json:"target" yaml:"target"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// TargetConfig controls how task steps map to invocation targets
type TargetConfig struct {
	// FunctionNameFormat supports {task} and {workflow} placeholders
	FunctionNameFormat string `json:"functionNameFormat,omitempty" yaml:"functionNameFormat,omitempty"`
	// Functions maps task or workflow/task names to explicit function names
	Functions map[string]string `json:"functions,omitempty" yaml:"functions,omitempty"`
}

// OutputConfig controls where compiled definitions are stored
type OutputConfig struct {
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		Target:  TargetConfig{FunctionNameFormat: target.DefaultFormat},
		Tracing: TracingConfig{ServiceName: "stepflow"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if format := c.Target.FunctionNameFormat; format != "" && !strings.Contains(format, target.TaskPlaceholder) {
		return fmt.Errorf("target.functionNameFormat must contain %s: %q", target.TaskPlaceholder, format)
	}
	for task, functionName := range c.Target.Functions {
		if task == "" || functionName == "" {
			return fmt.Errorf("target.functions entries must be non-empty: %q: %q", task, functionName)
		}
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName must be set when tracing is enabled")
	}
	return nil
}

// Resolver returns the task target resolver described by the configuration
func (c *Config) Resolver() target.Resolver {
	naming := target.NewNaming(c.Target.FunctionNameFormat)
	if len(c.Target.Functions) == 0 {
		return naming
	}
	return target.NewRegistry(c.Target.Functions, naming)
}

// LoadConfig reads YAML or JSON configuration over DefaultConfig and validates it
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
