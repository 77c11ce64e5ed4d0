package stepflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/service/compiler"
	"github.com/viant/stepflow/service/dao/document"
	"github.com/viant/stepflow/service/dao/workflow"
	"github.com/viant/stepflow/service/meta"
	"github.com/viant/stepflow/service/target"
	"github.com/viant/stepflow/tracing"
)

// Service loads workflow sources, compiles them and stores compiled definitions
type Service struct {
	config        *Config
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	fs            afs.Service
	workflowDAO   *workflow.Service
	documentDAO   *document.Service
	resolver      target.Resolver
	logger        *slog.Logger
	initErr       error
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil && s.initErr == nil {
		s.initErr = err
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.metaService == nil {
		s.metaService = meta.New(s.fs, s.metaBaseURL, s.metaFsOptions...)
	}
	s.workflowDAO = workflow.New(workflow.WithMetaService(s.metaService))
	s.documentDAO = document.New(s.config.Output.BaseURL, s.fs)
	if s.resolver == nil {
		s.resolver = s.config.Resolver()
	}
	if tracingConfig := s.config.Tracing; tracingConfig.Enabled && s.initErr == nil {
		s.initErr = tracing.Init(tracingConfig.ServiceName, tracingConfig.ServiceVersion, tracingConfig.OutputFile)
	}
}

// Config returns service configuration
func (s *Service) Config() *Config {
	return s.config
}

// Definitions returns the compiled definition store
func (s *Service) Definitions() *document.Service {
	return s.documentDAO
}

// LoadWorkflow loads and validates a workflow source; results are cached by location
func (s *Service) LoadWorkflow(ctx context.Context, location string) (*model.Workflow, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.workflowDAO.Load(ctx, location)
}

// RefreshWorkflow discards the cached workflow so that the next load reads the source again
func (s *Service) RefreshWorkflow(location string) {
	s.workflowDAO.Refresh(location)
}

// UpsertWorkflow parses the supplied YAML and caches it under location
func (s *Service) UpsertWorkflow(location string, data []byte) (*model.Workflow, error) {
	return s.workflowDAO.Upsert(location, data)
}

// Compile compiles a workflow into a state machine definition
func (s *Service) Compile(ctx context.Context, workflow *model.Workflow) (*asl.Definition, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	if workflow == nil {
		return nil, fmt.Errorf("workflow was nil")
	}
	aCompiler := compiler.New(&workflow.Flow, s.resolver, compiler.WithLogger(s.logger))
	doc, err := aCompiler.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile workflow %s: %w", workflow.Name, err)
	}
	executionType := workflow.ExecutionType
	if executionType == "" {
		executionType = asl.ExecutionTypeDefault
	}
	s.logger.Info("compiled workflow", "workflow", workflow.Name, "states", len(doc.States), "executionType", strings.ToUpper(executionType))
	return asl.NewDefinition(doc, executionType), nil
}

// CompileLocation loads and compiles the workflow at location
func (s *Service) CompileLocation(ctx context.Context, location string) (*asl.Definition, error) {
	aWorkflow, err := s.LoadWorkflow(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.Compile(ctx, aWorkflow)
}

// Build compiles the workflow at source and saves the definition to destination;
// an empty destination uses the workflow name under the configured output base URL
func (s *Service) Build(ctx context.Context, source, destination string) (*asl.Definition, error) {
	aWorkflow, err := s.LoadWorkflow(ctx, source)
	if err != nil {
		return nil, err
	}
	definition, err := s.Compile(ctx, aWorkflow)
	if err != nil {
		return nil, err
	}
	if destination == "" {
		destination = aWorkflow.Name
	}
	if err = s.documentDAO.Save(ctx, destination, definition); err != nil {
		return nil, err
	}
	s.logger.Info("saved definition", "workflow", aWorkflow.Name, "URL", s.documentDAO.URL(destination))
	return definition, nil
}

// New creates a compiler service
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
