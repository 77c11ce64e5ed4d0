// Package workflow loads workflow sources from YAML or JSON.
package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/stepflow/internal/yml"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/meta"
	"gopkg.in/yaml.v3"
)

type Service struct {
	metaService *meta.Service
	defaultExt  string
	mux         sync.RWMutex
	cache       map[string]*model.Workflow
}

// Refresh discards a cached workflow; the next Load reads the source again
func (s *Service) Refresh(location string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.cache, s.location(location))
}

// Upsert parses the supplied YAML and caches the workflow under location
func (s *Service) Upsert(location string, data []byte) (*model.Workflow, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", location, err)
	}
	URL := s.location(location)
	workflow, err := s.ParseWorkflow(URL, &node)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.cache[URL] = workflow
	return workflow, nil
}

func (s *Service) location(URL string) string {
	if filepath.Ext(URL) == "" {
		URL += s.defaultExt
	}
	return URL
}

// DecodeYAML decodes a workflow from YAML
func (s *Service) DecodeYAML(encoded []byte) (*model.Workflow, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.ParseWorkflow("", &node)
}

// Load loads a workflow from YAML or JSON at the specified URL; parsed workflows are cached by URL
func (s *Service) Load(ctx context.Context, URL string) (*model.Workflow, error) {
	URL = s.location(URL)
	s.mux.RLock()
	cached, ok := s.cache[URL]
	s.mux.RUnlock()
	if ok {
		return cached, nil
	}
	var node yaml.Node
	if err := s.metaService.Load(ctx, URL, &node); err != nil {
		return nil, fmt.Errorf("failed to load workflow from %s: %w", URL, err)
	}
	workflow, err := s.ParseWorkflow(URL, &node)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.cache[URL] = workflow
	return workflow, nil
}

// ParseWorkflow converts a decoded node into a validated workflow
func (s *Service) ParseWorkflow(URL string, node *yaml.Node) (*model.Workflow, error) {
	workflow := model.NewWorkflow(getWorkflowNameFromURL(URL))
	workflow.Source = &model.Source{URL: URL}
	if err := s.parseWorkflow((*yml.Node)(node).Root(), workflow); err != nil {
		return nil, fmt.Errorf("failed to parse workflow from %s: %w", URL, err)
	}
	if workflow.Name == "" {
		workflow.Name = generateAnonymousName()
	}
	if issues := workflow.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid workflow %s: %w", workflow.Name, issues[0])
	}
	return workflow, nil
}

func (s *Service) parseWorkflow(node *yml.Node, workflow *model.Workflow) error {
	if !node.IsMapping() {
		return fmt.Errorf("%w: workflow should be a mapping", ErrInvalidNode)
	}
	if err := parseFlow(node, &workflow.Flow); err != nil {
		return err
	}
	return node.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "description":
			workflow.Description = valueNode.Value
		case "version":
			workflow.Version = valueNode.Value
		case "executiontype":
			workflow.ExecutionType = valueNode.Value
		}
		return nil
	})
}

// New creates a new workflow service instance
func New(opts ...Option) *Service {
	ret := &Service{
		metaService: meta.New(afs.New(), ""),
		defaultExt:  ".yaml",
		cache:       map[string]*model.Workflow{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
