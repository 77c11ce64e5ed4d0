// Package document persists compiled state machine definitions as JSON through afs.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/dao/criteria"
)

const ext = ".json"

// Service stores definitions under a base URL, one <name>.json object each
type Service struct {
	baseURL string
	fs      afs.Service
}

// Ensure Service implements dao.Service
var _ dao.Service[string, asl.Definition] = (*Service)(nil)

// URL returns the object URL for a definition name; absolute URLs are returned unchanged
func (s *Service) URL(name string) string {
	if !url.IsRelative(name) || s.baseURL == "" {
		return name
	}
	if path.Ext(name) == "" {
		name += ext
	}
	return url.Join(s.baseURL, name)
}

// Encode returns the indented JSON form of a definition
func Encode(definition *asl.Definition) ([]byte, error) {
	if definition == nil {
		return nil, dao.ErrNilEntity
	}
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(definition); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	return buffer.Bytes(), nil
}

// Save writes the definition
func (s *Service) Save(ctx context.Context, name string, definition *asl.Definition) error {
	if name == "" {
		return dao.ErrInvalidID
	}
	data, err := Encode(definition)
	if err != nil {
		return err
	}
	URL := s.URL(name)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save definition to %s: %w", URL, err)
	}
	return nil
}

// Download returns the stored definition content
func (s *Service) Download(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, dao.ErrInvalidID
	}
	URL := s.URL(name)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if definition exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", dao.ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", URL, err)
	}
	return data, nil
}

// Load reads a stored definition. Task arguments decode as plain maps.
func (s *Service) Load(ctx context.Context, name string) (*asl.Definition, error) {
	data, err := s.Download(ctx, name)
	if err != nil {
		return nil, err
	}
	definition := &asl.Definition{}
	if err := json.Unmarshal(data, definition); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definition %s: %w", name, err)
	}
	return definition, nil
}

// Delete removes a stored definition
func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return dao.ErrInvalidID
	}
	URL := s.URL(name)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if definition exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", dao.ErrNotFound, URL)
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete definition %s: %w", URL, err)
	}
	return nil
}

// List returns sorted names of stored definitions matching criteria.Name / criteria.Prefix parameters
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]string, error) {
	if exists, _ := s.fs.Exists(ctx, s.baseURL); !exists {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(object.Name(), ext)
		if criteria.MatchName(name, parameters) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// New creates a definition store rooted at baseURL (any afs URL: file, mem, s3, gs)
func New(baseURL string, fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if baseURL != "" {
		baseURL = url.Normalize(baseURL, file.Scheme)
	}
	return &Service{baseURL: baseURL, fs: fs}
}
