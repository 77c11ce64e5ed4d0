package stepflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/dao/document"
)

// Drift describes how a stored definition differs from a fresh compilation
type Drift struct {
	Workflow string
	URL      string
	// Missing is set when no definition is stored at URL
	Missing bool
	// Diff is a unified diff from the stored to the compiled definition
	Diff string
}

// HasChanges returns true if the stored definition is missing or outdated
func (d *Drift) HasChanges() bool {
	return d.Missing || d.Diff != ""
}

// Check compiles the workflow at source and compares it with the definition stored at destination
func (s *Service) Check(ctx context.Context, source, destination string) (*Drift, error) {
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
	drift := &Drift{Workflow: aWorkflow.Name, URL: s.documentDAO.URL(destination)}
	stored, err := s.documentDAO.Download(ctx, destination)
	if errors.Is(err, dao.ErrNotFound) {
		drift.Missing = true
		return drift, nil
	}
	if err != nil {
		return nil, err
	}
	compiled, err := document.Encode(definition)
	if err != nil {
		return nil, err
	}
	if drift.Diff, err = diff(stored, compiled, drift.URL); err != nil {
		return nil, err
	}
	if drift.HasChanges() {
		s.logger.Warn("definition drift", "workflow", aWorkflow.Name, "URL", drift.URL)
	}
	return drift, nil
}

// diff compares canonical JSON forms, so key order and indentation are ignored
func diff(stored, compiled []byte, storedURL string) (string, error) {
	from, err := canonical(stored)
	if err != nil {
		return "", fmt.Errorf("failed to decode stored definition %s: %w", storedURL, err)
	}
	to, err := canonical(compiled)
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: storedURL,
		ToFile:   "compiled",
		Context:  3,
	})
}

func canonical(data []byte) (string, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return "", err
	}
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
