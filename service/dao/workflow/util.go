package workflow

import (
	"path/filepath"
	"strings"

	"github.com/viant/stepflow/internal/idgen"
)

func generateAnonymousName() string {
	return idgen.Name("workflow")
}

// getWorkflowNameFromURL extracts workflow name from URL (file name without extension)
func getWorkflowNameFromURL(URL string) string {
	if URL == "" {
		return ""
	}
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
