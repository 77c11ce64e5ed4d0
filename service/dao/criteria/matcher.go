package criteria

import (
	"strings"

	"github.com/viant/stepflow/service/dao"
)

const (
	// Name matches an exact name or any of the listed names
	Name = "Name"
	// Prefix matches names starting with the value
	Prefix = "Prefix"
)

// MatchName returns true if name satisfies every supplied parameter; unknown parameters are ignored
func MatchName(name string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		var match func(candidate string) bool
		switch parameter.Name {
		case Name:
			match = func(candidate string) bool { return name == candidate }
		case Prefix:
			match = func(candidate string) bool { return strings.HasPrefix(name, candidate) }
		default:
			continue
		}
		if !matchAny(parameter.Value, match) {
			return false
		}
	}
	return true
}

func matchAny(value interface{}, match func(string) bool) bool {
	switch actual := value.(type) {
	case string:
		return match(actual)
	case []string:
		for _, candidate := range actual {
			if match(candidate) {
				return true
			}
		}
	}
	return false
}
