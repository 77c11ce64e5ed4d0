package meta

import (
	"os"
	"regexp"
)

// envExpr matches ${env.KEY} and ${env.KEY:-default}
var envExpr = regexp.MustCompile(`\$\{env\.([A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expandEnvExpr replaces env expressions with the variable value. An unset
// variable yields the default when one is given, otherwise an empty string;
// malformed expressions are kept verbatim.
func expandEnvExpr(value string) string {
	return envExpr.ReplaceAllStringFunc(value, func(expr string) string {
		groups := envExpr.FindStringSubmatch(expr)
		if env, ok := os.LookupEnv(groups[1]); ok && groups[1] != "" {
			return env
		}
		return groups[2]
	})
}
