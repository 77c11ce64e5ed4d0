// Package model contains the in-memory representation of workflow sources
// consumed by the compiler.
//
// A workflow is typically loaded from a YAML or JSON document into the
// structures defined in the `graph` and `param` sub-packages; the compiled
// state-machine document lives in `asl`.
package model
