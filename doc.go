// Package stepflow compiles declarative workflow sources into JSONata state
// machine definitions.
//
// A workflow declares named task steps and links them with transitions. A
// transition either names another task or embeds an inline control state
// (wait, choice, fail, succeed, pass, parallel or map). The compiler flattens
// the graph into a single map of uniquely named states:
//
//	srv := stepflow.New(stepflow.WithMetaBaseURL("file:///etc/workflows"))
//	wf, _ := srv.LoadWorkflow(ctx, "orders.yaml")
//	definition, _ := srv.Compile(ctx, wf)
//
// Build stores the compiled definition through afs and Check reports drift
// between a stored definition and a fresh compilation.
package stepflow
