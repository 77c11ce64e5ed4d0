// Package tracing wraps OpenTelemetry so that compilation steps can be traced
// without the rest of the code base importing the upstream packages.  Spans
// are no-ops until Init or InitWithExporter installs a provider.
package tracing
