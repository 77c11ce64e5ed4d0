package workflow

import "github.com/viant/stepflow/service/meta"

type Option func(*Service)

// WithMetaService sets the meta service
func WithMetaService(meta *meta.Service) Option {
	return func(s *Service) {
		s.metaService = meta
	}
}

// WithDefaultExtension sets the extension appended to locations without one
func WithDefaultExtension(ext string) Option {
	return func(s *Service) {
		s.defaultExt = ext
	}
}
