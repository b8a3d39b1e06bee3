package repository

import "github.com/okian/pointchart/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used to report skipped files.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStrict makes Load fail on the first invalid file instead of skipping it.
func WithStrict(strict bool) Option {
	return func(s *FileStore) {
		s.strict = strict
	}
}
