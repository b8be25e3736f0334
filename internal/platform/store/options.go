package store

import "autofax/internal/platform/logger"

// Option mutates Store during Open, a returned error aborts Open
type Option func(*Store) error

// WithLogger sets the logger the store and its tracers write to
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithAppName sets the postgres application_name, empty keeps the pg default
func WithAppName(name string) Option {
	return func(s *Store) error {
		s.appName = name
		return nil
	}
}
