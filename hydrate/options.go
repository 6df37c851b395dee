package hydrate

import (
	"operation-history/node"
	"operation-history/primitive"
)

type Option func(*settings)

type settings struct {
	registry *node.Registry
	allowed  primitive.CategoryEnum
	strict   bool
}

func newSettings(opts []Option) settings {
	s := settings{
		registry: node.DefaultRegistry(),
		allowed:  primitive.CategoryAll,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Strict rejects lossy coercions and shape mismatches instead of repairing them.
func Strict() Option {
	return func(s *settings) {
		s.strict = true
	}
}

// WithStrict is Strict driven by a flag, for configuration-driven callers.
func WithStrict(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

// WithCategories limits scalar conversions to the given categories.
// Conversions between identical kinds are always allowed.
func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(s *settings) {
		s.allowed = allowed
	}
}

// WithRegistry uses reg for descriptor lookups instead of the process-wide registry.
func WithRegistry(reg *node.Registry) Option {
	return func(s *settings) {
		if reg != nil {
			s.registry = reg
		}
	}
}
