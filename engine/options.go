package engine

import (
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Render() and ApplyFilters()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	subjects schema.Vocabulary
	reliefs  schema.Vocabulary
}

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVocabularies replaces the built-in subject and relief vocabularies.
func WithVocabularies(subjects, reliefs schema.Vocabulary) Option {
	return func(c *config) {
		c.subjects = subjects
		c.reliefs = reliefs
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		logger:   zap.NewNop(),
		subjects: schema.Subjects(),
		reliefs:  schema.Reliefs(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
