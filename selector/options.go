package selector

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/encsel/catalog"
	"github.com/arloliu/encsel/config"
	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/internal/options"
)

// Option configures a Selector.
type Option = options.Option[*Selector]

// WithProperties sets the write-session properties passed to every writer.
// Zero fields take their defaults.
func WithProperties(props encoding.Properties) Option {
	return options.NoError(func(s *Selector) {
		s.props = props.WithDefaults()
	})
}

// WithCatalog replaces the writer constructors.
func WithCatalog(c catalog.Catalog) Option {
	return options.New(func(s *Selector) error {
		if err := c.Validate(); err != nil {
			return err
		}
		s.catalog = c

		return nil
	})
}

// WithSource sets where NewValuesWriter reads the policy from.
func WithSource(src config.Source) Option {
	return options.New(func(s *Selector) error {
		if src == nil {
			return fmt.Errorf("%w: nil policy source", errs.ErrInvalidConfiguration)
		}
		s.source = src

		return nil
	})
}

// WithLogger sets the logger for selection and fallback events.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// WithMetrics enables selection and fallback counters.
func WithMetrics(m *Metrics) Option {
	return options.NoError(func(s *Selector) {
		s.metrics = m
	})
}
