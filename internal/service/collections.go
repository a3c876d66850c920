// Package service provides the business logic layer (use cases).
// CollectionService generates PIX BR Codes and CNAB remittance files.
package service

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/cnab"
	"github.com/boddenberg/pj-collections-go/internal/domain"
	"github.com/boddenberg/pj-collections-go/internal/infra/observability"
	"github.com/boddenberg/pj-collections-go/internal/infra/resilience"
	"github.com/boddenberg/pj-collections-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var collectionTracer = otel.Tracer("service/collections")

// CollectionService orchestrates BR Code and remittance generation.
type CollectionService struct {
	cache    port.Cache[*domain.BRCode]
	archiver port.Archiver
	layouts  map[string]cnab.Layout
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	logger   *zap.Logger

	concurrency   int
	remittanceDir string
	eol           string
	now           func() time.Time
}

// Option configures a CollectionService.
type Option func(*CollectionService)

// WithLayout registers a bank layout under its Name().
func WithLayout(l cnab.Layout) Option {
	return func(s *CollectionService) { s.layouts[l.Name()] = l }
}

// WithArchiver keeps a copy of every saved remittance file.
func WithArchiver(a port.Archiver) Option {
	return func(s *CollectionService) { s.archiver = a }
}

// WithRemittanceDir sets where remittance files are written and the
// record terminator they use.
func WithRemittanceDir(dir, eol string) Option {
	return func(s *CollectionService) {
		s.remittanceDir = dir
		s.eol = eol
	}
}

// WithConcurrency bounds batch BR Code generation and concurrent file
// writes.
func WithConcurrency(n int) Option {
	return func(s *CollectionService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewCollectionService creates a new collection service.
func NewCollectionService(cache port.Cache[*domain.BRCode], metrics *observability.Metrics, logger *zap.Logger, opts ...Option) *CollectionService {
	s := &CollectionService{
		cache:         cache,
		layouts:       make(map[string]cnab.Layout),
		metrics:       metrics,
		logger:        logger,
		concurrency:   4,
		remittanceDir: "./remessas",
		eol:           cnab.DefaultEOL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bulkhead = resilience.NewBulkhead(s.concurrency)
	return s
}

// Layouts returns the sorted names of the registered bank layouts.
func (s *CollectionService) Layouts() []string {
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CheckRemittanceDir verifies that remittance files can be written.
func (s *CollectionService) CheckRemittanceDir() error {
	if err := os.MkdirAll(s.remittanceDir, 0o755); err != nil {
		return fmt.Errorf("remittance dir: %w", err)
	}
	f, err := os.CreateTemp(s.remittanceDir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("remittance dir not writable: %w", err)
	}
	f.Close()
	return os.Remove(f.Name())
}
