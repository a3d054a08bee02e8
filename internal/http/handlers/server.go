package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

// Importer runs uploaded files through the ingestion pipeline.
type Importer interface {
	Import(ctx context.Context, filename string, data []byte) (ingest.Report, error)
	Preview(ctx context.Context, filename string, data []byte) (ingest.Preview, error)
}

// ImportHistory lists recent import reports, newest first.
type ImportHistory interface {
	RecentImports(ctx context.Context, limit int64) ([]ingest.Report, error)
}

// Pinger is a dependency probed by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, such as (*sql.DB).PingContext, to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const defaultMaxUploadBytes = 10 << 20

// Server holds the dependencies shared by all handlers.
type Server struct {
	products        repo.ProductStore
	metrics         repo.MetricsRepository
	importer        Importer
	history         ImportHistory
	checks          map[string]Pinger
	templateAliases map[string][]string
	maxUploadBytes  int64
	log             *logrus.Entry
}

type Option func(*Server)

func WithImportHistory(h ImportHistory) Option {
	return func(s *Server) { s.history = h }
}

func WithHealthCheck(name string, p Pinger) Option {
	return func(s *Server) { s.checks[name] = p }
}

func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithTemplateAliases lists accepted alternative headers in the import template.
func WithTemplateAliases(aliases map[string][]string) Option {
	return func(s *Server) { s.templateAliases = aliases }
}

func NewServer(products repo.ProductStore, metrics repo.MetricsRepository, importer Importer, log *logrus.Entry, opts ...Option) *Server {
	s := &Server{
		products:       products,
		metrics:        metrics,
		importer:       importer,
		checks:         map[string]Pinger{},
		maxUploadBytes: defaultMaxUploadBytes,
		log:            log.WithField("component", "http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
