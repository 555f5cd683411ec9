package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/ingest"
)

// Recorder receives the outcome of every import attempt.
type Recorder interface {
	ImportFinished(d time.Duration, timeLogs int, at time.Time, err error)
}

// Publisher owns the currently visible snapshot. Readers load it with one
// atomic read and keep that reference for the whole request; imports run one
// at a time and swap the pointer only after a snapshot is fully built.
type Publisher struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex

	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for import events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithRecorder reports import outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(p *Publisher) { p.recorder = r }
}

// WithClock overrides the clock stamping ImportedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// NewPublisher returns a Publisher with no snapshot loaded.
func NewPublisher(opts ...Option) *Publisher {
	p := &Publisher{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns the published snapshot or ErrNoSnapshot.
func (p *Publisher) Current() (*Snapshot, error) {
	s := p.current.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// HasData reports whether any snapshot has been published.
func (p *Publisher) HasData() bool {
	return p.current.Load() != nil
}

// Publish makes s the current snapshot.
func (p *Publisher) Publish(s *Snapshot) {
	p.current.Store(s)
}

// Import builds a snapshot from the export returned by load and publishes
// it. On any failure the previously published snapshot stays current.
func (p *Publisher) Import(ctx context.Context, source string, load func() (*ingest.Export, error)) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.now()
	p.logger.Info("import started", "source", source)

	s, err := p.build(ctx, source, load)
	elapsed := p.now().Sub(start)
	if err != nil {
		p.logger.Error("import failed", "source", source, "error", err, "duration", elapsed)
		p.record(elapsed, 0, time.Time{}, err)
		return nil, err
	}

	p.Publish(s)
	p.record(elapsed, len(s.TimeLogs()), s.ImportedAt(), nil)
	p.logger.Info("import finished",
		"source", source,
		"timelogs", len(s.TimeLogs()),
		"users", s.Counts()[ingest.TableUsers],
		"issues", s.Counts()[ingest.TableIssues],
		"duration", elapsed,
	)
	return s, nil
}

func (p *Publisher) build(ctx context.Context, source string, load func() (*ingest.Export, error)) (*Snapshot, error) {
	exp, err := load()
	if err != nil {
		return nil, err
	}
	idx, err := ingest.BuildIndex(exp)
	if err != nil {
		return nil, err
	}
	s, err := Build(idx, source, p.now())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import of %s abandoned: %w", source, err)
	}
	return s, nil
}

func (p *Publisher) record(d time.Duration, timeLogs int, at time.Time, err error) {
	if p.recorder != nil {
		p.recorder.ImportFinished(d, timeLogs, at, err)
	}
}

// ImportFile imports the archive at path.
func (p *Publisher) ImportFile(ctx context.Context, path string) (*Snapshot, error) {
	return p.Import(ctx, path, func() (*ingest.Export, error) {
		return ingest.ReadArchive(path)
	})
}

// ImportBytes imports an archive held in memory, such as an upload.
func (p *Publisher) ImportBytes(ctx context.Context, name string, data []byte) (*Snapshot, error) {
	return p.Import(ctx, name, func() (*ingest.Export, error) {
		return ingest.ReadArchiveBytes(data)
	})
}
