package report

import (
	"log/slog"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

// Report names used for logging and metrics.
const (
	ReportHierarchy     = "hierarchy"
	ReportComponents    = "components"
	ReportAllComponents = "all_components"
	ReportUsers         = "users"
	ReportTimesheet     = "timesheet"
	ReportCalendar      = "calendar"
	ReportStats         = "stats"
)

// Recorder receives the outcome of every report computation.
type Recorder interface {
	ReportFinished(report string, d time.Duration, err error)
}

// Service runs reports against whatever snapshot is current when the call
// starts. A concurrent import never changes the data seen by a running report.
type Service struct {
	pub      *snapshot.Publisher
	recorder Recorder
	logger   *slog.Logger
}

// NewService returns a Service reading from pub. recorder may be nil.
func NewService(pub *snapshot.Publisher, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pub: pub, recorder: recorder, logger: logger}
}

// Publisher returns the publisher the service reads from.
func (svc *Service) Publisher() *snapshot.Publisher { return svc.pub }

func run[T any](svc *Service, name string, fn func(*snapshot.Snapshot) (T, error)) (T, error) {
	var zero T
	s, err := svc.pub.Current()
	if err != nil {
		return zero, err
	}
	start := time.Now()
	res, err := fn(s)
	elapsed := time.Since(start)
	if svc.recorder != nil {
		svc.recorder.ReportFinished(name, elapsed, err)
	}
	if err != nil {
		svc.logger.Warn("report failed", "report", name, "error", err)
		return zero, err
	}
	svc.logger.Debug("report computed", "report", name, "duration", elapsed)
	return res, nil
}

// Hierarchy runs Hierarchy on the current snapshot.
func (svc *Service) Hierarchy(w filter.Window, dims []model.Dimension) (*Node, error) {
	return run(svc, ReportHierarchy, func(s *snapshot.Snapshot) (*Node, error) {
		return Hierarchy(s, w, dims)
	})
}

// Components runs Components on the current snapshot.
func (svc *Service) Components(w filter.Window, d model.Dimension) ([]string, error) {
	return run(svc, ReportComponents, func(s *snapshot.Snapshot) ([]string, error) {
		return Components(s, w, d)
	})
}

// AllComponents runs AllComponents on the current snapshot.
func (svc *Service) AllComponents(w filter.Window) (map[model.Dimension][]string, error) {
	return run(svc, ReportAllComponents, func(s *snapshot.Snapshot) (map[model.Dimension][]string, error) {
		return AllComponents(s, w)
	})
}

// Users lists the users of the current snapshot.
func (svc *Service) Users() ([]model.User, error) {
	return run(svc, ReportUsers, func(s *snapshot.Snapshot) ([]model.User, error) {
		return Users(s), nil
	})
}

// Timesheet runs Timesheet on the current snapshot.
func (svc *Service) Timesheet(w filter.Window) ([]Sheet, error) {
	return run(svc, ReportTimesheet, func(s *snapshot.Snapshot) ([]Sheet, error) {
		return Timesheet(s, w)
	})
}

// Calendar runs Calendar on the current snapshot.
func (svc *Service) Calendar(year, userID int) ([]Day, error) {
	return run(svc, ReportCalendar, func(s *snapshot.Snapshot) ([]Day, error) {
		return Calendar(s, year, userID)
	})
}

// Stats runs Summarize on the current snapshot.
func (svc *Service) Stats(w filter.Window) (*Stats, error) {
	return run(svc, ReportStats, func(s *snapshot.Snapshot) (*Stats, error) {
		return Summarize(s, w)
	})
}
