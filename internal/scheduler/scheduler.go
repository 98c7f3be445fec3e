package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Snapshotter copies the current data file into a backup directory.
type Snapshotter interface {
	Snapshot(dir string) (string, error)
}

// Scheduler manages the periodic data-file snapshot job.
type Scheduler struct {
	cron     *cron.Cron
	snap     Snapshotter
	schedule string
	dir      string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that snapshots on the given cron schedule.
func NewScheduler(schedule, dir string, snap Snapshotter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		snap:     snap,
		schedule: schedule,
		dir:      dir,
		logger:   logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.takeSnapshot); err != nil {
		s.logger.Error("failed to schedule snapshot job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) takeSnapshot() {
	path, err := s.snap.Snapshot(s.dir)
	if err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("snapshot written", zap.String("path", path))
}
