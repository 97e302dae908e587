package statistic

import (
	"sync"

	"github.com/roylee0704/gron"

	"exportlens/internal/providers"
	"exportlens/internal/statistic/interfaces"
	"exportlens/internal/structures"
)

// Scheduler periodically clears staged uploads that outlived their request,
// e.g. after a crash between staging and cleanup.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Upload.SweepInterval), func() {
		if _, err := s.Sweep(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while sweeping staged uploads: %s", err)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Sweep() (int, error) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	removed, err := s.fileManager.Sweep(s.config.Upload.StaleAfter)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Infof(providers.TypeApp, "Removed %d stale staged uploads from %s", removed, s.fileManager.Dir())
	}
	return removed, nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
	}
}
