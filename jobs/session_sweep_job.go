package jobs

import (
	"time"

	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/robfig/cron/v3"
)

type SessionSweeper interface {
	Sweep(ttl time.Duration) int
	Len() int
}

// SweepIdleSessions returns the cron job that evicts sessions idle for longer
// than ttl.
func SweepIdleSessions(store SessionSweeper, ttl time.Duration, log *logger.Logger) func() {
	if log == nil {
		log = logger.Nop()
	}
	return func() {
		removed := store.Sweep(ttl)
		if removed == 0 {
			log.Debug("no idle sessions found", "active", store.Len())
			return
		}
		log.Info("evicted idle sessions", "removed", removed, "active", store.Len())
	}
}

func ScheduleSessionSweep(c *cron.Cron, spec string, store SessionSweeper, ttl time.Duration, log *logger.Logger) (cron.EntryID, error) {
	return c.AddFunc(spec, SweepIdleSessions(store, ttl, log))
}
