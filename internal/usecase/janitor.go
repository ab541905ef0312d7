package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	xlogger "CandleCache/pkg/logger"
	"CandleCache/pkg/util"
)

// Janitor physically deletes expired file-store entries out-of-band. Expiry
// itself is logical (date-keyed reads); the janitor only reclaims disk.
type Janitor struct {
	dir       string
	retention int // days
	schedule  string
	logger    *xlogger.Logger
	cron      *cron.Cron
}

// NewJanitor creates a janitor sweeping dir on the given cron schedule,
// removing entries whose day is more than retentionDays in the past.
func NewJanitor(dir, schedule string, retentionDays int, logger *xlogger.Logger) *Janitor {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	if schedule == "" {
		schedule = "30 3 * * *"
	}
	return &Janitor{
		dir:       dir,
		retention: retentionDays,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start schedules periodic sweeps. Returns an error for a bad schedule.
func (j *Janitor) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() {
		removed, err := j.Sweep(time.Now())
		if err != nil {
			j.logger.Warn("janitor sweep failed", xlogger.Error(err))
			return
		}
		if removed > 0 {
			j.logger.Info("janitor removed expired entries", xlogger.Int("count", removed))
		}
	}); err != nil {
		return err
	}
	c.Start()
	j.cron = c
	return nil
}

// Stop halts scheduling; a running sweep finishes.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// Sweep removes expired entries once and reports how many were deleted.
func (j *Janitor) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return 0, err
	}
	cutoff := now.AddDate(0, 0, -j.retention)

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		day, ok := entryDay(e.Name())
		if !ok {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(j.dir, e.Name())); err != nil {
				j.logger.Warn("janitor remove failed", xlogger.String("file", e.Name()), xlogger.Error(err))
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// entryDay extracts the day from "<symbol>-<YYYY-MM-DD>.json" file names.
func entryDay(name string) (time.Time, bool) {
	if !strings.HasSuffix(name, ".json") {
		return time.Time{}, false
	}
	base := strings.TrimSuffix(name, ".json")
	if len(base) < len(util.DayLayout) {
		return time.Time{}, false
	}
	return util.ParseDay(base[len(base)-len(util.DayLayout):])
}
