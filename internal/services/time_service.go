package services

import (
	"time"

	"metronome/internal/domain"
	"metronome/internal/logging"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	clock Clock
}

// NewTimeService creates a new TimeService instance
func NewTimeService(opts ...Option) TimeService {
	return &timeServiceImpl{clock: newOptions(opts).clock}
}

// Now returns the current instant truncated to whole seconds
func (t *timeServiceImpl) Now() time.Time {
	return t.clock().Truncate(time.Second)
}

// ResolveFilter resolves selector against the current instant
func (t *timeServiceImpl) ResolveFilter(selector string) domain.FilterResolution {
	resolution := domain.ResolveFilter(selector, t.Now())
	if !resolution.Recognized {
		logging.Debugf("filter %q not recognized, applying no filter\n", selector)
	} else {
		logging.Debugf("filter %s resolved to cutoff %d\n", resolution.Filter, resolution.Cutoff)
	}
	return resolution
}

// Elapsed returns whole seconds between start and end. A negative span is
// clamped to zero and reported through the bool
func (t *timeServiceImpl) Elapsed(start, end time.Time) (domain.TaskTime, bool) {
	span := end.Truncate(time.Second).Sub(start.Truncate(time.Second))
	if span < 0 {
		return domain.FromSeconds(0), true
	}
	return domain.FromDuration(span), false
}

// CalculateRunningDuration returns the time an active task has been running
func (t *timeServiceImpl) CalculateRunningDuration(start time.Time) domain.TaskTime {
	elapsed, _ := t.Elapsed(start, t.Now())
	return elapsed
}
