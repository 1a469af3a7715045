package timing

import (
	"context"
	"sync"
	"time"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// StageTiming is one completed measurement.
type StageTiming struct {
	Operation string
	Duration  time.Duration
}

// Tracker records how long each pipeline stage took, in completion order.
type Tracker struct {
	timings []StageTiming
	mu      sync.RWMutex
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// StartTiming returns a child of parent carrying the start of operation.
func (tt *Tracker) StartTiming(parent context.Context, operation string) context.Context {
	return context.WithValue(parent, timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: tt.now(),
	})
}

// EndTiming records the duration since the matching StartTiming and returns it.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := tt.now().Sub(timingInfo.StartTime)

	tt.mu.Lock()
	tt.timings = append(tt.timings, StageTiming{Operation: timingInfo.Operation, Duration: duration})
	tt.mu.Unlock()

	return duration
}

func (tt *Tracker) GetAllTimings() []StageTiming {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]StageTiming, len(tt.timings))
	copy(result, tt.timings)
	return result
}

// Reset drops all recorded timings.
func (tt *Tracker) Reset() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.timings = nil
}
