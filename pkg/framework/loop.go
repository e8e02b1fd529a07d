package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the loop interval when none is set.
const DefaultInterval = 100 * time.Millisecond

// Loop invokes controllers periodically and runs the Runnables
// they depend on.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	iteration uint64
	wakeUpCh  chan struct{}
	initOnce  sync.Once
}

type loopIteration struct {
	loop          *Loop
	ctx           context.Context
	time          time.Time
	iteration     uint64
	priorityLevel int
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval}
}

// AddController registers controllers to the loop. Controllers which are
// also Runnable are started when the loop runs.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnables started along with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// TriggerNext schedules an iteration immediately.
func (l *Loop) TriggerNext() {
	l.init()
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) init() {
	l.initOnce.Do(func() {
		l.wakeUpCh = make(chan struct{}, 1)
	})
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	l.init()

	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	errCh := make(chan error, 1)
	go func() {
		errCh <- runner.Wait()
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if errCh != nil {
				runner.Stop()
				<-errCh
			}
			return ctx.Err()
		case err := <-errCh:
			if err == nil {
				// all runnables completed, keep ticking controllers.
				errCh = nil
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		case <-ticker.C:
			l.runIteration(ctx)
		case <-l.wakeUpCh:
			l.runIteration(ctx)
		}
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	l.iteration++
	iter := &loopIteration{loop: l, ctx: ctx, time: time.Now(), iteration: l.iteration}
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		for _, ctl := range l.controllers[i] {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) Iteration() uint64 {
	return t.iteration
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}

func (t *loopIteration) TriggerNext() {
	t.loop.TriggerNext()
}
