package engine

import "time"

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on a goroutine of its choosing.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Interval is the fall cadence for a level: one second divided by the level.
func Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	return time.Second / time.Duration(level)
}

// startLoop begins a fresh schedule. Any firing that belongs to an earlier schedule
// is discarded when it runs.
func (e *Engine) startLoop() {
	e.stopLoop()
	e.scheduleTick()
}

func (e *Engine) stopLoop() {
	e.loopGen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) scheduleTick() {
	gen := e.loopGen
	e.timer = e.sched.AfterFunc(Interval(e.level), func() {
		e.fire(gen)
	})
}

func (e *Engine) fire(gen uint64) {
	e.exec(func() {
		if gen != e.loopGen || !e.running || e.over || e.paused {
			return
		}
		e.timer = nil
		e.tick()
		if e.running && !e.over && !e.paused {
			e.scheduleTick()
		}
	})
}
