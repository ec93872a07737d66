package engine

import (
	"sync"
	"time"
)

type fakeTask struct {
	s       *fakeScheduler
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{s: s, d: d, f: f}
	s.tasks = append(s.tasks, task)
	return task
}

func (s *fakeScheduler) live() []*fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTask
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeScheduler) last() *fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return nil
	}
	return s.tasks[len(s.tasks)-1]
}

// fireNext runs the oldest live task, the way an expired timer would.
func (s *fakeScheduler) fireNext() bool {
	s.mu.Lock()
	var task *fakeTask
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			task = t
			break
		}
	}
	if task != nil {
		task.fired = true
	}
	s.mu.Unlock()
	if task == nil {
		return false
	}
	task.f()
	return true
}

type sequenceGenerator struct {
	shapes []Shape
	i      int
}

func sequence(shapes ...Shape) *sequenceGenerator {
	return &sequenceGenerator{shapes: shapes}
}

func (g *sequenceGenerator) Next() Piece {
	s := g.shapes[g.i%len(g.shapes)]
	g.i++
	return NewPiece(s, Color(int(s)+1))
}

type recordingListener struct {
	mu      sync.Mutex
	boards  int
	snaps   []Snapshot
	scores  []Stats
	cleared []int
	pauses  []bool
	overs   []Stats
}

func (l *recordingListener) BoardChanged(s Snapshot) {
	l.mu.Lock()
	l.boards++
	l.snaps = append(l.snaps, s)
	l.mu.Unlock()
}

func (l *recordingListener) ScoreChanged(s Stats) {
	l.mu.Lock()
	l.scores = append(l.scores, s)
	l.mu.Unlock()
}

func (l *recordingListener) LinesCleared(n int) {
	l.mu.Lock()
	l.cleared = append(l.cleared, n)
	l.mu.Unlock()
}

func (l *recordingListener) PauseChanged(paused bool) {
	l.mu.Lock()
	l.pauses = append(l.pauses, paused)
	l.mu.Unlock()
}

func (l *recordingListener) GameOver(s Stats) {
	l.mu.Lock()
	l.overs = append(l.overs, s)
	l.mu.Unlock()
}

func newTestEngine(shapes ...Shape) (*Engine, *fakeScheduler, *recordingListener) {
	sched := &fakeScheduler{}
	listener := &recordingListener{}
	e := New(
		WithGenerator(sequence(shapes...)),
		WithScheduler(sched),
		WithListener(listener),
	)
	return e, sched, listener
}

func fillRow(b *Board, y int, c Color, except ...int) {
	skip := map[int]bool{}
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < Cols; x++ {
		if !skip[x] {
			b.Set(x, y, c)
		}
	}
}
