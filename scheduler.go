package fireworks

import "container/heap"

// event is deferred work keyed by simulation time in milliseconds.
type event struct {
	due float64
	seq uint64
	fn  func() error
}

// eventQueue is a min-heap ordered by due time, then by insertion order so
// events with equal delays run in the order they were scheduled.
type eventQueue []event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = event{}
	*q = old[:n-1]
	return e
}

// scheduler runs one-shot events on the simulation clock. Events are not
// cancellable.
type scheduler struct {
	queue eventQueue
	seq   uint64
}

// at schedules fn to run once the clock reaches due.
func (s *scheduler) at(due float64, fn func() error) {
	s.seq++
	heap.Push(&s.queue, event{due: due, seq: s.seq, fn: fn})
}

// run executes every event due at or before now, including events scheduled
// by those events when they are already due. The first error stops the run;
// remaining events stay queued.
func (s *scheduler) run(now float64) error {
	for len(s.queue) > 0 && s.queue[0].due <= now {
		e := heap.Pop(&s.queue).(event)
		if err := e.fn(); err != nil {
			return err
		}
	}
	return nil
}

// pending returns the number of queued events.
func (s *scheduler) pending() int {
	return len(s.queue)
}

func (s *scheduler) reset() {
	s.queue = s.queue[:0]
}
