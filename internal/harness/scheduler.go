// Package harness provides the in-process, discrete-event simulation
// driver used to run the section scenarios: a Scheduler adapted from a
// rippled-style simulation framework, and a SimNetwork that feeds it an
// asynchronous, reorderable, possibly-duplicating channel between
// node.Node instances. The network is assumed non-lossy for liveness (spec
// §1/§6): every canned scenario must run with drop probability 0. Drop is
// still exposed as a knob, for exploring beyond what the scenarios assert,
// but it is not part of the modeled contract — no retries or timeouts
// exist at this layer or above it.
package harness

import (
	"container/heap"
	"sync"
	"time"
)

// SimTime is simulated time as a duration from epoch.
type SimTime time.Duration

// SimDuration is an alias for time.Duration used in simulation.
type SimDuration = time.Duration

type event struct {
	when    SimTime
	seq     uint64
	handler func()
	index   int
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].when == h[j].when {
		return h[i].seq < h[j].seq
	}
	return h[i].when < h[j].when
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x interface{}) {
	n := len(*h)
	e := x.(*event)
	e.index = n
	*h = append(*h, e)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[0 : n-1]
	return e
}

// Scheduler is a discrete event scheduler over simulated time: events run
// in time order with no real delay between them.
type Scheduler struct {
	mu      sync.Mutex
	now     SimTime
	events  eventHeap
	nextSeq uint64
}

// NewScheduler returns a Scheduler starting at time 0.
func NewScheduler() *Scheduler {
	s := &Scheduler{events: make(eventHeap, 0)}
	heap.Init(&s.events)
	return s
}

// Now returns the current simulated time.
func (s *Scheduler) Now() SimTime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// In schedules handler to run after duration d.
func (s *Scheduler) In(d SimDuration, handler func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &event{when: s.now + SimTime(d), seq: s.nextSeq, handler: handler}
	s.nextSeq++
	heap.Push(&s.events, e)
}

// StepOne processes a single event if one is pending. Returns false if
// the queue is empty.
func (s *Scheduler) StepOne() bool {
	s.mu.Lock()
	if s.events.Len() == 0 {
		s.mu.Unlock()
		return false
	}
	e := heap.Pop(&s.events).(*event)
	s.now = e.when
	handler := e.handler
	s.mu.Unlock()

	handler()
	return true
}

// StepWhile processes events while pred returns true, or until the queue
// is empty. Returns the number of events processed.
func (s *Scheduler) StepWhile(pred func() bool) int {
	count := 0
	for pred() {
		if !s.StepOne() {
			break
		}
		count++
	}
	return count
}

// StepAll drains every pending event, including ones scheduled by events
// that ran during this call. Returns the number of events processed.
// maxSteps bounds runaway message-amplification bugs from hanging a
// scenario forever.
func (s *Scheduler) StepAll(maxSteps int) int {
	count := 0
	for count < maxSteps {
		if !s.StepOne() {
			break
		}
		count++
	}
	return count
}

// Empty reports whether there are no pending events.
func (s *Scheduler) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Len() == 0
}

// PendingCount returns the number of pending events.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Len()
}
