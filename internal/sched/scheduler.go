// internal/sched/scheduler.go

package sched

import (
	"richards/internal/logx"
)

// Scheduler owns one simulation run: the registry, the candidate list and
// the counters that form its checksum.
type Scheduler struct {
	registry Registry
	order    []*Task // candidate list, most recently created first
	current  *Task
	active   TaskID // id of the task being dispatched

	delivered int
	held      int
	steps     int

	log     logx.Logger
	observe Observer
}

// Option configures a Scheduler at build time.
type Option func(s *Scheduler)

// WithLogger sets the logger used to report lookup failures.
func WithLogger(log logx.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithObserver registers a callback for every scheduler event.
func WithObserver(fn Observer) Option {
	return func(s *Scheduler) { s.observe = fn }
}

// Checksum is the observable result of a run.
type Checksum struct {
	Delivered int
	Held      int
}

// Result is a Checksum plus the number of dispatches it took.
type Result struct {
	Checksum
	Steps int
}

// Run drives the candidate list until no task is current and returns the
// delivered count.
func (s *Scheduler) Run() int {
	for s.current != nil {
		t := s.current
		var pkt *Packet

		switch t.State {
		case StateWaitPacket:
			pkt = t.Queue.PopHead()
			if t.Queue.Empty() {
				t.State = StateRun
			} else {
				t.State = StateRunPacket
			}
			fallthrough
		case StateRun, StateRunPacket:
			s.current = s.dispatch(t, pkt)
		case StateWait, StateHold, StateHoldPacket, StateHoldWait, StateHoldWaitPacket:
			s.current = s.next(t)
		default:
			return s.delivered
		}
	}
	return s.delivered
}

// Delivered returns the number of successful deliveries so far.
func (s *Scheduler) Delivered() int { return s.delivered }

// Held returns the number of self-holds so far.
func (s *Scheduler) Held() int { return s.held }

// Result snapshots the counters.
func (s *Scheduler) Result() Result {
	return Result{Checksum: Checksum{Delivered: s.delivered, Held: s.held}, Steps: s.steps}
}

// Task returns the registered task with the given id, or nil.
func (s *Scheduler) Task(id TaskID) *Task { return s.registry.Lookup(id) }

// Current returns the task the loop will inspect next.
func (s *Scheduler) Current() *Task { return s.current }

// dispatch runs t's behavior with its registers and writes back whatever
// registers the behavior produced.
func (s *Scheduler) dispatch(t *Task, pkt *Packet) *Task {
	s.active = t.ID
	s.steps++
	s.emit(Event{Kind: EventDispatch, TaskID: t.ID})

	next, regs := s.behave(t, pkt, t.Regs)
	t.Regs = regs
	return next
}

// next returns the task after t in candidate-list order.
func (s *Scheduler) next(t *Task) *Task {
	if t.pos+1 < len(s.order) {
		return s.order[t.pos+1]
	}
	return nil
}

// wait parks the current task until a packet arrives.
func (s *Scheduler) wait() *Task {
	s.current.State |= Waiting
	s.emit(Event{Kind: EventWait, TaskID: s.active})
	return s.current
}

// hold takes the current task out of consideration until released.
func (s *Scheduler) hold() *Task {
	s.held++
	s.current.State |= Held
	s.emit(Event{Kind: EventHold, TaskID: s.active})
	return s.next(s.current)
}

// release clears Held on id and switches to it if it outranks the current task.
func (s *Scheduler) release(id TaskID) *Task {
	t := s.lookup(id)
	if t == nil {
		return s.current
	}
	t.State &^= Held
	s.emit(Event{Kind: EventRelease, TaskID: s.active, Target: id})
	if t.Priority > s.current.Priority {
		return t
	}
	return s.current
}

// deliver hands p to the task named by p.ID and stamps it with the sender.
// Only a delivery into an empty queue can preempt the current task.
func (s *Scheduler) deliver(p *Packet) *Task {
	dest := p.ID
	t := s.lookup(dest)
	if t == nil {
		return s.current
	}
	s.delivered++
	p.ID = s.active
	s.emit(Event{Kind: EventDeliver, TaskID: s.active, Target: dest})

	wasEmpty := t.Queue.Empty()
	t.Queue.Append(p)
	if wasEmpty {
		t.State |= PacketPending
		if t.Priority > s.current.Priority {
			return t
		}
	}
	return s.current
}

func (s *Scheduler) lookup(id TaskID) *Task {
	t := s.registry.Lookup(id)
	if t == nil {
		s.log.Warn("bad task id",
			logx.Int("id", int(id)),
			logx.Int("active", int(s.active)),
		)
		s.emit(Event{Kind: EventLookupFailed, TaskID: s.active, Target: id})
	}
	return t
}

func (s *Scheduler) emit(ev Event) {
	if s.observe != nil {
		s.observe(ev)
	}
}
