package sched

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned by Build when a task description is unusable.
var ErrInvalidSpec = errors.New("invalid task spec")

// TaskSpec describes one task to create.
type TaskSpec struct {
	ID       TaskID
	Priority int
	Queue    []*Packet // initial queue, head first
	State    State
	Behavior Behavior
	Regs     Registers
}

// Build creates the tasks in order and returns a scheduler whose current
// task is the last one created. The candidate list runs from the most
// recently created task back to the first.
func Build(specs []TaskSpec, opts ...Option) (*Scheduler, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no tasks", ErrInvalidSpec)
	}
	s := &Scheduler{order: make([]*Task, len(specs))}
	for _, opt := range opts {
		opt(s)
	}

	for i, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		t := newTask(spec)
		if err := s.registry.Register(t); err != nil {
			return nil, err
		}
		t.pos = len(specs) - 1 - i
		s.order[t.pos] = t
	}
	s.current = s.order[0]
	return s, nil
}

func (spec TaskSpec) validate() error {
	if spec.Regs == nil {
		return fmt.Errorf("%w: task %d has no registers", ErrInvalidSpec, spec.ID)
	}
	if spec.Regs.Behavior() != spec.Behavior {
		return fmt.Errorf("%w: task %d is %s but has %s registers",
			ErrInvalidSpec, spec.ID, spec.Behavior, spec.Regs.Behavior())
	}
	if spec.State > StateHoldWaitPacket {
		return fmt.Errorf("%w: task %d has unknown state %s", ErrInvalidSpec, spec.ID, spec.State)
	}
	for i, p := range spec.Queue {
		if p == nil {
			return fmt.Errorf("%w: task %d has nil packet at %d", ErrInvalidSpec, spec.ID, i)
		}
	}
	if pending := spec.State&PacketPending != 0; pending != (len(spec.Queue) > 0) {
		return fmt.Errorf("%w: task %d state %s does not match %d queued packets",
			ErrInvalidSpec, spec.ID, spec.State, len(spec.Queue))
	}
	return nil
}

// CanonicalSpecs returns the standard six-task graph. count is the idle
// task's countdown and so sets the length of the run.
func CanonicalSpecs(count int) []TaskSpec {
	return []TaskSpec{
		{
			ID:       IdleID,
			Priority: 0,
			State:    StateRun,
			Behavior: BehaviorIdle,
			Regs:     IdleRegs{Seed: 1, Countdown: count},
		},
		{
			ID:       WorkerID,
			Priority: 1000,
			Queue:    packets(2, 0, KindWork),
			State:    StateWaitPacket,
			Behavior: BehaviorWorker,
			Regs:     WorkerRegs{Handler: HandlerAID},
		},
		{
			ID:       HandlerAID,
			Priority: 2000,
			Queue:    packets(3, DeviceAID, KindDevice),
			State:    StateWaitPacket,
			Behavior: BehaviorHandler,
			Regs:     HandlerRegs{},
		},
		{
			ID:       HandlerBID,
			Priority: 3000,
			Queue:    packets(3, DeviceBID, KindDevice),
			State:    StateWaitPacket,
			Behavior: BehaviorHandler,
			Regs:     HandlerRegs{},
		},
		{
			ID:       DeviceAID,
			Priority: 4000,
			State:    StateWait,
			Behavior: BehaviorDevice,
			Regs:     DeviceRegs{},
		},
		{
			ID:       DeviceBID,
			Priority: 5000,
			State:    StateWait,
			Behavior: BehaviorDevice,
			Regs:     DeviceRegs{},
		},
	}
}

func packets(n int, id TaskID, kind PacketKind) []*Packet {
	out := make([]*Packet, n)
	for i := range out {
		out[i] = NewPacket(nil, id, kind)
	}
	return out
}

// DefaultCount is the idle countdown of a standard run.
const DefaultCount = 10000

var expected = map[int]Checksum{
	DefaultCount: {Delivered: 23246, Held: 9297},
	1000000:      {Delivered: 2326410, Held: 930563},
}

// Expected returns the known-good checksum of the canonical graph for count.
func Expected(count int) (Checksum, bool) {
	c, ok := expected[count]
	return c, ok
}

// RunCanonical builds and runs the canonical graph once.
func RunCanonical(count int, opts ...Option) (Result, error) {
	s, err := Build(CanonicalSpecs(count), opts...)
	if err != nil {
		return Result{}, err
	}
	s.Run()
	return s.Result(), nil
}
