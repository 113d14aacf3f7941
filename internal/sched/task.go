package sched

import "fmt"

// TaskID identifies a task in the registry. Valid ids are 1..MaxTasks.
type TaskID int

// Task ids of the canonical six-task graph.
const (
	IdleID TaskID = iota + 1
	WorkerID
	HandlerAID
	HandlerBID
	DeviceAID
	DeviceBID
)

// State is a combination of the PacketPending, Waiting and Held flags.
type State uint8

const (
	PacketPending State = 1 << iota
	Waiting
	Held
)

// Combined states recognised by the scheduler loop.
const (
	StateRun            State = 0
	StateRunPacket            = PacketPending
	StateWait                 = Waiting
	StateWaitPacket           = Waiting | PacketPending
	StateHold                 = Held
	StateHoldPacket           = Held | PacketPending
	StateHoldWait             = Held | Waiting
	StateHoldWaitPacket       = Held | Waiting | PacketPending
)

func (s State) String() string {
	switch s {
	case StateRun:
		return "Run"
	case StateRunPacket:
		return "RunPacket"
	case StateWait:
		return "Wait"
	case StateWaitPacket:
		return "WaitPacket"
	case StateHold:
		return "Hold"
	case StateHoldPacket:
		return "HoldPacket"
	case StateHoldWait:
		return "HoldWait"
	case StateHoldWaitPacket:
		return "HoldWaitPacket"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Behavior selects what a task does when dispatched.
type Behavior int

const (
	BehaviorIdle Behavior = iota
	BehaviorWorker
	BehaviorHandler
	BehaviorDevice
)

func (b Behavior) String() string {
	switch b {
	case BehaviorIdle:
		return "Idle"
	case BehaviorWorker:
		return "Worker"
	case BehaviorHandler:
		return "Handler"
	case BehaviorDevice:
		return "Device"
	default:
		return "Unknown"
	}
}

// Registers is a task's two-word scratch area. Each behavior has its own
// variant; the scheduler hands it to the behavior and stores what comes back.
type Registers interface {
	Behavior() Behavior
}

// IdleRegs drive the idle task: a countdown to the final self-hold and a
// shift-register seed choosing which device to release next.
type IdleRegs struct {
	Seed      uint
	Countdown int
}

// WorkerRegs hold the handler the worker last sent to and its position in the alphabet.
type WorkerRegs struct {
	Handler TaskID
	Index   int
}

// HandlerRegs are the handler's private queues of work and device packets.
type HandlerRegs struct {
	Work   Queue
	Device Queue
}

// DeviceRegs hold the packet the device is sitting on, if any.
type DeviceRegs struct {
	Pending *Packet
}

func (IdleRegs) Behavior() Behavior    { return BehaviorIdle }
func (WorkerRegs) Behavior() Behavior  { return BehaviorWorker }
func (HandlerRegs) Behavior() Behavior { return BehaviorHandler }
func (DeviceRegs) Behavior() Behavior  { return BehaviorDevice }

// Task represents one simulated process.
type Task struct {
	ID       TaskID
	Priority int // higher wins
	State    State
	Behavior Behavior
	Queue    Queue
	Regs     Registers

	pos int // index in the candidate list
}

// newTask builds a task from a validated spec.
func newTask(spec TaskSpec) *Task {
	t := &Task{
		ID:       spec.ID,
		Priority: spec.Priority,
		State:    spec.State,
		Behavior: spec.Behavior,
		Regs:     spec.Regs,
	}
	for _, p := range spec.Queue {
		t.Queue.Append(p)
	}
	return t
}
