// internal/sched/event.go

package sched

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventDispatch EventKind = iota
	EventDeliver
	EventWait
	EventHold
	EventRelease
	EventDeviceOutput
	EventLookupFailed
)

// Event is emitted on every dispatch and every queue or state action.
type Event struct {
	Kind   EventKind
	TaskID TaskID // task being dispatched
	Target TaskID // destination of a delivery, release or failed lookup
	Byte   byte   // device output only
}

// Observer receives events synchronously from the scheduler loop.
type Observer func(Event)

func (ek EventKind) String() string {
	switch ek {
	case EventDispatch:
		return "Dispatch"
	case EventDeliver:
		return "Deliver"
	case EventWait:
		return "Wait"
	case EventHold:
		return "Hold"
	case EventRelease:
		return "Release"
	case EventDeviceOutput:
		return "DeviceOutput"
	case EventLookupFailed:
		return "LookupFailed"
	default:
		return "Unknown"
	}
}
