package sched

import "fmt"

// MaxTasks is the registry capacity. Ids run from 1 to MaxTasks.
const MaxTasks = 10

// Registry maps task ids to tasks without regard to priority.
type Registry struct {
	slots [MaxTasks + 1]*Task
	count int
}

// Register stores t under its id.
func (r *Registry) Register(t *Task) error {
	if !validID(t.ID) {
		return fmt.Errorf("%w: task id %d out of range 1..%d", ErrInvalidSpec, t.ID, MaxTasks)
	}
	if r.slots[t.ID] != nil {
		return fmt.Errorf("%w: task %d already exists", ErrInvalidSpec, t.ID)
	}
	r.slots[t.ID] = t
	r.count++
	return nil
}

// Lookup returns the task registered under id, or nil.
func (r *Registry) Lookup(id TaskID) *Task {
	if !validID(id) {
		return nil
	}
	return r.slots[id]
}

// Len reports how many tasks are registered.
func (r *Registry) Len() int { return r.count }

func validID(id TaskID) bool { return id >= 1 && id <= MaxTasks }
