package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCandidateOrder(t *testing.T) {
	s, err := Build(CanonicalSpecs(DefaultCount))
	require.NoError(t, err)

	var ids []TaskID
	for task := s.Current(); task != nil; task = s.next(task) {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []TaskID{DeviceBID, DeviceAID, HandlerBID, HandlerAID, WorkerID, IdleID}, ids)
	assert.Equal(t, 6, s.registry.Len())
	assert.Equal(t, 2, s.Task(WorkerID).Queue.Len())
	assert.Equal(t, 3, s.Task(HandlerBID).Queue.Len())
}

func TestBuildRejectsBadSpecs(t *testing.T) {
	t.Parallel()
	idle := func(id TaskID) TaskSpec {
		return TaskSpec{ID: id, State: StateRun, Behavior: BehaviorIdle, Regs: IdleRegs{Seed: 1, Countdown: 1}}
	}
	tests := []struct {
		name  string
		specs []TaskSpec
	}{
		{name: "empty"},
		{name: "id zero", specs: []TaskSpec{idle(0)}},
		{name: "id too large", specs: []TaskSpec{idle(MaxTasks + 1)}},
		{name: "duplicate", specs: []TaskSpec{idle(1), idle(1)}},
		{name: "no registers", specs: []TaskSpec{{ID: 1, Behavior: BehaviorIdle}}},
		{name: "wrong registers", specs: []TaskSpec{{ID: 1, Behavior: BehaviorWorker, Regs: DeviceRegs{}}}},
		{name: "unknown state", specs: []TaskSpec{{ID: 1, State: State(9), Behavior: BehaviorIdle, Regs: IdleRegs{}}}},
		{name: "pending without packets", specs: []TaskSpec{{ID: 1, State: StateWaitPacket, Behavior: BehaviorDevice, Regs: DeviceRegs{}}}},
		{name: "packets without pending", specs: []TaskSpec{{
			ID: 1, State: StateWait, Behavior: BehaviorDevice, Regs: DeviceRegs{},
			Queue: []*Packet{NewPacket(nil, 0, KindDevice)},
		}}},
		{name: "nil packet", specs: []TaskSpec{{
			ID: 1, State: StateWaitPacket, Behavior: BehaviorDevice, Regs: DeviceRegs{},
			Queue: []*Packet{nil},
		}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.specs)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestExpected(t *testing.T) {
	c, ok := Expected(DefaultCount)
	assert.True(t, ok)
	assert.Equal(t, Checksum{Delivered: 23246, Held: 9297}, c)

	_, ok = Expected(1234)
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "WaitPacket", StateWaitPacket.String())
	assert.Equal(t, "HoldWaitPacket", StateHoldWaitPacket.String())
	assert.Equal(t, "State(8)", State(8).String())
}
