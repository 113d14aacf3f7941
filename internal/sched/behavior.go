package sched

const (
	alphabet = "0ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	seedMask     = 0x7FFF
	seedFeedback = 0xD008
)

// behave is the single dispatch point for all task behaviors. Build guarantees
// the register variant matches the behavior.
func (s *Scheduler) behave(t *Task, pkt *Packet, regs Registers) (*Task, Registers) {
	switch t.Behavior {
	case BehaviorIdle:
		return s.idle(regs.(IdleRegs))
	case BehaviorWorker:
		return s.work(pkt, regs.(WorkerRegs))
	case BehaviorHandler:
		return s.handle(pkt, regs.(HandlerRegs))
	case BehaviorDevice:
		return s.device(pkt, regs.(DeviceRegs))
	default:
		panic("sched: unknown behavior " + t.Behavior.String())
	}
}

// idle counts down to its final self-hold, releasing one of the two devices
// on every other step as chosen by the low bit of the seed.
func (s *Scheduler) idle(r IdleRegs) (*Task, Registers) {
	r.Countdown--
	if r.Countdown == 0 {
		return s.hold(), r
	}
	if r.Seed&1 == 0 {
		r.Seed = (r.Seed >> 1) & seedMask
		return s.release(DeviceAID), r
	}
	r.Seed = ((r.Seed >> 1) & seedMask) ^ seedFeedback
	return s.release(DeviceBID), r
}

// work refills a work packet and sends it to the handlers in turn.
func (s *Scheduler) work(pkt *Packet, r WorkerRegs) (*Task, Registers) {
	if pkt == nil {
		return s.wait(), r
	}
	r.Handler = HandlerAID + HandlerBID - r.Handler
	pkt.ID = r.Handler
	pkt.A1 = 0
	for i := range pkt.Payload {
		r.Index++
		if r.Index > 26 {
			r.Index = 1
		}
		pkt.Payload[i] = alphabet[r.Index]
	}
	return s.deliver(pkt), r
}

// handle pairs work packets with device packets, sending one payload byte per
// device packet. A work packet whose payload is used up goes back to its sender.
func (s *Scheduler) handle(pkt *Packet, r HandlerRegs) (*Task, Registers) {
	if pkt != nil {
		if pkt.Kind == KindWork {
			r.Work.Append(pkt)
		} else {
			r.Device.Append(pkt)
		}
	}

	if work := r.Work.Head(); work != nil {
		count := work.A1
		if count >= PayloadSize {
			r.Work.PopHead()
			return s.deliver(work), r
		}
		if dev := r.Device.PopHead(); dev != nil {
			dev.A1 = int(work.Payload[count])
			work.A1 = count + 1
			return s.deliver(dev), r
		}
	}
	return s.wait(), r
}

// device holds each packet it receives for one round, then returns it.
func (s *Scheduler) device(pkt *Packet, r DeviceRegs) (*Task, Registers) {
	if pkt == nil {
		if r.Pending == nil {
			return s.wait(), r
		}
		p := r.Pending
		r.Pending = nil
		return s.deliver(p), r
	}
	r.Pending = pkt
	s.emit(Event{Kind: EventDeviceOutput, TaskID: s.active, Byte: byte(pkt.A1)})
	return s.hold(), r
}
