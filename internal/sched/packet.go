// internal/sched/packet.go

package sched

// PayloadSize is the number of payload bytes carried by every packet.
const PayloadSize = 4

// PacketKind tells a handler which of its two queues a packet belongs on.
type PacketKind int

const (
	KindDevice PacketKind = iota + 1000
	KindWork
)

func (k PacketKind) String() string {
	switch k {
	case KindDevice:
		return "Device"
	case KindWork:
		return "Work"
	default:
		return "Unknown"
	}
}

// Packet is one unit of work passed between tasks.
type Packet struct {
	ID      TaskID // destination before delivery, sender after
	Kind    PacketKind
	A1      int // payload cursor, or the carried byte for device packets
	Payload [PayloadSize]byte

	next *Packet
}

// NewPacket creates a packet linked in front of link, the way seed queues are built.
func NewPacket(link *Packet, id TaskID, kind PacketKind) *Packet {
	return &Packet{ID: id, Kind: kind, next: link}
}

// Next returns the packet queued behind p.
func (p *Packet) Next() *Packet { return p.next }

// Queue is a FIFO of packets threaded through their own links.
// The zero value is an empty queue.
type Queue struct {
	head *Packet
}

// QueueOf wraps an already-linked chain of packets.
func QueueOf(head *Packet) Queue { return Queue{head: head} }

func (q Queue) Empty() bool { return q.head == nil }

// Head returns the first packet without removing it.
func (q Queue) Head() *Packet { return q.head }

// Len walks the queue. Only tests and validation need it.
func (q Queue) Len() int {
	n := 0
	for p := q.head; p != nil; p = p.next {
		n++
	}
	return n
}

// Append clears p's link and attaches it at the tail.
func (q *Queue) Append(p *Packet) {
	p.next = nil
	if q.head == nil {
		q.head = p
		return
	}
	tail := q.head
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = p
}

// PopHead removes and returns the head packet, or nil when empty.
// The caller reconciles any pending flag against Empty afterwards.
func (q *Queue) PopHead() *Packet {
	p := q.head
	if p == nil {
		return nil
	}
	q.head = p.next
	p.next = nil
	return p
}
