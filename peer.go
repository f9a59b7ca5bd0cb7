// Package peer implements the session engine: a transport-independent,
// packet-oriented protocol machine that gives a host and zero or more
// clients a shared, ordered, reliable message queue over an abstract lossy
// datagram carrier. The caller owns the socket; this package owns only the
// protocol state between input(packets) and tick(dt) calls.
package peer

import (
	"github.com/sessionwire/peer/internal/queue"
	"github.com/sessionwire/peer/internal/trail"
	"github.com/sessionwire/peer/internal/wire"
)

// Mode selects whether a Peer mediates a session (Host) or joins one
// (Client). There is a single unified constructor, not separate
// host/client types, matching the reference peer_init(peer, mode, ...).
type Mode int

const (
	Host Mode = iota
	Client
)

// HeartbeatTimeout is the idle interval (in the caller's time units)
// after which a READY slot emits a heartbeat if it has nothing else to
// send.
const HeartbeatTimeout int64 = 10

// Declared but not driven by this engine's state machine (see spec Open
// Questions): ping cadence and the connection-loss threshold.
const (
	PingTimeout       int64 = 200
	ConnectionTimeout int64 = 2000
)

// Peer is the session root. It exclusively owns its slots, queues, and
// PRNG; slots exclusively own their queue entries' payload bytes.
type Peer struct {
	mode             Mode
	slots            []*Slot
	mutualQueue      queue.Queue
	mutualQueueIndex int64
	timeMutual       int64
	timeLocal        int64
	actor            int64
	prng             *trail.PRNG
}

// New creates a Peer in the given mode with one reserved slot (slots[0]):
// for a host it represents the host itself (actor 0); for a client it is
// the sole connection to the host. The trail PRNG is seeded with the
// reference seed so scatter-trail sampling is reproducible across every
// Peer in a session.
func New(mode Mode) *Peer {
	return NewWithSeed(mode, trail.ReferenceSeed)
}

// NewWithSeed is New with an explicit PRNG seed, for tests that want a
// seed distinct from the production default while still exercising
// deterministic sampling.
func NewWithSeed(mode Mode, seed uint64) *Peer {
	actor := Undefined
	if mode == Host {
		actor = 0
	}
	return &Peer{
		mode:  mode,
		slots: []*Slot{newSlot()},
		actor: actor,
		prng:  trail.NewPRNG(seed),
	}
}

// Mode reports whether this Peer is mediating (Host) or joining (Client).
func (p *Peer) Mode() Mode { return p.mode }

// Actor is this Peer's assigned identity: 0 for a host, the host-assigned
// slot index for a client once SESSION_RESPONSE arrives, Undefined before.
func (p *Peer) Actor() int64 { return p.actor }

// TimeLocal is this Peer's own advancing clock.
func (p *Peer) TimeLocal() int64 { return p.timeLocal }

// TimeMutual is the authoritative session clock: on a host it tracks
// TimeLocal; on a client it advances monotonically from observed message
// timestamps.
func (p *Peer) TimeMutual() int64 { return p.timeMutual }

// SlotCount reports the number of slots, including the reserved slot 0.
func (p *Peer) SlotCount() int { return len(p.slots) }

// Slot returns a read view of slots[i] for diagnostics and tests.
func (p *Peer) Slot(i int) *Slot { return p.slots[i] }

// Open registers one local endpoint id per entry of ids, in call order.
// The first id fills the reserved slot's local identity if it is not yet
// set; every subsequent id is assigned to a freshly appended slot. An
// already-resolved slot's local id is never reassigned, so repeated Open
// calls only grow the slot table (mirrors the reference's exact
// positional-assignment contract).
func (p *Peer) Open(ids []int64) Status {
	for _, id := range ids {
		s := p.firstUnresolvedLocalSlot()
		if s == nil {
			s = newSlot()
			p.slots = append(p.slots, s)
		}
		s.Local.ID = id
		s.Local.IDResolved = true
		// Real address resolution belongs to the transport (a Non-goal
		// here); the core only needs to know a local endpoint exists to
		// offer this slot for a new session (§4.4's
		// `local.address_size > 0` precondition).
		s.Local.AddressResolved = true
		s.Local.Address = []byte{0}
	}
	return StatusOK
}

func (p *Peer) firstUnresolvedLocalSlot() *Slot {
	for _, s := range p.slots {
		if !s.Local.IDResolved {
			return s
		}
	}
	return nil
}

// Connect binds the first free slot (remote.id == Undefined) to a remote
// host id. For a freshly constructed client this is always slots[0], the
// reserved slot.
func (p *Peer) Connect(serverID int64) Status {
	for _, s := range p.slots {
		if s.Remote.ID == Undefined {
			s.Remote.ID = serverID
			s.Remote.AddressResolved = false
			s.Remote.Address = nil
			return StatusOK
		}
	}
	return StatusNoFreeSlots
}

// Queue appends an application message to the appropriate queue: the
// mutual queue for a host (already authoritative, stamped with the
// current time and actor 0), or the client's sole connection queue for a
// client (stamped time=0, actor=peer.actor — possibly still Undefined,
// retroactively fixed once SESSION_RESPONSE arrives). Returns the
// assigned index.
func (p *Peer) Queue(data []byte) (int64, Status) {
	if len(data) > wire.MaxMessagePayload {
		return Undefined, StatusInvalidMessageSize
	}
	payload := append([]byte(nil), data...)
	if p.mode == Host {
		return p.mutualQueue.Append(p.timeLocal, 0, payload), StatusOK
	}
	return p.slots[0].Queue.Append(0, p.actor, payload), StatusOK
}
