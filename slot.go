package peer

import "github.com/sessionwire/peer/internal/queue"

// SlotState is a connection's session-establishment phase.
type SlotState int

const (
	// SlotEmpty means no peer occupies this slot yet.
	SlotEmpty SlotState = iota
	// SlotSessionRequest means the host has observed a new client and
	// owes it a SESSION_RESPONSE.
	SlotSessionRequest
	// SlotReady means data flow is active.
	SlotReady
)

// Slot is one connection endpoint: its local/remote identity, its state
// machine phase, and the queue of messages associated with it. On a host,
// slot.Queue holds the messages received from a client, with InIndex
// marking how many have been merged into the mutual queue; on a client,
// slots[0].Queue holds the client's own outbound messages, with OutIndex
// marking how many have been sent. Entries stay in the queue after they
// are merged or sent.
type Slot struct {
	State              SlotState
	Local              Endpoint
	Remote             Endpoint
	Queue              queue.Queue
	Actor              int64
	InIndex            int64
	OutIndex           int64
	HeartbeatCountdown int64
}

func newSlot() *Slot {
	return &Slot{
		State:  SlotEmpty,
		Local:  newEndpoint(),
		Remote: newEndpoint(),
		Actor:  Undefined,
	}
}
