package peer

import "github.com/sessionwire/peer/internal/wire"

// Input processes received packets (see spec §4.5):
//  1. Match destination_id to any local slot; if none, drop silently.
//  2. Match (destination_id, source_id) to a specific slot. If matched,
//     unpack and dispatch each chunk by role.
//  3. Host role only: an unmatched pair from a known local destination
//     triggers EMPTY -> SESSION_REQUEST assignment on the first eligible
//     non-reserved slot.
//
// Errors from different packets/chunks accumulate via bitwise OR.
func (p *Peer) Input(packets []wire.Packet) Status {
	var status Status

	for _, pkt := range packets {
		if p.findLocalSlot(pkt.DestinationID) == -1 {
			continue
		}

		if slotIdx, ok := p.findSessionSlot(pkt.DestinationID, pkt.SourceID); ok {
			status |= p.processPacket(slotIdx, pkt)
			continue
		}

		if p.mode == Host {
			if _, st := p.hostAcceptSession(pkt.SourceID); !st.OK() {
				status |= st
			}
		}
	}

	return status
}

func (p *Peer) findLocalSlot(destinationID int64) int {
	for i, s := range p.slots {
		if s.Local.IDResolved && s.Local.ID == destinationID {
			return i
		}
	}
	return -1
}

func (p *Peer) findSessionSlot(destinationID, sourceID int64) (int, bool) {
	for i, s := range p.slots {
		if s.Local.IDResolved && s.Local.ID == destinationID && s.Remote.ID == sourceID {
			return i, true
		}
	}
	return -1, false
}

// hostAcceptSession scans non-reserved slots for the first with an
// unbound remote and a resolved local address, per §4.4.
func (p *Peer) hostAcceptSession(sourceID int64) (int, Status) {
	for i := 1; i < len(p.slots); i++ {
		s := p.slots[i]
		if s.Remote.ID == Undefined && s.Local.AddressResolved {
			s.Remote.ID = sourceID
			s.Actor = int64(i)
			s.State = SlotSessionRequest
			return i, StatusOK
		}
	}
	return -1, StatusNoFreeSlots
}

func (p *Peer) processPacket(slotIdx int, pkt wire.Packet) Status {
	var status Status

	var chunks [][]byte
	if st := wire.Unpack([]wire.Packet{pkt}, &chunks); !st.OK() {
		status |= st
	}

	slot := p.slots[slotIdx]
	for _, chunk := range chunks {
		msg, st := wire.DecodeMessage(chunk)
		if !st.OK() {
			status |= st
			continue
		}
		if p.mode == Host {
			status |= p.handleHostMessage(slot, msg)
		} else {
			status |= p.handleClientMessage(slot, msg)
		}
	}

	return status
}

func (p *Peer) handleHostMessage(slot *Slot, msg wire.Message) Status {
	// Client-side time=0 is the only legal value the host ever accepts;
	// the host itself is the sole authority on time.
	if msg.Time != 0 {
		return StatusInvalidMessageTime
	}
	if msg.Actor != slot.Actor {
		return StatusInvalidMessageActor
	}

	if msg.Mode == wire.ModeService {
		switch serviceID(msg) {
		case serviceHeartbeat:
			return StatusOK
		default:
			return StatusUnknownServiceID
		}
	}

	return slot.Queue.Insert(msg.Index, msg.Time, msg.Actor, msg.Data)
}

func (p *Peer) handleClientMessage(slot *Slot, msg wire.Message) Status {
	var status Status

	if msg.Mode == wire.ModeService {
		switch serviceID(msg) {
		case serviceHeartbeat:
			// consumed silently
		case serviceSessionResponse:
			p.actor = msg.Actor
			addr := servicePayload(msg)
			slot.Remote.Address = append([]byte(nil), addr...)
			slot.Remote.AddressResolved = len(addr) > 0
			// The transport must now resolve the (possibly different)
			// endpoint id behind this address.
			slot.Remote.IDResolved = false
			slot.Queue.StampActorFrom(0, p.actor)
			slot.State = SlotReady
		default:
			status |= StatusUnknownServiceID
		}
	} else {
		status |= p.mutualQueue.Insert(msg.Index, msg.Time, msg.Actor, msg.Data)
	}

	if msg.Time > p.timeMutual {
		p.timeMutual = msg.Time
	}

	return status
}
