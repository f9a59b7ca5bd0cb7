package peer

import (
	"github.com/sessionwire/peer/internal/queue"
	"github.com/sessionwire/peer/internal/trail"
	"github.com/sessionwire/peer/internal/wire"
)

// Tick advances the clock by dt and returns the packets the caller must
// transmit. dt must be non-negative and time_local+dt must not overflow;
// either violation leaves the Peer unmodified.
func (p *Peer) Tick(dt int64) (Status, []wire.Packet) {
	if dt < 0 {
		return StatusInvalidTimeElapsed, nil
	}
	newLocal := p.timeLocal + dt
	if newLocal < p.timeLocal {
		return StatusTimeOverflow, nil
	}
	p.timeLocal = newLocal

	for _, s := range p.slots {
		s.HeartbeatCountdown -= dt
		if s.HeartbeatCountdown < 0 {
			s.HeartbeatCountdown = 0
		}
	}

	if p.mode == Host {
		return p.hostTick()
	}
	return p.clientTick()
}

func (p *Peer) hostTick() (Status, []wire.Packet) {
	var status Status
	var packets []wire.Packet

	p.timeMutual = p.timeLocal
	p.mutualQueue.StampTimeFrom(p.mutualQueueIndex, p.timeMutual)

	for i := 1; i < len(p.slots); i++ {
		s := p.slots[i]
		for {
			e, ok := s.Queue.At(s.InIndex)
			if !ok || !e.Ready {
				break
			}
			p.mutualQueue.Append(p.timeMutual, s.Actor, e.Data)
			s.InIndex++
		}
	}
	p.mutualQueueIndex = p.mutualQueue.Len()

	for i := 1; i < len(p.slots); i++ {
		s := p.slots[i]
		switch s.State {
		case SlotSessionRequest:
			chunk, st := encodeServiceChunk(serviceSessionResponse, s.Local.Address, p.timeMutual, s.Actor)
			status |= st
			if st.OK() {
				var pkts []wire.Packet
				st2 := wire.Pack(s.Local.ID, s.Remote.ID, [][]byte{chunk}, &pkts)
				status |= st2
				packets = append(packets, pkts...)
			}
			s.HeartbeatCountdown = HeartbeatTimeout
			s.State = SlotReady

		case SlotReady:
			if s.OutIndex < p.mutualQueue.Len() {
				chunks, st := p.composeBatch(&p.mutualQueue, nil, s.OutIndex, p.mutualQueue.Len())
				status |= st
				var pkts []wire.Packet
				st2 := wire.Pack(s.Local.ID, s.Remote.ID, chunks, &pkts)
				status |= st2
				if st2.OK() {
					packets = append(packets, pkts...)
					s.OutIndex = p.mutualQueue.Len()
					s.HeartbeatCountdown = HeartbeatTimeout
				}
			} else if s.HeartbeatCountdown == 0 {
				hb, st := encodeServiceChunk(serviceHeartbeat, nil, p.timeMutual, s.Actor)
				status |= st
				chunks, st2 := p.composeBatch(&p.mutualQueue, hb, s.OutIndex, p.mutualQueue.Len())
				status |= st2
				var pkts []wire.Packet
				st3 := wire.Pack(s.Local.ID, s.Remote.ID, chunks, &pkts)
				status |= st3
				if st3.OK() {
					packets = append(packets, pkts...)
					s.HeartbeatCountdown = HeartbeatTimeout
				}
			}

		case SlotEmpty:
		}
	}

	return status, packets
}

func (p *Peer) clientTick() (Status, []wire.Packet) {
	slot := p.slots[0]
	var status Status
	var packets []wire.Packet

	if slot.Remote.ID == Undefined {
		return StatusOK, nil
	}

	if slot.State == SlotEmpty {
		var pkts []wire.Packet
		st := wire.Pack(slot.Local.ID, slot.Remote.ID, nil, &pkts)
		status |= st
		packets = append(packets, pkts...)
		return status, packets
	}

	if slot.OutIndex < slot.Queue.Len() {
		chunks, st := p.composeBatch(&slot.Queue, nil, slot.OutIndex, slot.Queue.Len())
		status |= st
		var pkts []wire.Packet
		st2 := wire.Pack(slot.Local.ID, slot.Remote.ID, chunks, &pkts)
		status |= st2
		if st2.OK() {
			packets = append(packets, pkts...)
			slot.OutIndex = slot.Queue.Len()
			slot.HeartbeatCountdown = HeartbeatTimeout
		}
	} else if slot.HeartbeatCountdown == 0 {
		hb, st := encodeServiceChunk(serviceHeartbeat, nil, 0, p.actor)
		status |= st
		chunks, st2 := p.composeBatch(&slot.Queue, hb, slot.OutIndex, slot.Queue.Len())
		status |= st2
		var pkts []wire.Packet
		st3 := wire.Pack(slot.Local.ID, slot.Remote.ID, chunks, &pkts)
		status |= st3
		if st3.OK() {
			packets = append(packets, pkts...)
			slot.HeartbeatCountdown = HeartbeatTimeout
		}
	}

	return status, packets
}

// composeBatch serializes an optional leading service chunk, the new
// entries in [from, to), then the trail selector's serial and scatter
// chunks — in that order, matching §5's chunk-order guarantee.
func (p *Peer) composeBatch(q *queue.Queue, leading []byte, from, to int64) ([][]byte, Status) {
	var status Status
	var chunks [][]byte

	if leading != nil {
		chunks = append(chunks, leading)
	}

	for idx := from; idx < to; idx++ {
		e, ok := q.At(idx)
		if !ok {
			continue
		}
		chunk, st := wire.EncodeMessage(wire.ModeApplication, idx, e.Time, e.Actor, e.Data)
		status |= st
		chunks = append(chunks, chunk)
	}

	for _, idx := range trail.Select(to, from, p.prng) {
		e, ok := q.At(idx)
		if !ok {
			continue
		}
		chunk, st := wire.EncodeMessage(wire.ModeApplication, idx, e.Time, e.Actor, e.Data)
		status |= st
		chunks = append(chunks, chunk)
	}

	return chunks, status
}
