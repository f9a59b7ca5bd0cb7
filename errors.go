package peer

import "github.com/sessionwire/peer/internal/wire"

// Status is the OR-combinable error bitfield returned by every peer
// operation. Zero means success.
type Status = wire.Status

const (
	StatusOK                  = wire.StatusOK
	StatusBadAlloc            = wire.StatusBadAlloc
	StatusInvalidPeer         = wire.StatusInvalidPeer
	StatusInvalidMode         = wire.StatusInvalidMode
	StatusInvalidMessage      = wire.StatusInvalidMessage
	StatusInvalidID           = wire.StatusInvalidID
	StatusInvalidTimeElapsed  = wire.StatusInvalidTimeElapsed
	StatusInvalidMessageSize  = wire.StatusInvalidMessageSize
	StatusInvalidPacketSize   = wire.StatusInvalidPacketSize
	StatusInvalidMessageIndex = wire.StatusInvalidMessageIndex
	StatusInvalidMessageTime  = wire.StatusInvalidMessageTime
	StatusInvalidMessageActor = wire.StatusInvalidMessageActor
	StatusNoFreeSlots         = wire.StatusNoFreeSlots
	StatusSlotNotFound        = wire.StatusSlotNotFound
	StatusUnknownServiceID    = wire.StatusUnknownServiceID
	StatusInvalidOutIndex     = wire.StatusInvalidOutIndex
	StatusTimeOverflow        = wire.StatusTimeOverflow
	StatusInvalidSlotState    = wire.StatusInvalidSlotState
	StatusNotImplemented      = wire.StatusNotImplemented
)

// Undefined is the sentinel for an unset id, index, or actor.
const Undefined int64 = wire.Undefined
