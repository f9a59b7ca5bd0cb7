package peer

import "github.com/sessionwire/peer/internal/wire"

// Service-message ids (spec.md §6). The id occupies the first data byte of
// every SERVICE-mode message; the remainder is id-specific payload.
const (
	serviceHeartbeat       byte = 1
	servicePing            byte = 2
	servicePong            byte = 3
	serviceSessionRequest  byte = 4
	serviceSessionResponse byte = 5
	serviceSessionResume   byte = 6
)

func serviceID(msg wire.Message) byte {
	if len(msg.Data) == 0 {
		return 0
	}
	return msg.Data[0]
}

func servicePayload(msg wire.Message) []byte {
	if len(msg.Data) < 2 {
		return nil
	}
	return msg.Data[1:]
}

func encodeServiceChunk(id byte, payload []byte, time, actor int64) ([]byte, Status) {
	data := make([]byte, 1+len(payload))
	data[0] = id
	copy(data[1:], payload)
	return wire.EncodeMessage(wire.ModeService, Undefined, time, actor, data)
}
