package wire

import "github.com/cespare/xxhash/v2"

// Wire layout constants, grounded on the reference implementation's
// options.h (PEER_N_* offsets, PEER_PACKET_SIZE, PEER_MAX_MESSAGE_SIZE).
const (
	PacketSize        = 400
	PacketHeaderSize  = 15 // PEER_N_PACKET_MESSAGES
	MessageHeaderSize = 30 // PEER_N_MESSAGE_DATA
	MaxMessagePayload = PacketSize - PacketHeaderSize - MessageHeaderSize // 355
	MaxMessageSize    = 1023                                             // 10-bit size field cap

	nPacketSession  = 0
	nPacketIndex    = 4
	nPacketMode     = 12
	nPacketSize     = 13
	nPacketMessages = PacketHeaderSize

	nMessageChecksum    = 0
	nMessageSize        = 8
	nMessageSizeAndMode = 9
	nMessageIndex       = 10
	nMessageTime        = 18
	nMessageActor       = 26
	nMessageData        = MessageHeaderSize

	PacketModePlain = 0
	PacketModeMT64  = 1

	ModeService     = 0
	ModeApplication = 1

	// Undefined marks an unassigned id, index, or actor.
	Undefined int64 = -1
)

// Message is the decoded, in-memory form of one protocol message.
type Message struct {
	Checksum uint64
	Mode     uint8
	Index    int64
	Time     int64
	Actor    int64
	Data     []byte
}

// EncodedSize returns the total wire size of m, header included.
func (m Message) EncodedSize() int {
	return MessageHeaderSize + len(m.Data)
}

func packSizeMode(size uint16, mode uint8) (byte, byte) {
	b8 := byte(size & 0xff)
	b9 := byte((size>>8)&0x3) | (mode << 2)
	return b8, b9
}

func unpackSizeMode(b8, b9 byte) (size uint16, mode uint8) {
	size = uint16(b8) | uint16(b9&0x3)<<8
	mode = b9 >> 2
	return size, mode
}

// ReadMessageSize peeks the declared size field of a chunk without decoding
// the rest of it, mirroring peer_read_message_size in the reference packer.
func ReadMessageSize(chunk []byte) (int, Status) {
	if len(chunk) < nMessageIndex {
		return 0, StatusInvalidMessageSize
	}
	size, _ := unpackSizeMode(chunk[nMessageSize], chunk[nMessageSizeAndMode])
	return int(size), StatusOK
}

// EncodeMessage serializes a message chunk, computing its checksum with
// xxhash64 over everything after the checksum field.
func EncodeMessage(mode uint8, index, time, actor int64, data []byte) ([]byte, Status) {
	if len(data) > MaxMessagePayload {
		return nil, StatusInvalidMessageSize
	}
	if mode >= 4 {
		return nil, StatusInvalidMode
	}
	size := MessageHeaderSize + len(data)
	if size > MaxMessageSize {
		return nil, StatusInvalidMessageSize
	}

	buf := make([]byte, size)
	b8, b9 := packSizeMode(uint16(size), mode)
	buf[nMessageSize] = b8
	buf[nMessageSizeAndMode] = b9
	WriteI64(buf[nMessageIndex:], index)
	WriteI64(buf[nMessageTime:], time)
	WriteU32(buf[nMessageActor:], uint32(int32(actor)))
	copy(buf[nMessageData:], data)

	checksum := xxhash.Sum64(buf[nMessageSize:])
	WriteU64(buf[nMessageChecksum:], checksum)

	return buf, StatusOK
}

// DecodeMessage parses a complete chunk. The stored checksum is returned
// but not verified: the reference contract treats it as reserved, matching
// the "currently unvalidated" behavior spec.md calls out explicitly.
func DecodeMessage(chunk []byte) (Message, Status) {
	if len(chunk) < MessageHeaderSize {
		return Message{}, StatusInvalidMessageSize
	}
	size, mode := unpackSizeMode(chunk[nMessageSize], chunk[nMessageSizeAndMode])
	if int(size) != len(chunk) {
		return Message{}, StatusInvalidMessageSize
	}

	data := make([]byte, size-MessageHeaderSize)
	copy(data, chunk[nMessageData:size])

	return Message{
		Checksum: ReadU64(chunk[nMessageChecksum:]),
		Mode:     mode,
		Index:    ReadI64(chunk[nMessageIndex:]),
		Time:     ReadI64(chunk[nMessageTime:]),
		Actor:    int64(int32(ReadU32(chunk[nMessageActor:]))),
		Data:     data,
	}, StatusOK
}
