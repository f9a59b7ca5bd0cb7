package wire

// Packet is one fixed-size datagram payload. SourceID/DestinationID are
// opaque handles into the external endpoint table (the socket pool the
// core never touches directly); Size is the number of used bytes at the
// front of Data.
type Packet struct {
	SourceID      int64
	DestinationID int64
	Size          int
	Data          [PacketSize]byte
}

func finalizePacket(p *Packet, offset int) {
	p.Size = offset
	p.Data[nPacketMode] = PacketModePlain
	WriteU16(p.Data[nPacketSize:], uint16(offset))
}

// Pack appends one or more packets to out, greedily filling each with
// chunks in order and starting a new packet whenever the next chunk would
// overflow PacketSize. It always appends at least one packet, even for an
// empty chunk list, so the transport always has something to send.
func Pack(sourceID, destinationID int64, chunks [][]byte, out *[]Packet) Status {
	previousLen := len(*out)

	// Sentinel: bigger than any real offset, so the first chunk (or the
	// lack of one) always forces allocation of the first packet below.
	offset := PacketSize

	for _, chunk := range chunks {
		if offset+len(chunk) > PacketSize {
			if len(*out) > previousLen {
				finalizePacket(&(*out)[len(*out)-1], offset)
			}
			*out = append(*out, Packet{SourceID: sourceID, DestinationID: destinationID})
			offset = nPacketMessages
		}

		size, sizeStatus := ReadMessageSize(chunk)
		if !sizeStatus.OK() || size != len(chunk) {
			return StatusInvalidMessageSize
		}

		p := &(*out)[len(*out)-1]
		copy(p.Data[offset:], chunk)
		offset += len(chunk)
	}

	if len(*out) == previousLen {
		*out = append(*out, Packet{SourceID: sourceID, DestinationID: destinationID})
		offset = 0
	}

	finalizePacket(&(*out)[len(*out)-1], offset)
	return StatusOK
}

// Unpack walks each packet from its header, reading chunk sizes and
// copying each chunk into a freshly allocated buffer appended to out.
// Processing of a packet stops at the first zero-size chunk or at the
// first malformed chunk; errors from different packets accumulate via
// bitwise OR and do not stop processing of the remaining packets.
func Unpack(packets []Packet, out *[][]byte) Status {
	var status Status

	for _, p := range packets {
		if p.Size == 0 {
			continue
		}
		if p.Size < nPacketMessages || p.Size > PacketSize {
			status |= StatusInvalidPacketSize
			continue
		}

		offset := nPacketMessages
		for offset+MessageHeaderSize <= p.Size {
			size, _ := ReadMessageSize(p.Data[offset:p.Size])
			if size == 0 {
				break
			}
			if offset+size > p.Size {
				status |= StatusInvalidMessageSize
				break
			}

			chunk := make([]byte, size)
			copy(chunk, p.Data[offset:offset+size])
			*out = append(*out, chunk)

			offset += size
		}
	}

	return status
}
