package wire

import "testing"

func mustChunk(t *testing.T, dataSize int) []byte {
	t.Helper()
	chunk, status := EncodeMessage(ModeApplication, 0, 0, 0, make([]byte, dataSize))
	if !status.OK() {
		t.Fatalf("EncodeMessage(%d) status = %v", dataSize, status)
	}
	return chunk
}

func TestPackEmptyYieldsOnePacket(t *testing.T) {
	var packets []Packet
	status := Pack(0, 1, nil, &packets)
	if !status.OK() {
		t.Fatalf("Pack status = %v", status)
	}
	if len(packets) != 1 {
		t.Fatalf("len(packets) = %d, want 1", len(packets))
	}
	if packets[0].Size != 0 {
		t.Errorf("packets[0].Size = %d, want 0", packets[0].Size)
	}

	var chunks [][]byte
	if status := Unpack(packets, &chunks); !status.OK() {
		t.Errorf("Unpack status = %v", status)
	}
	if len(chunks) != 0 {
		t.Errorf("len(chunks) = %d, want 0", len(chunks))
	}
}

func TestPackUnpackThreeChunks(t *testing.T) {
	sizes := []int{30, 32, 34} // total wire sizes, header-only through +4 bytes
	var in [][]byte
	for _, size := range sizes {
		in = append(in, mustChunk(t, size-MessageHeaderSize))
	}

	var packets []Packet
	if status := Pack(0, 1, in, &packets); !status.OK() {
		t.Fatalf("Pack status = %v", status)
	}

	var out [][]byte
	if status := Unpack(packets, &out); !status.OK() {
		t.Fatalf("Unpack status = %v", status)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	for i := range in {
		if string(out[i]) != string(in[i]) {
			t.Errorf("chunk %d mismatch", i)
		}
	}
}

func TestPackUnpackManyChunksSpanPackets(t *testing.T) {
	var in [][]byte
	for i := 0; i < 10; i++ {
		in = append(in, mustChunk(t, 200-MessageHeaderSize))
	}

	var packets []Packet
	if status := Pack(0, 1, in, &packets); !status.OK() {
		t.Fatalf("Pack status = %v", status)
	}
	if len(packets) < 2 {
		t.Fatalf("expected chunks to span multiple packets, got %d", len(packets))
	}

	var out [][]byte
	if status := Unpack(packets, &out); !status.OK() {
		t.Fatalf("Unpack status = %v", status)
	}
	if len(out) != 10 {
		t.Fatalf("len(out) = %d, want 10", len(out))
	}
	for i := range in {
		if string(out[i]) != string(in[i]) {
			t.Errorf("chunk %d mismatch", i)
		}
	}
}

func TestPackChunkFillsPacketExactly(t *testing.T) {
	chunk := mustChunk(t, MaxMessagePayload) // 355 + 30 header = 385 = 400 - 15
	var packets []Packet
	if status := Pack(0, 1, [][]byte{chunk}, &packets); !status.OK() {
		t.Fatalf("Pack status = %v", status)
	}
	if len(packets) != 1 {
		t.Fatalf("len(packets) = %d, want 1", len(packets))
	}
	if packets[0].Size != PacketSize {
		t.Errorf("packets[0].Size = %d, want %d", packets[0].Size, PacketSize)
	}
}

func TestPackRejectsMismatchedDeclaredSize(t *testing.T) {
	chunk := mustChunk(t, 10)
	chunk = append(chunk, 0xFF) // now longer than its declared size field
	var packets []Packet
	status := Pack(0, 1, [][]byte{chunk}, &packets)
	if !status.Has(StatusInvalidMessageSize) {
		t.Errorf("status = %v, want InvalidMessageSize", status)
	}
}
