package wire

import (
	"bytes"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	chunk, status := EncodeMessage(ModeApplication, 7, 1000, 2, data)
	if !status.OK() {
		t.Fatalf("EncodeMessage status = %v, want OK", status)
	}
	if len(chunk) != MessageHeaderSize+len(data) {
		t.Fatalf("encoded size = %d, want %d", len(chunk), MessageHeaderSize+len(data))
	}

	msg, status := DecodeMessage(chunk)
	if !status.OK() {
		t.Fatalf("DecodeMessage status = %v, want OK", status)
	}
	if msg.Index != 7 || msg.Time != 1000 || msg.Actor != 2 || msg.Mode != ModeApplication {
		t.Errorf("decoded fields = %+v", msg)
	}
	if !bytes.Equal(msg.Data, data) {
		t.Errorf("decoded data = %v, want %v", msg.Data, data)
	}
}

func TestMessageServiceUndefinedIndex(t *testing.T) {
	chunk, status := EncodeMessage(ModeService, Undefined, 0, Undefined, nil)
	if !status.OK() {
		t.Fatalf("EncodeMessage status = %v, want OK", status)
	}
	msg, status := DecodeMessage(chunk)
	if !status.OK() {
		t.Fatalf("DecodeMessage status = %v, want OK", status)
	}
	if msg.Index != Undefined || msg.Actor != Undefined {
		t.Errorf("msg = %+v, want Index/Actor == Undefined", msg)
	}
}

func TestMessageMaxPayloadFitsAlone(t *testing.T) {
	data := make([]byte, MaxMessagePayload)
	_, status := EncodeMessage(ModeApplication, 0, 0, 0, data)
	if !status.OK() {
		t.Errorf("EncodeMessage at max payload status = %v, want OK", status)
	}
}

func TestMessageOverPayloadRejected(t *testing.T) {
	data := make([]byte, MaxMessagePayload+1)
	_, status := EncodeMessage(ModeApplication, 0, 0, 0, data)
	if status.OK() {
		t.Error("EncodeMessage over max payload should be rejected")
	}
}

func TestMessageNegativeActorWidensCorrectly(t *testing.T) {
	chunk, status := EncodeMessage(ModeApplication, 0, 0, -1, []byte{9})
	if !status.OK() {
		t.Fatalf("EncodeMessage status = %v", status)
	}
	msg, _ := DecodeMessage(chunk)
	if msg.Actor != -1 {
		t.Errorf("actor = %d, want -1", msg.Actor)
	}
}
