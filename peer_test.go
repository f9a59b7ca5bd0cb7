package peer

import (
	"testing"

	"github.com/sessionwire/peer/internal/wire"
	"github.com/stretchr/testify/require"
)

const (
	hostID    int64 = 1
	clientAID int64 = 10
	clientBID int64 = 20
)

func connectClient(t *testing.T, host, client *Peer, clientLocalID int64) {
	t.Helper()

	require.True(t, client.Open([]int64{clientLocalID}).OK())
	require.True(t, client.Connect(hostID).OK())

	st, probes := client.Tick(10)
	require.True(t, st.OK())
	require.Len(t, probes, 1)

	require.True(t, host.Input(probes).OK())

	st, responses := host.Tick(10)
	require.True(t, st.OK())
	require.NotEmpty(t, responses)

	require.True(t, client.Input(responses).OK())
}

func TestHostClientHandshake(t *testing.T) {
	host := New(Host)
	client := New(Client)
	require.True(t, host.Open([]int64{hostID, hostID}).OK()) // self + capacity slot

	connectClient(t, host, client, clientAID)

	require.Equal(t, SlotReady, host.Slot(1).State)
	require.Equal(t, int64(1), client.Actor())
}

func TestIncrementalDelivery(t *testing.T) {
	host := New(Host)
	client := New(Client)
	require.True(t, host.Open([]int64{hostID, hostID}).OK())
	connectClient(t, host, client, clientAID)

	idx, st := host.Queue([]byte("first"))
	require.True(t, st.OK())
	require.Equal(t, int64(0), idx)

	st, packets := host.Tick(10)
	require.True(t, st.OK())
	require.NotEmpty(t, packets)

	require.True(t, client.Input(packets).OK())

	e, ok := client.mutualQueue.At(0)
	require.True(t, ok)
	require.Equal(t, "first", string(e.Data))
	require.Equal(t, int64(0), e.Actor)

	idx, st = host.Queue([]byte("second"))
	require.True(t, st.OK())
	require.Equal(t, int64(1), idx)

	st, packets = host.Tick(10)
	require.True(t, st.OK())
	require.True(t, client.Input(packets).OK())

	e, ok = client.mutualQueue.At(1)
	require.True(t, ok)
	require.Equal(t, "second", string(e.Data))
}

func TestClientToClientFanout(t *testing.T) {
	host := New(Host)
	clientA := New(Client)
	clientB := New(Client)

	require.True(t, host.Open([]int64{hostID, hostID, hostID}).OK()) // self + two capacity slots
	connectClient(t, host, clientA, clientAID)
	connectClient(t, host, clientB, clientBID)

	require.Equal(t, int64(1), clientA.Actor())
	require.Equal(t, int64(2), clientB.Actor())

	_, st := clientA.Queue([]byte("hi from A"))
	require.True(t, st.OK())

	st, outA := clientA.Tick(10)
	require.True(t, st.OK())
	require.True(t, host.Input(outA).OK())

	st, relayed := host.Tick(10)
	require.True(t, st.OK())
	require.NotEmpty(t, relayed)

	require.True(t, clientB.Input(relayed).OK())
	require.True(t, clientA.Input(relayed).OK())

	e, ok := clientB.mutualQueue.At(0)
	require.True(t, ok)
	require.Equal(t, "hi from A", string(e.Data))
	require.Equal(t, int64(1), e.Actor)
}

func TestHostMergesOnlyWhatIsReady(t *testing.T) {
	host := New(Host)
	client := New(Client)
	require.True(t, host.Open([]int64{hostID, hostID}).OK())
	connectClient(t, host, client, clientAID)

	_, st := client.Queue([]byte("a"))
	require.True(t, st.OK())
	st, out := client.Tick(10)
	require.True(t, st.OK())
	require.True(t, host.Input(out).OK())

	st, _ = host.Tick(10)
	require.True(t, st.OK())
	require.Equal(t, int64(1), host.mutualQueue.Len())
	require.Equal(t, host.mutualQueue.Len(), host.Slot(1).OutIndex)
}

func TestTickNegativeDtRejectedWithoutMutation(t *testing.T) {
	host := New(Host)
	before := host.TimeLocal()
	st, packets := host.Tick(-1)
	require.True(t, st.Has(wire.StatusInvalidTimeElapsed))
	require.Nil(t, packets)
	require.Equal(t, before, host.TimeLocal())
}

func TestTimeMutualMonotonic(t *testing.T) {
	host := New(Host)
	client := New(Client)
	require.True(t, host.Open([]int64{hostID, hostID}).OK())
	connectClient(t, host, client, clientAID)

	prev := client.TimeMutual()
	for i := 0; i < 5; i++ {
		_, st := host.Queue([]byte("x"))
		require.True(t, st.OK())
		st2, packets := host.Tick(10)
		require.True(t, st2.OK())
		require.True(t, client.Input(packets).OK())
		require.GreaterOrEqual(t, client.TimeMutual(), prev)
		prev = client.TimeMutual()
	}
}
