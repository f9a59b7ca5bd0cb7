// Package udptransport is the reference socket adapter for cmd/peerd: it
// turns the session engine's opaque int64 endpoint ids into a real UDP
// socket and address table. The core protocol package never imports
// net; this glue is demo-only; a production embedder is free to use
// any carrier (QUIC, a test double, a game engine's own socket).
package udptransport

import (
	"net"
	"sync"

	"github.com/sessionwire/peer/internal/wire"
)

// Pool binds one UDP socket and maps endpoint ids to net.UDPAddrs, the
// way the session engine's Packet.SourceID/DestinationID expect: an
// opaque handle the transport alone resolves. Grounded on the
// mutex-guarded conn/address-table shape of a reference connectionless
// UDP listener; this trims away that listener's encryption and
// request/reply bookkeeping, which belong to a different protocol.
type Pool struct {
	mu   sync.RWMutex
	conn *net.UDPConn

	nextID  int64
	byID    map[int64]*net.UDPAddr
	byAddr  map[string]int64
	localID int64
}

// ResolveAddr parses a "host:port" string into a UDP address, for a
// client that needs to register the host's address before connecting.
func ResolveAddr(addr string) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", addr)
}

// Listen opens a UDP socket at addr (e.g. ":9000") and assigns it
// localID, the endpoint id the caller should pass to peer.Open.
func Listen(addr string, localID int64) (*Pool, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &Pool{
		conn:    conn,
		byID:    make(map[int64]*net.UDPAddr),
		byAddr:  make(map[string]int64),
		localID: localID,
		nextID:  1,
	}, nil
}

// Close releases the underlying socket.
func (p *Pool) Close() error {
	return p.conn.Close()
}

// LocalID is the endpoint id this pool's own socket was assigned.
func (p *Pool) LocalID() int64 { return p.localID }

// ResolveID returns the endpoint id assigned to addr, allocating a new
// one on first sight. The session engine treats this id as an opaque
// remote handle; this is the one place it is linked back to a real
// network address.
func (p *Pool) ResolveID(addr *net.UDPAddr) int64 {
	key := addr.String()

	p.mu.RLock()
	id, ok := p.byAddr[key]
	p.mu.RUnlock()
	if ok {
		return id
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.byAddr[key]; ok {
		return id
	}
	id = p.nextID
	p.nextID++
	p.byAddr[key] = id
	p.byID[id] = addr
	return id
}

// AddrOf returns the network address registered for id, if any.
func (p *Pool) AddrOf(id int64) (*net.UDPAddr, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	addr, ok := p.byID[id]
	return addr, ok
}

// Receive blocks for one datagram, resolves its source into an
// endpoint id, and decodes it into a wire.Packet addressed to this
// pool's local id.
func (p *Pool) Receive() (wire.Packet, error) {
	var buf [wire.PacketSize]byte
	n, addr, err := p.conn.ReadFromUDP(buf[:])
	if err != nil {
		return wire.Packet{}, err
	}

	sourceID := p.ResolveID(addr)

	var pkt wire.Packet
	pkt.SourceID = sourceID
	pkt.DestinationID = p.localID
	pkt.Size = n
	copy(pkt.Data[:], buf[:n])
	return pkt, nil
}

// Send writes pkt's used bytes to the address registered for its
// DestinationID. A caller sends a reply with DestinationID set to the
// remote id it read the request's SourceID as.
func (p *Pool) Send(pkt wire.Packet) error {
	addr, ok := p.AddrOf(pkt.DestinationID)
	if !ok {
		return net.InvalidAddrError("no address registered for endpoint id")
	}
	_, err := p.conn.WriteToUDP(pkt.Data[:pkt.Size], addr)
	return err
}
