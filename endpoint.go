package peer

// AddressSize bounds the opaque transport address buffer carried by an
// Endpoint (big enough for an IPv4 or IPv6 address plus port).
const AddressSize = 64

// Endpoint identifies one side of a slot's connection: an opaque id the
// transport resolves to a concrete socket/address, plus the address bytes
// themselves once resolved.
type Endpoint struct {
	ID              int64
	IDResolved      bool
	AddressResolved bool
	Address         []byte
}

func newEndpoint() Endpoint {
	return Endpoint{ID: Undefined}
}
