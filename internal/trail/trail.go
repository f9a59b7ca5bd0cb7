package trail

const (
	// SerialSize is the number of most-recent messages serially resent.
	SerialSize int64 = 5
	// ScatterSize is the number of randomly sampled older messages resent.
	ScatterSize int64 = 5
	// ScatterDistance bounds how far back a scatter sample may reach.
	ScatterDistance int64 = 100
	// ReferenceSeed is the fixed seed used across implementations so
	// scatter sampling stays bit-identical given the same history.
	ReferenceSeed uint64 = 12345
)

// PRNG is the session's deterministic source of scatter-trail indices.
type PRNG struct {
	gen *mt64
}

// NewPRNG returns a PRNG seeded deterministically. Every Peer in a session
// must seed with the same value (ReferenceSeed, unless a test harness
// overrides it) to keep scatter sampling reproducible.
func NewPRNG(seed uint64) *PRNG {
	return &PRNG{gen: newMT64(seed)}
}

// Intn returns a pseudo-random value in [0, n).
func (p *PRNG) Intn(n int64) int64 {
	return p.gen.Intn(n)
}

// Select returns the prior-message indices to append to an outbound batch
// starting at source index i, drawn from a queue of length n (n >= i):
// first the serial trail (most recent k messages before i, oldest first),
// then the scatter trail (uniformly sampled with replacement from
// [i-ScatterDistance, i-k)). Returns nil if i == 0 (nothing precedes it).
func Select(n, i int64, prng *PRNG) []int64 {
	if i <= 0 {
		return nil
	}

	k := SerialSize
	if k > i {
		k = i
	}
	if i-k < ScatterDistance && k > i {
		return nil
	}

	var out []int64
	for j := i - k; j < i; j++ {
		out = append(out, j)
	}

	lo := i - ScatterDistance
	if lo < 0 {
		lo = 0
	}
	hi := i - k
	span := hi - lo
	s := ScatterSize
	if s > ScatterDistance {
		s = ScatterDistance
	}
	if s > span {
		s = span
	}
	for j := int64(0); j < s; j++ {
		out = append(out, lo+prng.Intn(span))
	}

	return out
}
