package warpgraph

// rng is a mulberry32 stream. The mixing steps must stay bit-identical so that
// any process given the same seed rebuilds the same topology.
type rng struct {
	state uint32
}

func newRNG(seed int64) *rng {
	return &rng{state: uint32(seed)}
}

// Float returns the next value in [0,1).
func (r *rng) Float() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a value in [0,n). n must be positive.
func (r *rng) Intn(n int) int {
	return int(r.Float() * float64(n))
}

// Shuffle permutes ids in place (Fisher-Yates, high index first).
func (r *rng) Shuffle(ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

func (r *rng) pick(ids []int) int {
	return ids[r.Intn(len(ids))]
}
