package hal

// Averaging wraps an analog input and returns the rounded mean of n
// consecutive reads. It trades a little latency for less ADC noise.
type Averaging struct {
	in Analog
	n  int
}

// NewAveraging creates an averaging filter over in. A window below 2
// returns in unchanged.
func NewAveraging(in Analog, n int) Analog {
	if n < 2 {
		return in
	}
	return &Averaging{in: in, n: n}
}

// Read samples the wrapped input n times.
func (a *Averaging) Read() uint16 {
	var sum uint32
	for range a.n {
		sum += uint32(a.in.Read())
	}
	return uint16((sum + uint32(a.n)/2) / uint32(a.n)) // Round to nearest
}
