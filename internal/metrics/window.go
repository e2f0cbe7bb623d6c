package metrics

// DefaultWindowSize is the default number of samples per metric channel.
const DefaultWindowSize = 40

// Window is a fixed-length rolling sequence of samples, oldest first.
// It is created zero-filled so charts render immediately, and its length
// never changes: a push appends on the right and evicts on the left.
type Window []float64

// NewWindow creates a zero-filled window of n samples.
func NewWindow(n int) Window {
	if n < 1 {
		n = DefaultWindowSize
	}
	return make(Window, n)
}

// Push returns a new window of identical length with value appended and the
// oldest sample dropped. The receiver is not modified.
func (w Window) Push(value float64) Window {
	next := make(Window, len(w))
	copy(next, w[1:])
	next[len(next)-1] = value
	return next
}

// Last returns the most recent sample, the "current value" readout.
func (w Window) Last() float64 {
	if len(w) == 0 {
		return 0
	}
	return w[len(w)-1]
}

// Values exposes the samples for rendering, oldest first.
func (w Window) Values() []float64 {
	return []float64(w)
}
