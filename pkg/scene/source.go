package scene

import "math/rand"

// Source yields uniform variates in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// StreamFunc returns an independent Source for the given stream index.
// Render draws one stream per pixel row, so the output depends only on the
// streams and never on worker count or scheduling.
type StreamFunc func(stream int64) Source

// randStreams derives per-stream generators from a base seed.
func randStreams(seed int64) StreamFunc {
	return func(stream int64) Source {
		return rand.New(rand.NewSource(seed + stream))
	}
}
