// Package scene turns a frozen shape tree into a rendered greyscale frame
// by Monte-Carlo sphere tracing: every pixel shoots stratified random rays
// in all directions and averages the emission of the surfaces they reach.
package scene

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/glowfield/lumen/pkg/geometry"
)

// Rendering defaults.
const (
	DefaultSampleCount = 64
	DefaultMaxStep     = 10
)

// Epsilon is the hit threshold: a march ends on a surface once the queried
// distance drops below it.
const Epsilon = 1e-6

// ErrInvalidConfig reports a scene configuration rejected before any
// rendering work begins.
var ErrInvalidConfig = errors.New("scene: invalid config")

type config struct {
	sampleCount int
	maxStep     int
	workers     int
	seed        int64
	streams     StreamFunc
}

// Option configures a Scene at construction.
type Option func(*config)

// WithSampleCount sets the number of ray directions drawn per pixel.
func WithSampleCount(n int) Option {
	return func(c *config) { c.sampleCount = n }
}

// WithMaxStep caps the sphere-tracing iterations per sample.
func WithMaxStep(n int) Option {
	return func(c *config) { c.maxStep = n }
}

// WithWorkers sets the number of render goroutines. Values below 1 select
// one worker per CPU. The worker count never changes the rendered output.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithSeed fixes the base seed of the per-row random streams, making the
// render reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithStreams replaces the random source entirely. The function is called
// once per pixel row with the row index and must return an independent
// Source. Overrides WithSeed.
func WithStreams(fn StreamFunc) Option {
	return func(c *config) { c.streams = fn }
}

// Scene owns a frozen shape tree plus the configuration for exactly one
// render. It is immutable once constructed: Render only reads it, so a
// Scene is safe for concurrent queries but is meant to produce a single
// output.
type Scene struct {
	root    geometry.Shape
	width   int
	height  int
	cfg     config
	maxDist float64
}

// New validates the configuration and returns a Scene ready to render.
// The scene takes ownership of root; callers must not mutate the tree
// afterwards.
func New(root geometry.Shape, width, height int, opts ...Option) (*Scene, error) {
	cfg := config{
		sampleCount: DefaultSampleCount,
		maxStep:     DefaultMaxStep,
		workers:     runtime.NumCPU(),
		seed:        time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if root == nil {
		return nil, fmt.Errorf("%w: nil root shape", ErrInvalidConfig)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, width, height)
	}
	if cfg.sampleCount <= 0 {
		return nil, fmt.Errorf("%w: sample count %d", ErrInvalidConfig, cfg.sampleCount)
	}
	if cfg.maxStep <= 0 {
		return nil, fmt.Errorf("%w: max step %d", ErrInvalidConfig, cfg.maxStep)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.streams == nil {
		cfg.streams = randStreams(cfg.seed)
	}

	return &Scene{
		root:    root,
		width:   width,
		height:  height,
		cfg:     cfg,
		maxDist: math.Hypot(float64(width), float64(height)),
	}, nil
}

// Width returns the configured frame width in pixels.
func (s *Scene) Width() int { return s.width }

// Height returns the configured frame height in pixels.
func (s *Scene) Height() int { return s.height }
