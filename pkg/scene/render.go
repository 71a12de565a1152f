package scene

import (
	"sync"
	"time"
)

// Render integrates every pixel and returns the finished frame. Rows are
// distributed across a pool of workers; each row draws from its own random
// stream and writes a disjoint slice of the buffer, so no locking is
// needed and the output is identical for any worker count. Render cannot
// fail: all failure surfaces live in configuration (New) and in the sink.
func (s *Scene) Render() *Frame {
	start := time.Now()
	frame := newFrame(s.width, s.height)

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				s.renderRow(frame, y)
			}
		}()
	}
	for y := 0; y < s.height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	logger().Debug("render complete",
		"width", s.width,
		"height", s.height,
		"samples", s.cfg.sampleCount,
		"max_step", s.cfg.maxStep,
		"workers", s.cfg.workers,
		"elapsed", time.Since(start),
	)
	return frame
}

// renderRow integrates one pixel row into the frame.
func (s *Scene) renderRow(frame *Frame, y int) {
	src := s.cfg.streams(int64(y))
	fy := float64(y)
	for x := 0; x < s.width; x++ {
		frame.set(x, y, quantize(s.samplePixel(float64(x), fy, src)))
	}
}
