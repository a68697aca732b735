// Package config holds the small mutex-guarded settings structs this
// module is tuned with, grounded on the teacher's internal/config
// package (RenderSettings's getter/setter shape). Unlike the teacher,
// every instance here is an explicit value owned by whatever constructs
// it — never a package-level var — per spec.md §9's "re-architect
// implicit globals" design note.
package config

import "sync"

// StreamingConfig tunes chunk-window sizing and the worker pool that
// lights and meshes the chunks the window requests.
type StreamingConfig struct {
	mu sync.RWMutex

	visibilityRadius int
	columnMinY       int
	columnMaxY       int
	workerCount      int
	queueSize        int
}

// DefaultStreamingConfig returns a StreamingConfig with values sized for
// a single local server: an 8-chunk visibility radius, a five-chunk
// vertical column span (chunk Y -2 through 2), and a worker pool of 4.
func DefaultStreamingConfig() *StreamingConfig {
	return &StreamingConfig{
		visibilityRadius: 8,
		columnMinY:       -2,
		columnMaxY:       2,
		workerCount:      4,
		queueSize:        256,
	}
}

func (c *StreamingConfig) VisibilityRadius() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visibilityRadius
}

// SetVisibilityRadius clamps distance to [2, 32] before storing it —
// below 2 the streaming window can't see past the camera's own chunk,
// above 32 a single worker pool can't keep the window resident.
func (c *StreamingConfig) SetVisibilityRadius(radius int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if radius < 2 {
		radius = 2
	}
	if radius > 32 {
		radius = 32
	}
	c.visibilityRadius = radius
}

func (c *StreamingConfig) ColumnRange() (minY, maxY int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.columnMinY, c.columnMaxY
}

func (c *StreamingConfig) SetColumnRange(minY, maxY int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	c.columnMinY, c.columnMaxY = minY, maxY
}

func (c *StreamingConfig) WorkerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.workerCount
}

func (c *StreamingConfig) SetWorkerCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	c.workerCount = n
}

func (c *StreamingConfig) QueueSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queueSize
}

func (c *StreamingConfig) SetQueueSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	c.queueSize = n
}

// VisibilityConfig tunes the cave-culling BFS (spec.md §4.9).
type VisibilityConfig struct {
	mu sync.RWMutex

	radius     int
	backCull   bool
	useFrustum bool
}

// DefaultVisibilityConfig matches the streaming visibility radius with
// back-face culling and frustum testing both enabled.
func DefaultVisibilityConfig() *VisibilityConfig {
	return &VisibilityConfig{
		radius:     8,
		backCull:   true,
		useFrustum: true,
	}
}

func (c *VisibilityConfig) Radius() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.radius
}

func (c *VisibilityConfig) SetRadius(radius int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if radius < 1 {
		radius = 1
	}
	c.radius = radius
}

func (c *VisibilityConfig) BackCullEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backCull
}

func (c *VisibilityConfig) SetBackCullEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backCull = enabled
}

func (c *VisibilityConfig) FrustumEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.useFrustum
}

func (c *VisibilityConfig) SetFrustumEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.useFrustum = enabled
}

