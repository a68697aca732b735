package build

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/sdf"
)

// Result mirrors the wire result codes of spec.md §6.
type Result uint8

const (
	ResultSuccess Result = iota
	ResultTooFar
	ResultNoPermission
	ResultCollision
	ResultInvalidConfig
	ResultRateLimited
)

// ValidationConfig holds server-side build validation limits, an
// explicit handle (spec.md §9: no implicit globals) rather than a
// package-level settings struct like the teacher's internal/config.
type ValidationConfig struct {
	MaxReachMeters float32
	MaxSizeMeters  float32
	RateLimitHz    float64
}

// DefaultValidationConfig returns the spec's suggested defaults: no
// explicit reach cap is given by spec.md beyond "a configured cap", so
// this uses a generous default tuned to the build-preview reach used by
// the teacher's physics.MaxReachDistance times a margin for server-side
// slack.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxReachMeters: 8,
		MaxSizeMeters:  20,
		RateLimitHz:    10,
	}
}

// RateLimiter is a per-player token bucket, grounded on the teacher's
// internal/config mutex-guarded settings-struct shape but owned
// explicitly by the caller instead of living at package scope.
type RateLimiter struct {
	mu      sync.Mutex
	rateHz  float64
	tokens  map[uint16]float64
	lastFed map[uint16]time.Time
}

// NewRateLimiter creates a limiter allowing rateHz operations/second/player.
func NewRateLimiter(rateHz float64) *RateLimiter {
	return &RateLimiter{
		rateHz:  rateHz,
		tokens:  make(map[uint16]float64),
		lastFed: make(map[uint16]time.Time),
	}
}

// Allow reports whether playerID may perform one more build operation
// now, consuming a token if so.
func (r *RateLimiter) Allow(playerID uint16, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.lastFed[playerID]
	if !ok {
		r.tokens[playerID] = r.rateHz
		r.lastFed[playerID] = now
	} else {
		elapsed := now.Sub(last).Seconds()
		r.tokens[playerID] = minf64(r.rateHz, r.tokens[playerID]+elapsed*r.rateHz)
		r.lastFed[playerID] = now
	}

	if r.tokens[playerID] < 1 {
		return false
	}
	r.tokens[playerID]--
	return true
}

func minf64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Validate applies the server-side validation contract of spec.md §6:
// reach distance, size bounds, and rate limiting. It does not apply the
// op; callers apply it only after a Result of ResultSuccess.
func Validate(cfg ValidationConfig, limiter *RateLimiter, playerID uint16, playerPos mgl32.Vec3, op Op, now time.Time) Result {
	if op.Center.Sub(playerPos).Len() > cfg.MaxReachMeters {
		return ResultTooFar
	}

	s := op.Shape.Size
	if s.X() <= 0 || s.X() > cfg.MaxSizeMeters {
		return ResultInvalidConfig
	}
	if s.Y() <= 0 || s.Y() > cfg.MaxSizeMeters {
		return ResultInvalidConfig
	}
	// Cylinders and spheres don't require size.Z to be positive
	// (spec.md §6): size.Z only carries meaning for cube/prism there.
	isRotational := op.Shape.Shape == sdf.ShapeCylinder || op.Shape.Shape == sdf.ShapeSphere
	if !isRotational && (s.Z() <= 0 || s.Z() > cfg.MaxSizeMeters) {
		return ResultInvalidConfig
	}
	if isRotational && (s.Z() < 0 || s.Z() > cfg.MaxSizeMeters) {
		return ResultInvalidConfig
	}

	if limiter != nil && !limiter.Allow(playerID, now) {
		return ResultRateLimited
	}

	return ResultSuccess
}
