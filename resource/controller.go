// Package resource provides a memory budget for grid allocations.
//
// A Controller tracks bytes reserved by live grids against a hard limit,
// optionally throttles allocation bursts, and combines the budget with the
// sysmem probe for admission decisions. It implements gridmem.MemoryAcquirer.
package resource

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/gridmem/sysmem"
)

var (
	// ErrMemoryLimitExceeded is returned when the memory limit would be exceeded.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrAllocRateExceeded is returned when the allocation rate limit is hit.
	ErrAllocRateExceeded = errors.New("allocation rate exceeded")
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// AllocBytesPerSec throttles how many bytes may be reserved per second.
	// If 0, unlimited.
	AllocBytesPerSec int64

	// IOLimitBytesPerSec is the maximum IO throughput for snapshot reads and
	// writes performed under this controller. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages the memory budget for grids.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Allocation throttling
	allocLimiter *rate.Limiter

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.AllocBytesPerSec > 0 {
		c.allocLimiter = rate.NewLimiter(rate.Limit(cfg.AllocBytesPerSec), int(cfg.AllocBytesPerSec))
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if the limit would be exceeded and
// ErrAllocRateExceeded if the allocation rate limit is hit.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.allocLimiter != nil && !c.allocLimiter.AllowN(time.Now(), int(bytes)) {
		return ErrAllocRateExceeded
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// Admit reports whether requested bytes fit both the remaining budget and
// the given fraction of currently available physical memory.
//
// Admit does not reserve anything; it is the pre-flight check callers run
// before Alloc on large grids.
func (c *Controller) Admit(requested uint64, fraction float64) bool {
	if c != nil && c.cfg.MemoryLimitBytes > 0 {
		remaining := c.cfg.MemoryLimitBytes - c.memUsed.Load()
		if remaining < 0 || requested > uint64(remaining) {
			return false
		}
	}

	return sysmem.Available(requested, fraction)
}
