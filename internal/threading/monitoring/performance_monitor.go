package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLowFPSThreshold is the frame rate below which an alert is raised.
const DefaultLowFPSThreshold = 30

// PerformanceMonitor tracks frame and ray casting timings
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	frameTotal atomic.Uint64 // nanoseconds, all frames

	// Rendering metrics
	raycastTime  atomic.Uint64
	raycastCount atomic.Uint64
	raycastTotal atomic.Uint64
	columnsCast  atomic.Uint64 // last frame

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	// Configuration
	enableDetailed  bool
	lowFPSThreshold float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:       time.Now(),
		enableDetailed:  true,
		lowFPSThreshold: DefaultLowFPSThreshold,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	pm.frameTime.Store(ns)
	total := pm.frameTotal.Add(ns)
	count := pm.frameCount.Add(1)

	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgFrameTime = float64(total) / float64(count)
		pm.mutex.Unlock()
	}
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing for a pass that cast columns rays.
func (rt *RaycastTimer) EndRaycast(columns int) {
	pm := rt.monitor
	ns := uint64(time.Since(rt.startTime).Nanoseconds())
	pm.raycastTime.Store(ns)
	pm.columnsCast.Store(uint64(columns))
	total := pm.raycastTotal.Add(ns)
	count := pm.raycastCount.Add(1)

	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgRaycastTime = float64(total) / float64(count)
		pm.mutex.Unlock()
	}
}

// RenderMetrics is a snapshot of the monitor's counters
type RenderMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	ColumnsPerFrame uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	frameTime := pm.frameTime.Load()
	return RenderMetrics{
		FramesPerSecond: fpsFromNanos(frameTime),
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		ColumnsPerFrame: pm.columnsCast.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"current_fps":         fpsFromNanos(pm.frameTime.Load()),
		"columns_cast":        pm.columnsCast.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":       memStats.Sys / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// SetLowFPSThreshold changes the frame rate that triggers a low_fps alert.
func (pm *PerformanceMonitor) SetLowFPSThreshold(fps float64) {
	pm.mutex.Lock()
	pm.lowFPSThreshold = fps
	pm.mutex.Unlock()
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	pm.mutex.RLock()
	threshold := pm.lowFPSThreshold
	pm.mutex.RUnlock()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		if fps := fpsFromNanos(frameTime); fps < threshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: threshold,
				Timestamp: now,
			})
		}
	}

	frameTime := pm.frameTime.Load()
	raycastTime := pm.raycastTime.Load()
	if frameTime > 0 && raycastTime > frameTime*9/10 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "raycast_bound",
			Message:   "Ray casting takes over 90% of the frame",
			Value:     float64(raycastTime) / float64(frameTime),
			Threshold: 0.9,
			Timestamp: now,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.frameTotal.Store(0)
	pm.raycastTime.Store(0)
	pm.raycastCount.Store(0)
	pm.raycastTotal.Store(0)
	pm.columnsCast.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

func fpsFromNanos(ns uint64) float64 {
	if ns == 0 {
		return 0
	}
	return 1e9 / float64(ns)
}
