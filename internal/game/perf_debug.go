package game

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.perfDebugEnabled {
		return
	}
	fps := ebiten.ActualFPS()
	if gl.shouldLogPerf(fps, time.Now()) {
		gl.logPerfSnapshot(fps)
	}
}

// shouldLogPerf reports whether fps has stayed under the quality band for
// perfLowFpsDuration, at most once per perfLogInterval.
func (gl *GameLoop) shouldLogPerf(fps float64, now time.Time) bool {
	g := gl.game
	if fps >= g.config.Quality.TargetFPSLow {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return false
	}

	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return false
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return false
	}

	g.perfLastPerfLog = now
	return true
}

// perfCauses lists the likely reasons for a frame rate drop.
func (gl *GameLoop) perfCauses() []string {
	g := gl.game
	q := g.session.Quality()
	causes := make([]string, 0, 6)
	if q.Stride() >= g.config.Quality.MaxStride {
		causes = append(causes, fmt.Sprintf("stride at max (%d)", q.Stride()))
	}
	if q.FOV() > g.config.Quality.BaseFOV {
		causes = append(causes, fmt.Sprintf("wide fov (%.0f)", q.FOV()))
	}
	if dots := g.session.Minimap().DotCount(); dots > 5000 {
		causes = append(causes, fmt.Sprintf("minimap dots (%d)", dots))
	}
	if !g.config.Render.Parallel {
		causes = append(causes, "serial rendering")
	}
	if g.menu.IsOpen() {
		causes = append(causes, "menu open")
	}
	for _, alert := range g.threading.CheckPerformanceAlerts() {
		causes = append(causes, fmt.Sprintf("%s (%.2f)", alert.Type, alert.Value))
	}
	return causes
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	tps := ebiten.ActualTPS()
	stats := gl.game.threading.GetDetailedPerformanceStats()
	avgFrameMs := getPerfFloat(stats, "avg_frame_time_ms")
	avgRaycastMs := getPerfFloat(stats, "avg_raycast_time_ms")
	columns := getPerfUint(stats, "columns_cast")
	goroutines := getPerfInt(stats, "goroutines")
	memAllocMB := getPerfUint(stats, "memory_alloc_mb")
	memSysMB := getPerfUint(stats, "memory_sys_mb")
	gcCycles := getPerfUint(stats, "gc_cycles")

	s := gl.game.session
	grid := s.Level().Grid
	q := s.Quality()
	workers := 0
	if pr := gl.game.threading.ParallelRenderer; pr != nil {
		workers = pr.Workers()
	}

	causeText := "none obvious"
	if causes := gl.perfCauses(); len(causes) > 0 {
		causeText = strings.Join(causes, ", ")
	}

	fmt.Printf(
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f causes=%s\n",
		gl.game.config.Quality.TargetFPSLow,
		perfLowFpsDuration,
		fps,
		tps,
		causeText,
	)
	fmt.Printf(
		"[PERF] level=%s grid=%dx%d stride=%d fov=%.0f columns=%d dots=%d offset_rebuilds=%d\n",
		s.Level().Name,
		grid.Width(),
		grid.Height(),
		q.Stride(),
		q.FOV(),
		columns,
		s.Minimap().DotCount(),
		s.Renderer().OffsetRebuilds(),
	)
	fmt.Printf(
		"[PERF] update=%.2fms draw=%.2fms busy=%.2fms budget=%.2fms idle=%.2fms avg_frame=%.2fms avg_raycast=%.2fms workers=%d cpus=%d goroutines=%d vsync=%v\n",
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		(float64(gl.lastUpdateDuration.Microseconds())+float64(gl.lastDrawDuration.Microseconds()))/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		avgFrameMs,
		avgRaycastMs,
		workers,
		runtime.NumCPU(),
		goroutines,
		ebiten.IsVsyncEnabled(),
	)
	fmt.Printf(
		"[PERF] mem_alloc=%dMB mem_sys=%dMB gc_cycles=%d\n",
		memAllocMB,
		memSysMB,
		gcCycles,
	)
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int64:
			return uint64(v)
		case int:
			return uint64(v)
		case float64:
			return uint64(v)
		}
	}
	return 0
}
