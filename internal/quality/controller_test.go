package quality

import (
	"testing"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/world"
)

func newTestController() *Controller {
	return NewController(config.DefaultConfig().Quality)
}

func TestStrideStrictlyIncreasesUnderLowFPS(t *testing.T) {
	c := newTestController()
	cfg := config.DefaultConfig().Quality

	prev := c.Stride()
	for i := 0; i < 20; i++ {
		stride, _ := c.Advance(cfg.TargetFPSLow-10, world.TileOpen)
		if prev < cfg.MaxStride {
			if stride != prev+1 {
				t.Fatalf("call %d: stride %d, want %d", i, stride, prev+1)
			}
		} else if stride != cfg.MaxStride {
			t.Fatalf("call %d: stride %d left ceiling %d", i, stride, cfg.MaxStride)
		}
		prev = stride
	}
	if prev != cfg.MaxStride {
		t.Errorf("stride settled at %d, want %d", prev, cfg.MaxStride)
	}
}

func TestStrideNeverBelowOne(t *testing.T) {
	cfg := config.DefaultConfig().Quality
	cfg.MinStride = 0
	c := NewController(cfg)
	for i := 0; i < 50; i++ {
		stride, _ := c.Advance(1000, world.TileOpen)
		if stride < 1 {
			t.Fatalf("stride dropped to %d", stride)
		}
	}
	if c.Stride() != 1 {
		t.Errorf("expected stride floor 1, got %d", c.Stride())
	}
}

func TestStrideHoldsInsideBand(t *testing.T) {
	c := newTestController()
	start := c.Stride()
	for i := 0; i < 10; i++ {
		c.Advance(54, world.TileOpen)
	}
	if c.Stride() != start {
		t.Errorf("stride moved inside the band: %d -> %d", start, c.Stride())
	}
}

func TestFOVConvergesWithoutOvershoot(t *testing.T) {
	c := newTestController()
	cfg := config.DefaultConfig().Quality

	prev := c.FOV()
	steps := 0
	for c.FOV() != cfg.TrapFOV {
		fov := c.Smooth(world.TileFovTrap)
		if fov > cfg.TrapFOV {
			t.Fatalf("overshoot: %v", fov)
		}
		if fov-prev > cfg.FOVStep {
			t.Fatalf("jumped %v in one step", fov-prev)
		}
		prev = fov
		steps++
		if steps > 1000 {
			t.Fatal("field of view never converged")
		}
	}
	if steps != 60 {
		t.Errorf("expected 60 steps from 60 to 120, got %d", steps)
	}

	for i := 0; i < 200; i++ {
		if fov := c.Smooth(world.TileOpen); fov < cfg.BaseFOV {
			t.Fatalf("undershoot on the way back: %v", fov)
		}
	}
	if c.FOV() != cfg.BaseFOV {
		t.Errorf("expected return to %v, got %v", cfg.BaseFOV, c.FOV())
	}
}

func TestFractionalStepSettlesExactly(t *testing.T) {
	cfg := config.DefaultConfig().Quality
	cfg.FOVStep = 7
	c := NewController(cfg)
	c.SetBaseFOV(65)
	for i := 0; i < 5; i++ {
		c.Smooth(world.TileOpen)
	}
	if c.FOV() != 65 {
		t.Errorf("expected 65, got %v", c.FOV())
	}
}

func TestSetBaseFOVClamps(t *testing.T) {
	c := newTestController()
	c.SetBaseFOV(500)
	if c.BaseFOV() != 120 {
		t.Errorf("expected clamp to 120, got %v", c.BaseFOV())
	}
	c.SetBaseFOV(1)
	if c.TargetFOV(world.TileOpen) != 30 {
		t.Errorf("expected clamp to 30, got %v", c.TargetFOV(world.TileOpen))
	}
}

func TestFrameWindow(t *testing.T) {
	c := newTestController()
	start := time.Unix(100, 0)

	// 20 frames across one second is well under the band
	for i := 0; i <= 20; i++ {
		c.Frame(start.Add(time.Duration(i)*50*time.Millisecond), world.TileOpen)
	}
	if c.Stride() != 3 {
		t.Errorf("expected stride 3 after a slow window, got %d", c.Stride())
	}
	if c.MeasuredFPS() != 20 {
		t.Errorf("expected 20 FPS measured, got %v", c.MeasuredFPS())
	}

	// 100 frames in the next second
	next := start.Add(time.Second)
	for i := 1; i <= 100; i++ {
		c.Frame(next.Add(time.Duration(i)*10*time.Millisecond), world.TileOpen)
	}
	if c.Stride() != 2 {
		t.Errorf("expected stride back to 2, got %d", c.Stride())
	}
	if c.MeasuredFPS() != 100 {
		t.Errorf("expected 100 FPS in the second window, got %v", c.MeasuredFPS())
	}
}

func TestAdjustStrideManual(t *testing.T) {
	c := newTestController()
	if got := c.AdjustStride(100); got != 8 {
		t.Errorf("expected ceiling 8, got %d", got)
	}
	if got := c.AdjustStride(-100); got != 1 {
		t.Errorf("expected floor 1, got %d", got)
	}
}
