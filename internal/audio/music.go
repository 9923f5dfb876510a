// Package audio plays looping background music.
package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"gridcaster/internal/config"
)

const bufferDuration = 100 * time.Millisecond

// MusicPlayer loops one WAV track through the speaker. All methods are safe
// to call when Start failed; they become no-ops.
type MusicPlayer struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	source      beep.StreamSeekCloser
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	initialized bool
}

// NewMusicPlayer creates a player for the configured track.
func NewMusicPlayer(cfg config.AudioConfig) *MusicPlayer {
	return &MusicPlayer{cfg: cfg}
}

// Start decodes the track and begins looping it.
func (mp *MusicPlayer) Start() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	f, err := os.Open(mp.cfg.Music)
	if err != nil {
		return fmt.Errorf("failed to open music %s: %w", mp.cfg.Music, err)
	}
	source, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode music %s: %w", mp.cfg.Music, err)
	}

	ctrl, volume := newLoop(source, mp.cfg)
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(bufferDuration)); err != nil {
		source.Close()
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(volume)

	mp.source = source
	mp.ctrl = ctrl
	mp.volume = volume
	mp.initialized = true
	return nil
}

// newLoop wraps source in an endless loop with pause and volume controls.
func newLoop(source beep.StreamSeeker, cfg config.AudioConfig) (*beep.Ctrl, *effects.Volume) {
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, source), Paused: false}
	volume := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   cfg.Volume,
		Silent:   cfg.Muted,
	}
	return ctrl, volume
}

// SetPaused pauses or resumes the track.
func (mp *MusicPlayer) SetPaused(paused bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if !mp.initialized {
		return
	}
	speaker.Lock()
	mp.ctrl.Paused = paused
	speaker.Unlock()
}

// ToggleMute flips the mute state and returns the new value.
func (mp *MusicPlayer) ToggleMute() bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.cfg.Muted = !mp.cfg.Muted
	if mp.initialized {
		speaker.Lock()
		mp.volume.Silent = mp.cfg.Muted
		speaker.Unlock()
	}
	return mp.cfg.Muted
}

// Muted reports the current mute state.
func (mp *MusicPlayer) Muted() bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.cfg.Muted
}

// Close stops playback and releases the decoder.
func (mp *MusicPlayer) Close() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if !mp.initialized {
		return
	}
	speaker.Clear()
	mp.source.Close()
	mp.initialized = false
}
