// Package terminal presents the first-person view in a text terminal using
// upper-half-block cells, two pixels per cell.
package terminal

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/audio"
	"gridcaster/internal/session"
)

const (
	tickInterval = 16 * time.Millisecond
	halfBlock    = '▀'
)

var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// Frontend drives a session from tcell events and a frame ticker.
type Frontend struct {
	screen  tcell.Screen
	session *session.Session
	music   *audio.MusicPlayer
	keys    *heldKeys
	paused  bool

	onDone   func(session.Result)
	reported bool
}

// New creates a frontend. music may be nil. onDone, if set, is called once
// per completed run.
func New(screen tcell.Screen, sess *session.Session, music *audio.MusicPlayer, onDone func(session.Result)) *Frontend {
	return &Frontend{
		screen:  screen,
		session: sess,
		music:   music,
		keys:    newHeldKeys(),
		onDone:  onDone,
	}
}

// Run loops until the player quits. The caller owns screen Init and Fini.
func (f *Frontend) Run() error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !f.handleEvent(ev, time.Now()) {
				return nil
			}

		case now := <-ticker.C:
			f.step(now, now.Sub(last))
			last = now
			if err := f.draw(now); err != nil {
				return err
			}
		}
	}
}

// step advances the session by one tick and reports a completed run once.
func (f *Frontend) step(now time.Time, dt time.Duration) {
	if !f.paused {
		f.session.Update(f.keys.input(now), dt)
	}
	if res, done := f.session.Completed(); done && !f.reported {
		f.reported = true
		if f.onDone != nil {
			f.onDone(res)
		}
	}
}

// handleEvent returns false when the player asked to quit.
func (f *Frontend) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleKey(key tcell.Key, r rune, now time.Time) bool {
	act, sprint := keyAction(key, r)
	switch act {
	case actQuit:
		return false
	case actRestart:
		f.session.Restart()
		f.reported = false
		f.keys.clear()
	case actMute:
		if f.music != nil {
			log.Printf("[Audio] muted: %v", f.music.ToggleMute())
		}
	case actPause:
		f.paused = !f.paused
		if f.music != nil {
			f.music.SetPaused(f.paused)
		}
	case actNone:
	default:
		f.keys.press(act, now)
		if sprint {
			f.keys.press(actSprint, now)
		}
	}
	return true
}

func (f *Frontend) draw(now time.Time) error {
	w, h := f.screen.Size()
	rows := h - 1 // bottom row is the status line
	if w <= 0 || rows <= 0 {
		return nil
	}

	img, err := f.session.Frame(now, w, rows*2)
	if err != nil {
		return fmt.Errorf("terminal frame: %w", err)
	}
	blitHalfBlocks(f.screen, img, rows)
	f.drawStatus(w, rows)
	f.screen.Show()
	return nil
}

// blitHalfBlocks draws img into the first rows screen rows: each cell shows
// pixel row 2y as foreground and 2y+1 as background.
func blitHalfBlocks(screen tcell.Screen, img *image.RGBA, rows int) {
	w := img.Rect.Dx()
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, 2*y)
			bottom := img.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func (f *Frontend) drawStatus(w, y int) {
	s := f.session
	q := s.Quality()
	text := fmt.Sprintf(" Time %.2fs  FPS %.0f  Stride %d  FOV %.0f  Stamina %3.0f%%  Dots %d",
		s.Elapsed().Seconds(), q.MeasuredFPS(), q.Stride(), q.FOV(), s.Player().StaminaRatio()*100, s.Minimap().DotCount())
	if res, done := s.Completed(); done {
		text = fmt.Sprintf(" Level %s completed in %.2f seconds. r: restart  q: quit", res.Level, res.Elapsed.Seconds())
	} else if f.paused {
		text = " Paused. p: resume  q: quit"
	}

	col := 0
	for _, r := range text {
		if col >= w {
			break
		}
		f.screen.SetContent(col, y, r, nil, statusStyle)
		col++
	}
	for ; col < w; col++ {
		f.screen.SetContent(col, y, ' ', nil, statusStyle)
	}
}
