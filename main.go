package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gridcaster/internal/audio"
	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/graphics"
	"gridcaster/internal/render"
	"gridcaster/internal/session"
	"gridcaster/internal/terminal"
	"gridcaster/internal/threading"
	"gridcaster/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	levelName := flag.String("level", "", "level name in the levels directory, or a path to a level file")
	useTerminal := flag.Bool("term", false, "render in the terminal instead of a window")
	mute := flag.Bool("mute", false, "disable background music")
	listLevels := flag.Bool("list", false, "list available levels and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v; using defaults", err)
		cfg = config.DefaultConfig()
	}
	if *mute {
		cfg.Audio.Muted = true
	}

	// Load and initialize tile manager
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Levels.Palette); err != nil {
		log.Printf("Warning: Failed to load tile config: %v", err)
	}

	if *listLevels {
		names, err := world.ListLevels(cfg.Levels.Dir)
		if err != nil {
			log.Fatal(err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	level, err := loadLevel(cfg, tiles, *levelName)
	if err != nil {
		log.Fatal(err)
	}

	tc := threading.NewThreadingComponents(cfg.Render.Workers)
	defer tc.Shutdown()
	// running averages only feed the perf log
	tc.PerformanceMonitor.EnableDetailedLogging(cfg.Display.PerfDebug)

	renderer := newRenderer(cfg, tiles, tc)
	sess := session.New(cfg, level, renderer)

	bestTimes, err := session.LoadBestTimes(session.BestTimesPath())
	if err != nil {
		log.Printf("Warning: %v; best times will not be kept", err)
		bestTimes = nil
	}

	music := audio.NewMusicPlayer(cfg.Audio)
	if err := music.Start(); err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
	}
	defer music.Close()

	if *useTerminal {
		if err := runTerminal(sess, music, bestTimes); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle + " - " + level.Name)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewGame(cfg, sess, tc, music, bestTimes)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// loadLevel resolves -level as a file path first, then as a name in the
// levels directory. An empty name loads the configured default.
func loadLevel(cfg *config.Config, tiles *world.TileManager, name string) (*world.Level, error) {
	if name == "" {
		name = cfg.Levels.Default
	}
	path := name
	if _, err := os.Stat(path); err != nil {
		path = world.LevelPath(cfg.Levels.Dir, name)
	}
	level, err := world.LoadLevel(path, tiles)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %q: %w", name, err)
	}
	return level, nil
}

func newRenderer(cfg *config.Config, tiles *world.TileManager, tc *threading.ThreadingComponents) *render.Renderer {
	loader := graphics.NewTextureLoader(cfg.Textures.Scale)
	textures := loader.LoadSet(cfg.Textures.Wall, cfg.Textures.Floor, cfg.Textures.Sky)

	opts := render.Options{
		ViewDistance:  cfg.Render.ViewDistance,
		BrightnessMin: cfg.Render.BrightnessMin,
		SkyColor:      world.RGBFromConfig(cfg.Colors.Sky),
		WallColor:     world.RGBFromConfig(cfg.Colors.Wall),
		FloorColor:    world.RGBFromConfig(cfg.Colors.Floor),
		FloorColors:   tiles.FloorColors(),
	}

	parallel := tc.ParallelRenderer
	if !cfg.Render.Parallel {
		parallel = nil
	}
	r := render.NewRenderer(*textures, opts, parallel)
	r.SetMonitor(tc.PerformanceMonitor)
	return r
}

func runTerminal(sess *session.Session, music *audio.MusicPlayer, bestTimes *session.BestTimes) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	// log lines would scroll the screen; keep them in the saves directory
	if f, err := os.Create(filepath.Join(session.SaveDir(), "terminal.log")); err == nil {
		log.SetOutput(f)
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
	}

	front := terminal.New(screen, sess, music, func(res session.Result) {
		if bestTimes == nil {
			return
		}
		bestTimes.Add(res.Level, res.Elapsed, time.Now())
		if err := bestTimes.Save(); err != nil {
			log.Printf("Warning: %v", err)
		}
	})
	return front.Run()
}
