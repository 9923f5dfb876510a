package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Level loading errors
var (
	ErrEmptyLevel  = errors.New("level contains no tile rows")
	ErrRaggedLevel = errors.New("level rows have inconsistent width")
	ErrUnknownTile = errors.New("unknown tile")
)

const levelExt = ".txt"

// DefaultSpawnX and DefaultSpawnY place the player when a level has no 'P'.
const (
	DefaultSpawnX = 1.5
	DefaultSpawnY = 1.5
)

// Level is a parsed level file: the grid plus the player's spawn position
// (centre of the spawn cell, in grid units).
type Level struct {
	Name     string
	Grid     *Grid
	SpawnX   float64
	SpawnY   float64
	HasSpawn bool
}

func raggedRowError(row, want, got int) error {
	return fmt.Errorf("%w: line %d expected %d tiles, got %d", ErrRaggedLevel, row+1, want, got)
}

// ParseLevel reads a level from text. One row per line; empty lines and
// lines starting with '#' are skipped. The spawn marker becomes open floor.
func ParseLevel(r io.Reader, tm *TileManager) (*Level, error) {
	if tm == nil {
		tm = NewTileManager()
	}

	var rows [][]TileKind
	level := &Level{SpawnX: DefaultSpawnX, SpawnY: DefaultSpawnY}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		y := len(rows)
		row := make([]TileKind, 0, len(line))
		for x, letter := range []rune(line) {
			kind, ok := tm.GetKindFromLetter(letter)
			if !ok {
				return nil, fmt.Errorf("%w: %q at line %d column %d", ErrUnknownTile, letter, y+1, x+1)
			}
			if kind == TileSpawnMarker {
				level.SpawnX = float64(x) + 0.5
				level.SpawnY = float64(y) + 0.5
				level.HasSpawn = true
				kind = TileOpen
			}
			row = append(row, kind)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading level: %w", err)
	}

	grid, err := NewGridFromRows(rows)
	if err != nil {
		return nil, err
	}
	level.Grid = grid
	return level, nil
}

// LoadLevel loads a level file from disk
func LoadLevel(path string, tm *TileManager) (*Level, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file %s: %w", path, err)
	}
	defer file.Close()

	level, err := ParseLevel(file, tm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(path), levelExt)

	fmt.Printf("[Level] Loaded %s (%dx%d), spawn (%.1f, %.1f)\n",
		level.Name, level.Grid.Width(), level.Grid.Height(), level.SpawnX, level.SpawnY)
	return level, nil
}

// WriteLevel writes a level in the text format ParseLevel reads. The spawn
// cell is written as the spawn marker.
func WriteLevel(w io.Writer, level *Level, tm *TileManager) error {
	if tm == nil {
		tm = NewTileManager()
	}
	spawnX, spawnY := -1, -1
	if level.HasSpawn {
		spawnX, spawnY = int(level.SpawnX), int(level.SpawnY)
	}

	bw := bufio.NewWriter(w)
	g := level.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			letter := tm.GetLetterFromKind(g.TileAt(x, y))
			if x == spawnX && y == spawnY {
				letter = tm.GetLetterFromKind(TileSpawnMarker)
			}
			if _, err := bw.WriteRune(letter); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveLevel writes a level to dir/<name>.txt and returns the written path
func SaveLevel(dir string, level *Level, tm *TileManager) (string, error) {
	if strings.TrimSpace(level.Name) == "" {
		return "", errors.New("level name must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create level directory: %w", err)
	}

	path := filepath.Join(dir, level.Name+levelExt)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create level file: %w", err)
	}
	if err := WriteLevel(file, level, tm); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write level file: %w", err)
	}
	return path, file.Close()
}

// LevelPath returns the file path of a named level in dir
func LevelPath(dir, name string) string {
	return filepath.Join(dir, name+levelExt)
}

// ListLevels returns the sorted names of all level files in dir
func ListLevels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), levelExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), levelExt))
	}
	sort.Strings(names)
	return names, nil
}
