package world

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testLevel = `# corridor with a trap
11111
1P0T1
10E01
11111
`

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(strings.NewReader(testLevel), nil)
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	g := level.Grid
	if g.Width() != 5 || g.Height() != 4 {
		t.Fatalf("Expected 5x4 grid, got %dx%d", g.Width(), g.Height())
	}
	if !level.HasSpawn || level.SpawnX != 1.5 || level.SpawnY != 1.5 {
		t.Errorf("Expected spawn at (1.5,1.5), got (%.1f,%.1f) has=%v", level.SpawnX, level.SpawnY, level.HasSpawn)
	}
	if g.TileAt(1, 1) != TileOpen {
		t.Errorf("Expected spawn marker to become open floor, got %v", g.TileAt(1, 1))
	}
	if g.TileAt(3, 1) != TileFovTrap {
		t.Errorf("Expected fov trap at (3,1), got %v", g.TileAt(3, 1))
	}
	if g.TileAt(2, 2) != TileEndgame {
		t.Errorf("Expected endgame at (2,2), got %v", g.TileAt(2, 2))
	}
	if g.Count(TileWall) != 14 {
		t.Errorf("Expected 14 walls, got %d", g.Count(TileWall))
	}
}

func TestParseLevelDefaultSpawn(t *testing.T) {
	level, err := ParseLevel(strings.NewReader("000\n000\n"), nil)
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if level.HasSpawn {
		t.Error("Expected no spawn marker")
	}
	if level.SpawnX != DefaultSpawnX || level.SpawnY != DefaultSpawnY {
		t.Errorf("Expected default spawn, got (%.1f,%.1f)", level.SpawnX, level.SpawnY)
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "# only a comment\n\n", ErrEmptyLevel},
		{"ragged", "111\n11\n", ErrRaggedLevel},
		{"unknown letter", "1Z1\n", ErrUnknownTile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel(strings.NewReader(tt.text), nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveAndLoadLevel(t *testing.T) {
	dir := t.TempDir()
	level, err := ParseLevel(strings.NewReader(testLevel), nil)
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	level.Name = "corridor"

	path, err := SaveLevel(dir, level, nil)
	if err != nil {
		t.Fatalf("SaveLevel failed: %v", err)
	}
	if path != LevelPath(dir, "corridor") {
		t.Errorf("Unexpected path %s", path)
	}

	loaded, err := LoadLevel(path, nil)
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if loaded.Name != "corridor" {
		t.Errorf("Expected name corridor, got %s", loaded.Name)
	}
	if !reflect.DeepEqual(loaded.Grid, level.Grid) {
		t.Error("Loaded grid differs from saved grid")
	}
	if loaded.SpawnX != level.SpawnX || loaded.SpawnY != level.SpawnY {
		t.Errorf("Spawn changed: (%.1f,%.1f) vs (%.1f,%.1f)", loaded.SpawnX, loaded.SpawnY, level.SpawnX, level.SpawnY)
	}
}

func TestWriteLevelFormat(t *testing.T) {
	g := NewGrid(3, 1)
	g.Set(0, 0, TileWall)
	g.Set(2, 0, TileWin)
	var buf bytes.Buffer
	if err := WriteLevel(&buf, &Level{Grid: g, SpawnX: 1.5, SpawnY: 0.5, HasSpawn: true}, nil); err != nil {
		t.Fatalf("WriteLevel failed: %v", err)
	}
	if buf.String() != "1PW\n" {
		t.Errorf("Expected %q, got %q", "1PW\n", buf.String())
	}
}

func TestListLevels(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta.txt", "alpha.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("0\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListLevels(dir)
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
		t.Errorf("Expected [alpha beta], got %v", names)
	}
}
