package world

import (
	"fmt"
	"image/color"
	"os"

	"gridcaster/internal/config"

	"gopkg.in/yaml.v3"
)

// TileManager maps level letters to tile kinds and tile kinds to their flat
// floor colors. It starts with the built-in palette; LoadTileConfig overlays
// entries from a YAML file.
type TileManager struct {
	tileData     map[TileKind]*config.TileData
	letterToKind map[rune]TileKind
	kindToLetter map[TileKind]rune
}

var defaultTileData = map[TileKind]config.TileData{
	TileWall:        {Name: "Wall", Letter: "1"},
	TileOpen:        {Name: "Open", Letter: "0"},
	TileFovTrap:     {Name: "FOV Trap", Letter: "T", FloorColor: [3]int{0, 0, 255}},
	TileEndgame:     {Name: "Endgame", Letter: "E", FloorColor: [3]int{255, 0, 0}},
	TileVoid:        {Name: "Void", Letter: "V", FloorColor: [3]int{0, 0, 0}},
	TileWin:         {Name: "Win Point", Letter: "W", FloorColor: [3]int{255, 255, 0}},
	TileRespawn:     {Name: "Respawn", Letter: "R", FloorColor: [3]int{255, 0, 255}},
	TileSpawnMarker: {Name: "Spawn Point", Letter: "P"},
}

// NewTileManager creates a tile manager holding the built-in palette
func NewTileManager() *TileManager {
	tm := &TileManager{tileData: make(map[TileKind]*config.TileData)}
	for kind, data := range defaultTileData {
		dataCopy := data
		tm.tileData[kind] = &dataCopy
	}
	tm.createLetterMappings()
	return tm
}

// LoadTileConfig overlays palette entries from a YAML file. Keys are tile
// kind names ("wall", "fov_trap", ...); unknown keys are rejected.
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	for key, tileData := range tileConfig.TileData {
		kind, ok := TileKindFromKey(key)
		if !ok {
			return fmt.Errorf("%w: palette key %q", ErrUnknownTile, key)
		}
		if len([]rune(tileData.Letter)) > 1 {
			return fmt.Errorf("tile %q letter %q must be a single character", key, tileData.Letter)
		}
		existing := tm.tileData[kind]
		if tileData.Name != "" {
			existing.Name = tileData.Name
		}
		if tileData.Letter != "" {
			existing.Letter = tileData.Letter
		}
		if tileData.FloorColor != [3]int{} || kind == TileVoid {
			existing.FloorColor = tileData.FloorColor
		}
	}

	tm.createLetterMappings()
	return nil
}

// createLetterMappings rebuilds the bidirectional letter lookups
func (tm *TileManager) createLetterMappings() {
	tm.letterToKind = make(map[rune]TileKind)
	tm.kindToLetter = make(map[TileKind]rune)
	for kind, data := range tm.tileData {
		letters := []rune(data.Letter)
		if len(letters) == 0 {
			continue
		}
		tm.letterToKind[letters[0]] = kind
		tm.kindToLetter[kind] = letters[0]
	}
	// Common aliases for open floor in hand-written levels
	for _, letter := range []rune{'.', ' '} {
		if _, taken := tm.letterToKind[letter]; !taken {
			tm.letterToKind[letter] = TileOpen
		}
	}
}

// GetTileData returns the palette entry for a tile kind
func (tm *TileManager) GetTileData(kind TileKind) *config.TileData {
	return tm.tileData[kind]
}

// GetKindFromLetter returns the tile kind for a level letter
func (tm *TileManager) GetKindFromLetter(letter rune) (TileKind, bool) {
	kind, ok := tm.letterToKind[letter]
	return kind, ok
}

// GetLetterFromKind returns the letter written to level files for a kind
func (tm *TileManager) GetLetterFromKind(kind TileKind) rune {
	if letter, ok := tm.kindToLetter[kind]; ok {
		return letter
	}
	return '0'
}

// GetFloorColor returns the flat floor color of a special tile kind. The
// second result is false for kinds whose floor is textured.
func (tm *TileManager) GetFloorColor(kind TileKind) (color.RGBA, bool) {
	if !kind.IsSpecial() {
		return color.RGBA{}, false
	}
	data := tm.tileData[kind]
	if data == nil {
		return color.RGBA{}, false
	}
	return RGBFromConfig(data.FloorColor), true
}

// FloorColors returns the flat floor colors of every special kind.
func (tm *TileManager) FloorColors() map[TileKind]color.RGBA {
	colors := make(map[TileKind]color.RGBA)
	for kind := range tm.tileData {
		if clr, ok := tm.GetFloorColor(kind); ok {
			colors[kind] = clr
		}
	}
	return colors
}

// RGBFromConfig converts a [r,g,b] config triple into an opaque color,
// clamping each channel into 0..255.
func RGBFromConfig(c [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}
