package world

// TileKind identifies what a grid cell is. The renderer only distinguishes
// walls from everything else for ray marching; the other kinds drive floor
// colors and gameplay effects.
type TileKind int

const (
	TileOpen        TileKind = iota // Walkable floor, textured
	TileWall                        // Solid wall, stops rays and movement
	TileFovTrap                     // Walkable, widens the field of view
	TileEndgame                     // Walkable, finishes the level
	TileVoid                        // Walkable, drops the player back to the checkpoint
	TileWin                         // Walkable, finishes the level
	TileRespawn                     // Walkable, records a checkpoint
	TileSpawnMarker                 // Author-time spawn marker, rendered as open floor
)

var tileKindNames = map[TileKind]string{
	TileOpen:        "open",
	TileWall:        "wall",
	TileFovTrap:     "fov_trap",
	TileEndgame:     "endgame",
	TileVoid:        "void",
	TileWin:         "win",
	TileRespawn:     "respawn",
	TileSpawnMarker: "spawn",
}

// String returns the configuration key of the tile kind.
func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TileKindFromKey resolves a configuration key such as "fov_trap".
func TileKindFromKey(key string) (TileKind, bool) {
	for kind, name := range tileKindNames {
		if name == key {
			return kind, true
		}
	}
	return TileOpen, false
}

// IsSpecial reports whether the floor of this kind is drawn as a flat color
// instead of the floor texture.
func (k TileKind) IsSpecial() bool {
	switch k {
	case TileFovTrap, TileEndgame, TileVoid, TileWin, TileRespawn:
		return true
	}
	return false
}

// IsWalkable reports whether the player may stand on the tile.
func (k TileKind) IsWalkable() bool {
	return k != TileWall
}
