package core

// FallingEntity is one falling word.
type FallingEntity struct {
	Text      string
	Pos       Vec2
	Color     string  // carried for completeness, the renderer uses the theme color
	Angle     float64 // radians
	RotSpeed  float64 // radians per millisecond, signed
	FallSpeed float64 // game units per millisecond
	Size      int     // font size in pixels
}

// GameData is the per-frame snapshot handed from the simulation to the
// render surface. It is a copy: changing it does not affect the simulation.
type GameData struct {
	PlayerPos Vec2
	TextArray []FallingEntity
}

// NewGameData copies entities into a fresh snapshot.
func NewGameData(player Vec2, entities []FallingEntity) *GameData {
	arr := make([]FallingEntity, len(entities))
	copy(arr, entities)
	return &GameData{PlayerPos: player, TextArray: arr}
}
