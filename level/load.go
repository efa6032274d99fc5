package level

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileLayout is the on-disk JSON format produced by the level editor. Its
// wall grid is stored top row first, so loading flips it vertically into
// the engine's bottom-up row order.
type fileLayout struct {
	Size         int       `json:"size"`
	Walls        []int     `json:"walls"`
	KeyPos       *GridVec  `json:"key_pos"`
	DoorPos      *GridVec  `json:"door_pos"`
	PlayerStart  *GridVec  `json:"player_start"`
	PursuerStart *GridVec  `json:"pursuer_start"`
	Objects      []GridVec `json:"objects"`
}

// Load reads a layout from a JSON level file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON level document.
func Parse(data []byte) (*Layout, error) {
	var f fileLayout
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing level file: %w", err)
	}
	if f.Size <= 0 {
		return nil, fmt.Errorf("level size must be positive, got %d", f.Size)
	}
	if len(f.Walls) != f.Size*f.Size {
		return nil, fmt.Errorf("level has %d wall cells, want %d", len(f.Walls), f.Size*f.Size)
	}

	walls := make([]bool, f.Size*f.Size)
	for y := 0; y < f.Size; y++ {
		for x := 0; x < f.Size; x++ {
			walls[y*f.Size+x] = f.Walls[(f.Size-y-1)*f.Size+x] != 0
		}
	}

	return &Layout{
		Walls:        walls,
		Size:         f.Size,
		KeyPos:       f.KeyPos,
		DoorPos:      f.DoorPos,
		PlayerStart:  f.PlayerStart,
		PursuerStart: f.PursuerStart,
		Objects:      f.Objects,
	}, nil
}
