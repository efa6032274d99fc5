package perception

import "fmt"

// Observation tensor shape constants. These are engine-wide and fixed: a
// trained controller depends on them bit-for-bit.
const (
	// MaxObjs is the object-table row capacity. Observed plus heard
	// entities beyond this count are silently truncated.
	MaxObjs = 16

	// ObjDim is the per-row feature width of the object table.
	ObjDim = 8

	// ScalarChannels is the number of agent scalar features broadcast
	// across the grid: norm x, norm y, dir x, dir y, one reserved slot.
	ScalarChannels = 5

	// GridChannels is the total grid tensor depth: scalar broadcasts,
	// wall occupancy, the belief/filter channel, and one reserved
	// all-zero channel a consumer overwrites with its localization
	// probability.
	GridChannels = ScalarChannels + 3
)

// Object-table row layout. Visual rows fill 0-2 and 5-7; auditory rows fill
// 0-1 and 3-4; everything else stays zero.
//
//	[0] normalized x
//	[1] normalized y
//	[2] is-visual flag
//	[3] is-auditory flag
//	[4] active radius (auditory only)
//	[5] time since last seen / 10
//	[6] position delta x since last seen
//	[7] position delta y since last seen

// Observation is the fixed-shape tensor triple handed to the controller.
// Grid is channel-major (GridChannels × Size × Size), Objects is row-major
// (MaxObjs × ObjDim), Mask has one entry per object row with 1 marking
// padding and 0 marking real data.
type Observation struct {
	Grid    []float32
	Objects []float32
	Mask    []float32
	Size    int
}

// EncodeObservation packages an agent's perceptual state into the tensor
// triple. filter is the externally computed belief grid; the engine copies
// it into its channel and never produces it. Returns an error if the wall
// or filter grid does not match the view's size; mismatched shapes must
// fail at construction rather than emit misaligned tensors.
func EncodeObservation(state *AgentState, view *WorldView, filter []float32) (Observation, error) {
	size := view.Size
	cells := size * size
	if len(view.Walls) != cells {
		return Observation{}, fmt.Errorf("wall grid has %d cells, want %d", len(view.Walls), cells)
	}
	if len(filter) != cells {
		return Observation{}, fmt.Errorf("filter grid has %d cells, want %d", len(filter), cells)
	}

	worldSpan := float32(size) * view.CellSize
	norm := func(c float32) float32 {
		return (0.5*view.CellSize + c) / worldSpan
	}

	scalars := [ScalarChannels]float32{
		norm(state.Pos.X),
		norm(state.Pos.Y),
		state.Dir.X,
		state.Dir.Y,
		0, // reserved
	}

	grid := make([]float32, GridChannels*cells)
	for c, v := range scalars {
		if v == 0 {
			continue
		}
		base := c * cells
		for i := 0; i < cells; i++ {
			grid[base+i] = v
		}
	}
	wallBase := ScalarChannels * cells
	for i, w := range view.Walls {
		if w {
			grid[wallBase+i] = 1
		}
	}
	copy(grid[(ScalarChannels+1)*cells:], filter)
	// Channel ScalarChannels+2 stays zero: the consumer overwrites it with
	// its localization probabilities.

	objects := make([]float32, MaxObjs*ObjDim)
	for i, id := range state.Observing {
		if i >= MaxObjs {
			break
		}
		mem, ok := state.Memory[id]
		if !ok {
			continue
		}
		obj, ok := view.Objects[id]
		if !ok {
			continue
		}
		row := objects[i*ObjDim : (i+1)*ObjDim]
		row[0] = norm(obj.Pos.X)
		row[1] = norm(obj.Pos.Y)
		row[2] = 1
		row[5] = mem.LastSeenElapsed / 10.0
		row[6] = obj.Pos.X - mem.LastPos.X
		row[7] = obj.Pos.Y - mem.LastPos.Y
	}
	offset := len(state.Observing)
	for i, id := range state.Listening {
		if offset+i >= MaxObjs {
			break
		}
		src, ok := view.Noise[id]
		if !ok {
			continue
		}
		row := objects[(offset+i)*ObjDim : (offset+i+1)*ObjDim]
		row[0] = norm(src.Pos.X)
		row[1] = norm(src.Pos.Y)
		row[3] = 1
		row[4] = src.ActiveRadius
	}

	mask := make([]float32, MaxObjs)
	numObjs := len(state.Observing) + len(state.Listening)
	if numObjs > MaxObjs {
		numObjs = MaxObjs
	}
	for i := numObjs; i < MaxObjs; i++ {
		mask[i] = 1
	}

	return Observation{Grid: grid, Objects: objects, Mask: mask, Size: size}, nil
}
