package perception

import (
	"math"
	"sort"
)

// Supersample is the internal rasterization scale. Each grid cell is sampled
// as a Supersample×Supersample block of boolean hits, then averaged down to a
// coverage fraction, so edge cells get partial credit instead of aliasing.
const Supersample = 4

// RasterizeVisibility converts a visibility mesh into a size×size buffer of
// per-cell coverage fractions in [0,1]. Cells covered by any triangle count
// as hit (logical OR across triangles), so double-covered boundary pixels
// are harmless. The buffer is row-major (y*size + x) and rebuilt from
// scratch on every call.
func RasterizeVisibility(tris []Triangle, size int, cellSize float32) []float32 {
	ssSize := size * Supersample
	ssCell := cellSize / Supersample
	hits := make([]bool, ssSize*ssSize)

	for _, tri := range tris {
		points := []Vec2{tri[0], tri[1], tri[2]}
		sort.Slice(points, func(i, j int) bool { return points[i].Y < points[j].Y })

		// Horizontal line through the middle vertex split against the long
		// edge. The two halves each have one flat edge, so the scans below
		// never hit a degenerate slope.
		slope := (points[2].X - points[0].X) / (points[2].Y - points[0].Y)
		mid := Vec2{
			X: points[0].X + slope*(points[1].Y-points[0].Y),
			Y: points[1].Y,
		}

		mid1, mid2 := points[1], mid
		if mid2.X < mid1.X {
			mid1, mid2 = mid2, mid1
		}

		fillTriHalf(hits, mid1, mid2, points[2], true, ssSize, ssCell)
		fillTriHalf(hits, mid1, mid2, points[0], false, ssSize, ssCell)
	}

	coverage := make([]float32, size*size)
	inv := float32(1.0 / (Supersample * Supersample))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			count := 0
			for sy := 0; sy < Supersample; sy++ {
				row := (y*Supersample + sy) * ssSize
				for sx := 0; sx < Supersample; sx++ {
					if hits[row+x*Supersample+sx] {
						count++
					}
				}
			}
			coverage[y*size+x] = float32(count) * inv
		}
	}
	return coverage
}

// fillTriHalf scans one half-triangle into the hit buffer. mid1 and mid2 are
// the flat edge's endpoints ordered left to right, other is the apex. isTop
// selects the scan direction: true scans upward from the flat edge, false
// scans up from the apex. A zero-height half yields zero rows and is a no-op.
func fillTriHalf(hits []bool, mid1, mid2, other Vec2, isTop bool, size int, cellSize float32) {
	slope1 := (other.X - mid1.X) / (other.Y - mid1.Y)
	slope2 := (other.X - mid2.X) / (other.Y - mid2.Y)
	dy := cellSize

	var last1, last2 Vec2
	var span float32
	if isTop {
		last1, last2 = mid1, mid2
		span = other.Y - mid1.Y
	} else {
		last1, last2 = other, other
		span = mid1.Y - other.Y
	}

	rows := int(math.Ceil(float64(span / dy)))
	for r := 0; r < rows; r++ {
		y := clampInt(int(math.Round(float64(last1.Y/cellSize))), 0, size-1)
		x0 := int(math.Floor(float64(last1.X / cellSize)))
		x1 := int(math.Ceil(float64(last2.X / cellSize)))
		if x0 < 0 {
			x0 = 0
		}
		for x := x0; x < x1; x++ {
			hits[y*size+clampInt(x, 0, size-1)] = true
		}

		last1.X += slope1 * dy
		last1.Y += dy
		last2.X += slope2 * dy
		last2.Y += dy
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
