package raycast

import "math"

// Column is one sampled screen column: the first pixel it covers, how many
// pixels wide it is, and its angle from the heading.
type Column struct {
	X      int
	Width  int
	Offset float64 // radians
	Cos    float64 // cos(Offset), cached for distance correction
}

// OffsetTable caches the per-column angle offsets for one combination of
// FOV, stride and screen width. Pose changes never invalidate it.
type OffsetTable struct {
	fov     float64
	stride  int
	width   int
	columns []Column
	builds  int
}

// Columns returns the cached columns, rebuilding them only if fovDegrees,
// stride or width differ from the previous call.
func (t *OffsetTable) Columns(fovDegrees float64, stride, width int) []Column {
	if t.columns != nil && t.fov == fovDegrees && t.stride == stride && t.width == width {
		return t.columns
	}
	t.rebuild(fovDegrees, stride, width)
	return t.columns
}

// Rebuilds reports how many times the table has been recomputed.
func (t *OffsetTable) Rebuilds() int {
	return t.builds
}

func (t *OffsetTable) rebuild(fovDegrees float64, stride, width int) {
	t.fov, t.stride, t.width = fovDegrees, stride, width
	t.builds++
	t.columns = t.columns[:0]
	if stride < 1 || width < 1 {
		return
	}

	fov := fovDegrees * math.Pi / 180
	half := fov / 2
	for x := 0; x < width; x += stride {
		w := stride
		if x+w > width {
			w = width - x
		}
		offset := -half + fov*float64(x)/float64(width)
		t.columns = append(t.columns, Column{
			X:      x,
			Width:  w,
			Offset: offset,
			Cos:    math.Cos(offset),
		})
	}
}

// ColumnCount is the number of rays cast for a given stride and width.
func ColumnCount(stride, width int) int {
	if stride < 1 || width < 1 {
		return 0
	}
	return (width + stride - 1) / stride
}
