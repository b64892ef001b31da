package pieces

import (
	"strconv"
	"strings"
	"sync"
)

// Variant is one orientation of a canonical shape.
//
// Rotation and Mirrored describe how the variant was produced and exist for
// display purposes only. They do not compose across repeated transforms; the
// Shape matrix is the sole geometric ground truth.
type Variant struct {
	Shape    Shape
	Rotation int // degrees: 0, 90, 180 or 270
	Mirrored bool
}

// Rotate returns the shape rotated 90 degrees clockwise.
func Rotate(s Shape) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for r := 0; r < w; r++ {
		out[r] = make([]int, h)
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out[c][h-1-r] = s[r][c]
		}
	}
	return out
}

// Mirror returns the shape flipped horizontally.
func Mirror(s Shape) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, h)
	for r := 0; r < h; r++ {
		out[r] = make([]int, w)
		for c := 0; c < w; c++ {
			out[r][c] = s[r][w-1-c]
		}
	}
	return out
}

// Key returns the canonical row-major string form of the shape, used to
// deduplicate variants that coincide due to symmetry.
func Key(s Shape) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(s.Width()))
	sb.WriteByte(':')
	for _, row := range s {
		for _, v := range row {
			if v != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('/')
	}
	return sb.String()
}

// Variants returns the deduplicated images of the shape under the dihedral
// group of order 8: mirror off then on, and within each, rotation steps
// 0 through 3, each step rotating the previous result 90 degrees clockwise.
// A variant is kept only the first time its canonical form appears, so fully
// symmetric shapes yield a single variant and fully asymmetric shapes all 8.
func Variants(s Shape) []Variant {
	seen := make(map[string]bool, 8)
	out := make([]Variant, 0, 8)
	for _, mirrored := range []bool{false, true} {
		cur := s
		if mirrored {
			cur = Mirror(s)
		}
		for step := 0; step < 4; step++ {
			if step > 0 {
				cur = Rotate(cur)
			}
			k := Key(cur)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Variant{Shape: cur, Rotation: step * 90, Mirrored: mirrored})
		}
	}
	return out
}

var (
	variantOnce  sync.Once
	variantTable [Count][]Variant
)

// VariantsFor returns the cached variant set for a catalog piece id.
// The table is computed once on first use; callers must not mutate the
// returned slice or its shapes.
func VariantsFor(id int) []Variant {
	variantOnce.Do(func() {
		for i := range Catalog {
			variantTable[i] = Variants(Catalog[i].Shape)
		}
	})
	if id < 0 || id >= Count {
		return nil
	}
	return variantTable[id]
}
