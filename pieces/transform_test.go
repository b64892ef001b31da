package pieces

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogShape(t *testing.T) {
	if len(Catalog) != Count {
		t.Fatalf("catalog size=%d want=%d", len(Catalog), Count)
	}

	totalCells := 0
	for i, p := range Catalog {
		if p.ID != i {
			t.Fatalf("piece %q id=%d want=%d", p.Name, p.ID, i)
		}
		if got := p.Shape.CellCount(); got != p.Cells {
			t.Fatalf("piece %q cell count=%d want=%d", p.Name, got, p.Cells)
		}
		if p.Cells < 1 || p.Cells > 5 {
			t.Fatalf("piece %q cells=%d outside 1..5", p.Name, p.Cells)
		}
		for _, row := range p.Shape {
			if len(row) != p.Shape.Width() {
				t.Fatalf("piece %q has ragged shape", p.Name)
			}
		}
		totalCells += p.Cells
	}
	if totalCells != 89 {
		t.Fatalf("total catalog cells=%d want=89", totalCells)
	}
}

// TestVariantCounts pins the number of deduplicated orientations per
// symmetry class: 1 for fully symmetric shapes, 8 for fully asymmetric
// ones, 2 or 4 in between.
func TestVariantCounts(t *testing.T) {
	want := map[string]int{
		"one":     1,
		"two":     2,
		"three-i": 2,
		"three-v": 4,
		"four-i":  2,
		"four-l":  8,
		"four-t":  4,
		"four-s":  4,
		"four-o":  1,
		"five-f":  8,
		"five-i":  2,
		"five-l":  8,
		"five-n":  8,
		"five-p":  8,
		"five-t":  4,
		"five-u":  4,
		"five-v":  4,
		"five-w":  4,
		"five-x":  1,
		"five-y":  8,
		"five-z":  4,
	}

	for _, p := range Catalog {
		got := len(VariantsFor(p.ID))
		if got != want[p.Name] {
			t.Errorf("piece %q variants=%d want=%d", p.Name, got, want[p.Name])
		}
	}
}

func TestVariantsDeduplicated(t *testing.T) {
	for _, p := range Catalog {
		seen := map[string]bool{}
		for _, v := range VariantsFor(p.ID) {
			k := Key(v.Shape)
			if seen[k] {
				t.Fatalf("piece %q has duplicate variant %s", p.Name, k)
			}
			seen[k] = true
			if v.Shape.CellCount() != p.Cells {
				t.Fatalf("piece %q variant lost cells: %d want %d", p.Name, v.Shape.CellCount(), p.Cells)
			}
		}
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, p := range Catalog {
		s := p.Shape
		for i := 0; i < 4; i++ {
			s = Rotate(s)
		}
		if diff := cmp.Diff(p.Shape, s); diff != "" {
			t.Fatalf("piece %q rotate x4 mismatch (-want +got):\n%s", p.Name, diff)
		}
	}
}

func TestMirrorTwiceIsIdentity(t *testing.T) {
	for _, p := range Catalog {
		s := Mirror(Mirror(p.Shape))
		if diff := cmp.Diff(p.Shape, s); diff != "" {
			t.Fatalf("piece %q mirror x2 mismatch (-want +got):\n%s", p.Name, diff)
		}
	}
}

// TestVariantEnumerationOrder verifies the unmirrored base shape comes
// first and that rotation labels step clockwise.
func TestVariantEnumerationOrder(t *testing.T) {
	vs := VariantsFor(9) // five-f, fully asymmetric: all 8 survive
	if len(vs) != 8 {
		t.Fatalf("five-f variants=%d want=8", len(vs))
	}
	first := vs[0]
	if first.Mirrored || first.Rotation != 0 {
		t.Fatalf("first variant rotation=%d mirrored=%v want canonical", first.Rotation, first.Mirrored)
	}
	if diff := cmp.Diff(Catalog[9].Shape, first.Shape); diff != "" {
		t.Fatalf("first variant is not the canonical shape (-want +got):\n%s", diff)
	}
	for i, v := range vs {
		wantMirrored := i >= 4
		wantRotation := (i % 4) * 90
		if v.Mirrored != wantMirrored || v.Rotation != wantRotation {
			t.Fatalf("variant %d rotation=%d mirrored=%v want rotation=%d mirrored=%v",
				i, v.Rotation, v.Mirrored, wantRotation, wantMirrored)
		}
	}
}
