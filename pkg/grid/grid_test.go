package grid

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	g, err := Parse("110", "001")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	want := []Cell{{0, 0}, {0, 1}, {1, 2}}
	if diff := cmp.Diff(want, g.Occupied()); diff != "" {
		t.Errorf("Occupied() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("10", "1"); err == nil {
		t.Error("ragged rows should fail")
	}
	if _, err := Parse("1x"); err == nil {
		t.Error("invalid cell character should fail")
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := MustParse("11", "11")
	for _, c := range []Cell{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if g.At(c.Row, c.Col) {
			t.Errorf("At(%d, %d) = true for out-of-bounds cell", c.Row, c.Col)
		}
	}
	g.Set(5, 5)
	if g.Count() != 4 {
		t.Errorf("out-of-bounds Set changed the grid: Count() = %d", g.Count())
	}
}

func TestNewNegative(t *testing.T) {
	g := New(-2, 3)
	if g.Rows() != 0 || g.Cols() != 3 || g.Count() != 0 {
		t.Errorf("New(-2, 3) = %dx%d", g.Rows(), g.Cols())
	}
}

func TestEqual(t *testing.T) {
	a := MustParse("10", "01")
	if !a.Equal(MustParse("10", "01")) {
		t.Error("identical grids should be equal")
	}
	if a.Equal(MustParse("10", "00")) {
		t.Error("different occupancy should not be equal")
	}
	if a.Equal(MustParse("100", "010")) {
		t.Error("different shapes should not be equal")
	}
	var nilGrid *Grid
	if a.Equal(nilGrid) {
		t.Error("grid should not equal nil")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := MustParse("0110", "1001", "0000")
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"rows":3,"cols":4,"cells":["0110","1001","0000"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Grid
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip mismatch:\n%s\nwant\n%s", &back, g)
	}
}

func TestUnmarshalRejectsInconsistentShape(t *testing.T) {
	var g Grid
	if err := json.Unmarshal([]byte(`{"rows":2,"cols":2,"cells":["11"]}`), &g); err == nil {
		t.Error("row count mismatch should fail")
	}
	if err := json.Unmarshal([]byte(`{"rows":1,"cols":3,"cells":["11"]}`), &g); err == nil {
		t.Error("column count mismatch should fail")
	}
}

func TestConnectorDirectionsSubsetOfNeighbors(t *testing.T) {
	for _, d := range ConnectorDirections {
		found := false
		for _, off := range Neighbors {
			if off == d.Offset() {
				found = true
			}
		}
		if !found {
			t.Errorf("connector direction %v (%v) missing from Neighbors", d, d.Offset())
		}
	}
}

func TestDirectionNames(t *testing.T) {
	want := []string{"right", "down", "down-right", "down-left"}
	for i, d := range ConnectorDirections {
		if d.String() != want[i] {
			t.Errorf("ConnectorDirections[%d] = %q, want %q", i, d, want[i])
		}
	}
	if !DownLeft.Diagonal() || Right.Diagonal() {
		t.Error("Diagonal() misclassifies directions")
	}
}
