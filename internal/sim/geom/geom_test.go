package geom

import "testing"

func TestPointVecArithmetic(t *testing.T) {
	p := Point2D{X: 1, Y: 2}
	q := p.Add(Vec2D{X: 3, Y: -1})
	if q != (Point2D{X: 4, Y: 1}) {
		t.Errorf("Add = %+v", q)
	}
	d := q.Sub(p)
	if d != (Vec2D{X: 3, Y: -1}) {
		t.Errorf("Sub = %+v", d)
	}
	if got := d.Scale(2); got != (Vec2D{X: 6, Y: -2}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := d.LenSq(); got != 10 {
		t.Errorf("LenSq = %v, want 10", got)
	}
	if !(Vec2D{}).IsZero() || d.IsZero() {
		t.Error("IsZero misreports")
	}
}

func TestRectsIntersect(t *testing.T) {
	tests := []struct {
		name                   string
		min1, max1, min2, max2 Point2D
		want                   bool
	}{
		{"overlap", Point2D{0, 0}, Point2D{2, 2}, Point2D{1, 1}, Point2D{3, 3}, true},
		{"contained", Point2D{0, 0}, Point2D{4, 4}, Point2D{1, 1}, Point2D{2, 2}, true},
		{"touching edge", Point2D{0, 0}, Point2D{1, 1}, Point2D{1, 0}, Point2D{2, 1}, true},
		{"touching corner", Point2D{0, 0}, Point2D{1, 1}, Point2D{1, 1}, Point2D{2, 2}, true},
		{"disjoint x", Point2D{0, 0}, Point2D{1, 1}, Point2D{1.5, 0}, Point2D{2, 1}, false},
		{"disjoint y", Point2D{0, 0}, Point2D{1, 1}, Point2D{0, 2}, Point2D{1, 3}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectsIntersect(tc.min1, tc.max1, tc.min2, tc.max2); got != tc.want {
				t.Errorf("RectsIntersect = %v, want %v", got, tc.want)
			}
		})
	}
}
