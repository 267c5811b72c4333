package geom

import "testing"

func TestRectWidthHeight(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rect
		wantW int
		wantH int
	}{
		{
			name:  "positive",
			rect:  R(10, 20, 50, 80),
			wantW: 40,
			wantH: 60,
		},
		{
			name:  "zero",
			rect:  R(10, 10, 10, 10),
			wantW: 0,
			wantH: 0,
		},
		{
			name:  "from origin",
			rect:  R(0, 0, 1080, 1920),
			wantW: 1080,
			wantH: 1920,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.wantW {
				t.Errorf("Width() = %v, want %v", got, tt.wantW)
			}
			if got := tt.rect.Height(); got != tt.wantH {
				t.Errorf("Height() = %v, want %v", got, tt.wantH)
			}
			if got := tt.rect.Size(); got != Pt(tt.wantW, tt.wantH) {
				t.Errorf("Size() = %v, want %v", got, Pt(tt.wantW, tt.wantH))
			}
		})
	}
}

func TestRectAddTotal(t *testing.T) {
	a := R(1, 2, 3, 4)
	b := R(10, 20, 30, 40)

	if got, want := a.Add(b), R(11, 22, 33, 44); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := a.Total(), Pt(4, 6); got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}
}

func TestRectClampAndMirror(t *testing.T) {
	r := R(-5, 3, 7, -1)

	if got, want := r.Clamp0(), R(0, 3, 7, 0); got != want {
		t.Errorf("Clamp0() = %v, want %v", got, want)
	}
	if got, want := r.MirrorX(), R(7, 3, -5, -1); got != want {
		t.Errorf("MirrorX() = %v, want %v", got, want)
	}
	if r.MirrorX().MirrorX() != r {
		t.Error("MirrorX should be its own inverse")
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 10, 10)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 9, true},
		{10, 5, false},
		{5, 10, false},
		{-1, 5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if !R(5, 5, 5, 9).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(3, -4)
	q := Pt(1, 2)

	if got, want := p.Add(q), Pt(4, -2); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := p.Sub(q), Pt(2, -6); got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := p.Min(q), Pt(1, -4); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := p.Max(q), Pt(3, 2); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
	if got, want := p.Clamp0(), Pt(3, 0); got != want {
		t.Errorf("Clamp0() = %v, want %v", got, want)
	}
	if got := p.String(); got != "3x-4" {
		t.Errorf("String() = %q, want %q", got, "3x-4")
	}
}
