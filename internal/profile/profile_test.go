package profile

import "testing"

func TestGet_Fallback(t *testing.T) {
	p := Get("nope")
	if p.Name != "nope" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.X != 4 || p.Y != 3 || p.MaxDim != 0 {
		t.Errorf("fallback should be default grid, got %+v", p)
	}
}

func TestGet_BuiltIns(t *testing.T) {
	for _, name := range Names() {
		if p := Get(name); p.Name != name {
			t.Errorf("%s: got name %q", name, p.Name)
		}
	}
}

func TestComponents_Fixed(t *testing.T) {
	nx, ny := Get("default").Components(1000, 10)
	if nx != 4 || ny != 3 {
		t.Errorf("got %dx%d, want 4x3", nx, ny)
	}

	p := Profile{X: 0, Y: 12}
	nx, ny = p.Components(10, 10)
	if nx != 1 || ny != 9 {
		t.Errorf("clamp: got %dx%d, want 1x9", nx, ny)
	}
}

func TestComponents_Adaptive(t *testing.T) {
	p := Get("adaptive")
	tests := []struct {
		w, h   int
		nx, ny int
	}{
		{100, 100, 6, 6},
		{1600, 900, 6, 3},
		{900, 1600, 3, 6},
		{1000, 10, 6, 1},
	}
	for _, tt := range tests {
		nx, ny := p.Components(tt.w, tt.h)
		if nx != tt.nx || ny != tt.ny {
			t.Errorf("%dx%d: got %dx%d, want %dx%d", tt.w, tt.h, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestDownsize(t *testing.T) {
	p := Get("fast")
	tests := []struct {
		w, h   int
		dw, dh int
		ok     bool
	}{
		{32, 32, 32, 32, false},
		{64, 64, 64, 64, false},
		{640, 480, 64, 48, true},
		{480, 640, 48, 64, true},
		{6400, 10, 64, 1, true},
	}
	for _, tt := range tests {
		dw, dh, ok := p.Downsize(tt.w, tt.h)
		if dw != tt.dw || dh != tt.dh || ok != tt.ok {
			t.Errorf("%dx%d: got %dx%d %v, want %dx%d %v", tt.w, tt.h, dw, dh, ok, tt.dw, tt.dh, tt.ok)
		}
	}

	if _, _, ok := Get("default").Downsize(5000, 5000); ok {
		t.Error("default profile must keep full resolution")
	}
}
