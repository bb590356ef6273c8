package profile

// Profile defines hashing parameters for a batch build.
type Profile struct {
	Name     string
	X, Y     int  // component grid; for Adaptive, X is the long-side maximum
	MaxDim   int  // downsize to fit MaxDim×MaxDim before hashing; 0 = full resolution
	Adaptive bool // derive the grid from the aspect ratio
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name: "default",
		X:    4,
		Y:    3,
	},
	"fast": {
		Name:   "fast",
		X:      4,
		Y:      3,
		MaxDim: 64,
	},
	"adaptive": {
		Name:     "adaptive",
		X:        6,
		Y:        6,
		MaxDim:   128,
		Adaptive: true,
	},
	"detailed": {
		Name: "detailed",
		X:    9,
		Y:    9,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names in display order.
func Names() []string {
	return []string{"default", "fast", "adaptive", "detailed"}
}

// Components returns the component grid for a w×h image.
func (p Profile) Components(w, h int) (nx, ny int) {
	if !p.Adaptive || w <= 0 || h <= 0 {
		return clampComponents(p.X), clampComponents(p.Y)
	}

	// Long side gets the maximum, short side scales with the aspect ratio.
	long := clampComponents(p.X)
	if w >= h {
		return long, clampComponents(roundDiv(long*h, w))
	}
	return clampComponents(roundDiv(long*w, h)), long
}

// Downsize reports the dimensions to fit w×h into MaxDim, preserving the
// aspect ratio. ok is false when no resize is needed.
func (p Profile) Downsize(w, h int) (dw, dh int, ok bool) {
	if p.MaxDim <= 0 || (w <= p.MaxDim && h <= p.MaxDim) {
		return w, h, false
	}
	if w >= h {
		return p.MaxDim, max(1, h*p.MaxDim/w), true
	}
	return max(1, w*p.MaxDim/h), p.MaxDim, true
}

func clampComponents(v int) int {
	return min(max(v, 1), 9)
}

func roundDiv(a, b int) int {
	return (2*a + b) / (2 * b)
}
