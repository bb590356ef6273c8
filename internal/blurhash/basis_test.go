package blurhash

import "testing"

func TestComponents_ParallelMatchesSerial(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 7}, {33, 17}} {
		li := linearize(noiseImg(size[0], size[1]))
		want := components(li, 9, 9, 1)
		for _, workers := range []int{2, 9, 81, 200} {
			got := components(li, 9, 9, workers)
			if len(got) != len(want) {
				t.Fatalf("%dx%d workers=%d: got %d factors, want %d", size[0], size[1], workers, len(got), len(want))
			}
			for k := range want {
				if got[k] != want[k] {
					t.Errorf("%dx%d workers=%d: factor %d = %v, want %v", size[0], size[1], workers, k, got[k], want[k])
				}
			}
		}
	}
}
