package timing

import (
	"math/rand/v2"
	"testing"

	"github.com/flashrecord/flashgif/internal/frame"
)

func TestRound10(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 10},
		{3, 10},
		{166.67, 170},
		{125, 120},
		{135, 140},
		{1000, 1000},
	}
	for _, tt := range tests {
		if got := Round10(tt.in); got != tt.want {
			t.Errorf("Round10(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPreserveFiftyToThirty(t *testing.T) {
	durs := Preserve(50, 10, 30)

	if len(durs) != 30 {
		t.Fatalf("len = %d, want 30", len(durs))
	}
	for i, d := range durs {
		if d <= 0 || d%TickMS != 0 {
			t.Errorf("durs[%d] = %d, want a positive multiple of %d", i, d, TickMS)
		}
	}
	if !Within(durs, 5000) {
		t.Errorf("sum = %d, want within %d of 5000", Sum(durs), ToleranceMS)
	}
}

func TestPreserveSpreadsDriftFromFront(t *testing.T) {
	// 1000ms over 3 frames rounds to 330 each; the missing 10ms goes to frame 0.
	durs := Preserve(10, 10, 3)
	want := []int{340, 330, 330}
	for i := range want {
		if durs[i] != want[i] {
			t.Fatalf("durs = %v, want %v", durs, want)
		}
	}
}

func TestPreserveProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 42))
	for trial := 0; trial < 500; trial++ {
		origN := 1 + r.IntN(400)
		fps := []float64{5, 8, 10, 12.5, 15, 24, 30}[r.IntN(7)]
		out := 1 + r.IntN(origN)
		total := frame.TotalMS(origN, fps)
		if total < out*TickMS {
			continue
		}

		durs := Preserve(origN, fps, out)
		if len(durs) != out {
			t.Fatalf("Preserve(%d, %v, %d) len = %d", origN, fps, out, len(durs))
		}
		for _, d := range durs {
			if d <= 0 || d%TickMS != 0 {
				t.Fatalf("Preserve(%d, %v, %d) has duration %d", origN, fps, out, d)
			}
		}
		if !Within(durs, total) {
			t.Fatalf("Preserve(%d, %v, %d) sum = %d, want %d +/- %d", origN, fps, out, Sum(durs), total, ToleranceMS)
		}
	}
}

func TestPreserveEmpty(t *testing.T) {
	if got := Preserve(10, 10, 0); got != nil {
		t.Errorf("Preserve(..., 0) = %v, want nil", got)
	}
}

func TestFixed(t *testing.T) {
	durs := Fixed(8, 4)
	for _, d := range durs {
		if d != 120 {
			t.Errorf("Fixed(8) duration = %d, want 120", d)
		}
	}
	if Fixed(0, 2)[0] != 1000 {
		t.Errorf("Fixed(0) should clamp fps to 1")
	}
}
