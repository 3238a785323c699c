package trail

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/glowpend/internal/dynamo"
)

func fill(b *Buffer, n int) {
	for i := 0; i < n; i++ {
		b.Push(Point{Pos: dynamo.Point{X: float64(i)}, T: time.Duration(i) * time.Millisecond})
	}
}

func TestNewestFirst(t *testing.T) {
	b := New(8)
	fill(b, 3)

	if b.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", b.Len())
	}
	if b.At(0).Pos.X != 2 || b.At(2).Pos.X != 0 {
		t.Errorf("expected newest-first order, got %v", b.Snapshot())
	}
	p, ok := b.Newest()
	if !ok || p.Pos.X != 2 {
		t.Errorf("expected newest x=2, got %+v (ok=%v)", p, ok)
	}
}

func TestTruncateDropsOldest(t *testing.T) {
	b := New(16)
	fill(b, 10)
	b.Truncate(4)

	if b.Len() != 4 {
		t.Fatalf("expected 4 points, got %d", b.Len())
	}
	for i := 0; i < 4; i++ {
		if want := float64(9 - i); b.At(i).Pos.X != want {
			t.Errorf("index %d: expected x=%v, got %v", i, want, b.At(i).Pos.X)
		}
	}

	b.Truncate(10)
	if b.Len() != 4 {
		t.Errorf("truncate above length should be a no-op, got %d", b.Len())
	}
	b.Truncate(-1)
	if b.Len() != 0 {
		t.Errorf("negative cap should empty the buffer, got %d", b.Len())
	}
}

func TestKeepFraction(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0},
		{1, 0},
		{5, 3},
		{10, 6},
		{501, 300},
	}

	for _, tt := range tests {
		b := New(tt.n)
		fill(b, tt.n)
		b.KeepFraction(0.6)
		if b.Len() != tt.want {
			t.Errorf("len %d: expected %d kept, got %d", tt.n, tt.want, b.Len())
		}
		if limit := int(math.Ceil(0.6 * float64(tt.n))); b.Len() > limit {
			t.Errorf("len %d: kept %d exceeds ceil bound %d", tt.n, b.Len(), limit)
		}
		if tt.want > 0 && b.At(0).Pos.X != float64(tt.n-1) {
			t.Errorf("len %d: newest point was dropped", tt.n)
		}
	}
}

func TestAlphaFade(t *testing.T) {
	p := Point{T: time.Second}
	tests := []struct {
		now  time.Duration
		want float64
	}{
		{time.Second, 1},
		{3 * time.Second, 0.5},
		{5 * time.Second, 0},
		{9 * time.Second, 0},
	}
	for _, tt := range tests {
		if got := p.Alpha(tt.now); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("now=%v: expected alpha %v, got %v", tt.now, tt.want, got)
		}
	}
}

func TestEachStopsEarly(t *testing.T) {
	b := New(4)
	fill(b, 4)
	visited := 0
	b.Each(func(i int, p Point) bool {
		visited++
		return i < 1
	})
	if visited != 2 {
		t.Errorf("expected 2 visits, got %d", visited)
	}
}

func TestClear(t *testing.T) {
	b := New(4)
	fill(b, 4)
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got %d", b.Len())
	}
	if _, ok := b.Newest(); ok {
		t.Error("expected no newest point after clear")
	}
}
