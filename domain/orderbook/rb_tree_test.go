package orderbook

import (
	"math/rand"
	"testing"
)

func TestRBTreeInsertFindBestMinMax(t *testing.T) {
	tree := NewRBTree()
	prices := []float64{50, 30, 70, 20, 40, 60, 80, 10}
	for _, p := range prices {
		tree.GetOrCreate(p)
	}

	if got := tree.BestMin().Price; got != 10 {
		t.Fatalf("BestMin() = %v, want 10", got)
	}
	if got := tree.BestMax().Price; got != 80 {
		t.Fatalf("BestMax() = %v, want 80", got)
	}
	for _, p := range prices {
		if tree.Find(p) == nil {
			t.Fatalf("Find(%v) = nil, want a level", p)
		}
	}
	if tree.Find(999) != nil {
		t.Fatalf("Find(999) = non-nil, want nil")
	}
}

func TestRBTreeAscDescWalkOrdering(t *testing.T) {
	tree := NewRBTree()
	prices := []float64{5, 1, 9, 3, 7, 2, 8, 4, 6}
	for _, p := range prices {
		tree.GetOrCreate(p)
	}

	var asc []float64
	tree.WalkAsc(func(l *PriceLevel) { asc = append(asc, l.Price) })
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("WalkAsc not strictly increasing at %d: %v", i, asc)
		}
	}

	var desc []float64
	tree.WalkDesc(func(l *PriceLevel) { desc = append(desc, l.Price) })
	for i := 1; i < len(desc); i++ {
		if desc[i-1] <= desc[i] {
			t.Fatalf("WalkDesc not strictly decreasing at %d: %v", i, desc)
		}
	}
}

func TestRBTreeDeleteMaintainsOrdering(t *testing.T) {
	tree := NewRBTree()
	r := rand.New(rand.NewSource(1))
	var prices []float64
	for i := 0; i < 200; i++ {
		p := float64(r.Intn(1000))
		if tree.Find(p) == nil {
			prices = append(prices, p)
		}
		tree.GetOrCreate(p)
	}

	for i, p := range prices {
		if i%2 == 0 {
			tree.Delete(p)
			if tree.Find(p) != nil {
				t.Fatalf("Find(%v) after Delete = non-nil", p)
			}
		}
	}

	var asc []float64
	tree.WalkAsc(func(l *PriceLevel) { asc = append(asc, l.Price) })
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("ordering violated after deletes at %d: %v", i, asc)
		}
	}
}

func TestPriceEqualTolerance(t *testing.T) {
	if !PriceEqual(100.0, 100.0+5e-9) {
		t.Fatalf("expected prices within tolerance to be equal")
	}
	if PriceEqual(100.0, 100.0+5e-7) {
		t.Fatalf("expected prices outside tolerance to be unequal")
	}
}
