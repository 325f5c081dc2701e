package rng

import (
	"fmt"
	"math"
	"sort"
	"testing"
)

func TestWeightedChoiceZeroTotal(t *testing.T) {
	s := New("zero")
	items := []Weighted[string]{{"fail", 0}, {"success", -1}, {"normal", 0}}
	if got := WeightedChoice(s, items); got != "fail" {
		t.Errorf("zero total picked %q, want first key", got)
	}
	// Поток не должен сдвинуться.
	if a, b := s.Float(), New("zero").Float(); a != b {
		t.Error("zero-total choice consumed the stream")
	}
}

func TestWeightedChoiceDistribution(t *testing.T) {
	weights := []Weighted[string]{{"fail", 0.2}, {"success", 0.3}, {"normal", 0.5}}
	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		s := New(fmt.Sprintf("critical-%d", i))
		counts[WeightedChoice(s, weights)]++
	}
	for _, w := range weights {
		got := float64(counts[w.Key]) / n
		if math.Abs(got-w.Weight) > 0.02 {
			t.Errorf("%s: frequency %.4f, want %.2f±0.02", w.Key, got, w.Weight)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := Shuffle(New("shuffle"), src)
	if len(got) != len(src) {
		t.Fatalf("len = %d", len(got))
	}
	sorted := append([]int(nil), got...)
	sort.Ints(sorted)
	for i := range src {
		if sorted[i] != src[i] {
			t.Fatalf("not a permutation: %v", got)
		}
	}
	again := Shuffle(New("shuffle"), src)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("shuffle not reproducible: %v vs %v", got, again)
		}
	}
	if src[0] != 1 || src[7] != 8 {
		t.Error("Shuffle modified its input")
	}
}

func TestChoiceAndBool(t *testing.T) {
	s := New("choice")
	if _, ok := Choice[int](s, nil); ok {
		t.Error("Choice on empty slice reported ok")
	}
	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v, ok := Choice(s, items)
		if !ok || (v != "a" && v != "b" && v != "c") {
			t.Fatalf("Choice = %q, %v", v, ok)
		}
	}
	if !s.Bool(1) || s.Bool(0) {
		t.Error("Bool edge probabilities wrong")
	}
	for i := 0; i < 100; i++ {
		if v := s.Range(0.8, 1.2); v < 0.8 || v >= 1.2 {
			t.Fatalf("Range(0.8,1.2) = %v", v)
		}
	}
}

func TestBoolHalfIsFair(t *testing.T) {
	const n = 10000
	hits := 0
	for i := 0; i < n; i++ {
		if New(fmt.Sprintf("bit-%d", i)).Bool(0.5) {
			hits++
		}
	}
	if share := float64(hits) / n; math.Abs(share-0.5) > 0.03 {
		t.Errorf("Bool(0.5) true share = %.4f, want 0.5±0.03", share)
	}
}

func TestBitUsesLowBitOnly(t *testing.T) {
	s := NewFromSource(constBlocks(0xFE))
	if s.Bit() {
		t.Error("0xFE gave true")
	}
	s = NewFromSource(constBlocks(0x01))
	if !s.Bit() {
		t.Error("0x01 gave false")
	}
}

type constBlocks byte

func (c constBlocks) NextBlock() []byte {
	out := make([]byte, BlockSize)
	for i := range out {
		out[i] = byte(c)
	}
	return out
}
