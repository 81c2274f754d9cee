package plate

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 100},
		{"one empty", "", "ABC1234", 0},
		{"identical", "1234567", "1234567", 100},
		{"single substitution", "1234567", "1234568", 600.0 / 7},
		{"dropped leading char", "AB12345", "B12345", 1200.0 / 13},
		{"transposed pair", "ABCD", "ACBD", 75},
		{"shifted window", "abcd", "bcde", 75},
		{"reversed", "1234567", "7654321", 200.0 / 14},
		{"disjoint", "ABC", "XYZ", 0},
		{"multibyte runes", "ＡＢ12", "ＡＢ13", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	plates := []string{"", "A", "AB12345", "B12345", "1234567", "8234567", "ZZ99ZZ9", "AAAAAAA", "A1A1A1A", "12345678"}
	for _, a := range plates {
		for _, b := range plates {
			got := Similarity(a, b)
			if got < 0 || got > 100 {
				t.Fatalf("Similarity(%q, %q) = %v, outside [0,100]", a, b, got)
			}
		}
		if a != "" && Similarity(a, a) != 100 {
			t.Fatalf("Similarity(%q, %q) = %v, want 100", a, a, Similarity(a, a))
		}
	}
}

func TestSimilaritySymmetricOnCorpus(t *testing.T) {
	pairs := [][2]string{
		{"1234567", "1234568"},
		{"AB12345", "B12345"},
		{"ABCD", "ACBD"},
		{"1234567", "7654321"},
		{"7K3M9PQ", "7K8M9PQ"},
		{"SX45B21", "5X45B21"},
		{"HJ2Z7LM", "HJ27LM"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestLongestBlockPrefersEarliest(t *testing.T) {
	a := []rune("XAYA")
	b := []rune("AA")
	b2j := map[rune][]int{'A': {0, 1}}
	i, j, k := longestBlock(a, b2j, span{0, len(a), 0, len(b)})
	if i != 1 || j != 0 || k != 1 {
		t.Fatalf("longestBlock = (%d,%d,%d), want (1,0,1)", i, j, k)
	}
}
