package plate

// Similarity returns the matching-block ratio of a and b as a percentage in
// [0, 100]: 2*M / (len(a)+len(b)) * 100, where M is the number of characters
// covered by the recursive longest-common-block alignment. Lengths count
// runes. Two empty strings are identical and score 100.
//
// When several longest blocks exist, the one ending earliest in a wins, then
// the one earliest in b. The ratio is not guaranteed symmetric for every
// input under that rule.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 200 * float64(matchedRunes(ra, rb)) / float64(total)
}

type span struct {
	alo, ahi, blo, bhi int
}

func matchedRunes(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	pending := []span{{0, len(a), 0, len(b)}}
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		i, j, k := longestBlock(a, b2j, s)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			pending = append(pending, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			pending = append(pending, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestBlock finds the longest run a[i:i+k] == b[j:j+k] inside s.
func longestBlock(a []rune, b2j map[rune][]int, s span) (int, int, int) {
	besti, bestj, bestk := s.alo, s.blo, 0
	runs := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := runs[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		runs = next
	}
	return besti, bestj, bestk
}
