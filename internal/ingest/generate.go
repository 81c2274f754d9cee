package ingest

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"platefix/internal/fileutil"
)

const plateAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const generatedPlateLength = 7

// lookalikes maps characters to the glyph a camera most often confuses them with.
var lookalikes = map[byte]byte{
	'0': '8', '1': '7', '2': 'Z', '3': '8',
	'5': 'S', '6': 'G', '8': '3', 'B': '8',
	'S': '5', 'Z': '2',
}

// ErrKind names the misread applied to the second plate of a generated pair.
type ErrKind string

const (
	// ErrKindSwap replaces one character with its look-alike.
	ErrKindSwap ErrKind = "swap"
	// ErrKindRemove drops one character.
	ErrKindRemove ErrKind = "remove"
)

// GenerateOptions controls synthetic detection output.
type GenerateOptions struct {
	// Records is the total row count; it must be even.
	Records int
	// Seed fixes the random sequence. Zero seeds from the clock.
	Seed int64
	// Start is the timestamp of the first row. Zero uses the current time.
	Start time.Time
	// ReadingGap separates the two reads of a pair.
	ReadingGap time.Duration
	// PairGap separates the second read of a pair from the next pair.
	PairGap time.Duration
}

// Pair is one generated original read and its misread.
type Pair struct {
	Original Record
	Misread  Record
	Kind     ErrKind
}

// Generate returns Records/2 pairs in time order.
func Generate(opts GenerateOptions) ([]Pair, error) {
	if opts.Records <= 0 || opts.Records%2 != 0 {
		return nil, fmt.Errorf("records must be a positive even number, got %d", opts.Records)
	}
	if opts.ReadingGap < 0 || opts.PairGap < 0 {
		return nil, errors.New("gaps must not be negative")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = start.UTC().Truncate(time.Second)

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)^0x9e3779b97f4a7c15))
	at := start
	pairs := make([]Pair, 0, opts.Records/2)
	for range opts.Records / 2 {
		base := randomPlate(rng)
		errPlate, kind := misread(rng, base)

		pair := Pair{
			Original: Record{Timestamp: at, Plate: base},
			Kind:     kind,
		}
		at = at.Add(opts.ReadingGap)
		pair.Misread = Record{Timestamp: at, Plate: errPlate}
		at = at.Add(opts.PairGap)
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// Flatten returns the records of pairs in time order.
func Flatten(pairs []Pair) []Record {
	records := make([]Record, 0, len(pairs)*2)
	for _, p := range pairs {
		records = append(records, p.Original, p.Misread)
	}
	return records
}

// GenerateFile writes generated records to path atomically, creating parent
// directories.
func GenerateFile(path string, opts GenerateOptions) ([]Pair, error) {
	pairs, err := Generate(opts)
	if err != nil {
		return nil, err
	}
	records := Flatten(pairs)
	if err := fileutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return WriteCSV(w, records)
	}); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return pairs, nil
}

func randomPlate(rng *rand.Rand) string {
	b := make([]byte, generatedPlateLength)
	for i := range b {
		b[i] = plateAlphabet[rng.IntN(len(plateAlphabet))]
	}
	return string(b)
}

// misread applies a swap or a removal. A swap on a plate with no look-alike
// characters leaves it unchanged, which the matcher skips as identical.
func misread(rng *rand.Rand, base string) (string, ErrKind) {
	b := []byte(base)
	if rng.IntN(2) == 0 {
		var candidates []int
		for i, c := range b {
			if _, ok := lookalikes[c]; ok {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) > 0 {
			pos := candidates[rng.IntN(len(candidates))]
			b[pos] = lookalikes[b[pos]]
		}
		return string(b), ErrKindSwap
	}
	pos := rng.IntN(len(b))
	return string(append(b[:pos:pos], b[pos+1:]...)), ErrKindRemove
}
