// Package target holds the immutable set of hash values a search is trying
// to find preimages for.
package target

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var ErrUnsorted = errors.New("target hashes are not sorted ascending")

// Index is a read-only sorted set of target hashes. It is never mutated
// after construction and is safe to share across search workers.
type Index struct {
	hashes []uint32
}

// New builds an Index over an already-sorted ascending slice. Keeping the
// slice sorted is the caller's contract; unsorted input is rejected here
// rather than discovered mid-search. Duplicates are tolerated.
func New(hashes []uint32) (*Index, error) {
	for i := 1; i < len(hashes); i++ {
		if hashes[i] < hashes[i-1] {
			return nil, errors.Wrapf(ErrUnsorted, "index %d", i)
		}
	}
	return &Index{hashes: hashes}, nil
}

// FromUnsorted copies and sorts the given hashes.
func FromUnsorted(hashes []uint32) *Index {
	sorted := make([]uint32, len(hashes))
	copy(sorted, hashes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &Index{hashes: sorted}
}

// Contains reports whether h is a target.
func (x *Index) Contains(h uint32) bool {
	i := sort.Search(len(x.hashes), func(i int) bool { return x.hashes[i] >= h })
	return i < len(x.hashes) && x.hashes[i] == h
}

func (x *Index) Len() int {
	return len(x.hashes)
}

// Hashes returns the sorted targets. Callers must not modify the slice.
func (x *Index) Hashes() []uint32 {
	return x.hashes
}

// Load reads a target list from a file, one hash per line, hex (with or
// without 0x) or decimal. Files ending in .zst are decompressed on the fly.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open target list")
	}
	defer func() { _ = f.Close() }()
	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open zstd target list")
		}
		defer dec.Close()
		r = dec
	}
	return Parse(r)
}

// Parse reads newline-separated hashes. Blank lines and lines starting with
// '#' are skipped; anything after the first whitespace on a line is ignored
// so annotated exports ("<hash> <bank>") load as-is.
func Parse(r io.Reader) (*Index, error) {
	var hashes []uint32
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if i := strings.IndexAny(text, " \t"); i >= 0 {
			text = text[:i]
		}
		h, err := ParseHash(text)
		if err != nil {
			return nil, errors.Wrapf(err, "target list line %d", line)
		}
		hashes = append(hashes, h)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read target list")
	}
	return FromUnsorted(hashes), nil
}

// ParseHash parses a single hash value, hex (with or without 0x) or decimal.
func ParseHash(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err == nil {
		return uint32(v), nil
	}
	// Bare hex without the 0x prefix.
	v, hexErr := strconv.ParseUint(s, 16, 32)
	if hexErr != nil {
		return 0, err
	}
	return uint32(v), nil
}
