// Package ngram provides a precomputed plausibility filter over 3-character
// windows, used to prune branches the identifier language would never
// produce.
//
// The filter is a heuristic trade of completeness for speed: a true preimage
// containing a statistically rare trigram will be missed. It is strictly
// opt-in and is never constructed implicitly; validate a bitmap against the
// already-cracked corpus before trusting it to prune a long search.
package ngram

import (
	"bytes"
	"os"

	"github.com/bits-and-blooms/bitset"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// TableSize is one bit per base-37 trigram slot.
const TableSize = 37 * 37 * 37

var (
	ErrBitmapSize = errors.New("ngram bitmap too small")
	ErrPrunes     = errors.New("ngram bitmap prunes a known identifier")
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Filter is an immutable trigram bitmap. A cleared bit marks the trigram
// implausible. The zero filter (nil) allows everything.
type Filter struct {
	bits *bitset.BitSet
}

// Load reads a bitmap file, zstd-compressed or raw.
func Load(path string) (*Filter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read ngram bitmap")
	}
	return FromBitmap(raw)
}

// FromBitmap builds a Filter from a packed bit array, one bit per trigram
// index, LSB first within each byte. zstd-compressed input is detected by
// its magic and decompressed.
func FromBitmap(raw []byte) (*Filter, error) {
	if bytes.HasPrefix(raw, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "init zstd")
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, errors.Wrap(err, "decompress ngram bitmap")
		}
	}
	if len(raw) < (TableSize+7)/8 {
		return nil, errors.Wrapf(ErrBitmapSize, "%d bytes, want %d", len(raw), (TableSize+7)/8)
	}
	bits := bitset.New(TableSize)
	for i := uint(0); i < TableSize; i++ {
		if raw[i/8]>>(i%8)&1 == 1 {
			bits.Set(i)
		}
	}
	return &Filter{bits: bits}, nil
}

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// index matches the native filter layout: raw lowercased byte values in
// base 37, wrapped to the table size.
func index(a, b, c byte) uint {
	return (uint(fold(a))*37*37 + uint(fold(b))*37 + uint(fold(c))) % TableSize
}

// Allow reports whether the trigram a,b,c is plausible.
func (f *Filter) Allow(a, b, c byte) bool {
	if f == nil {
		return true
	}
	return f.bits.Test(index(a, b, c))
}

// AllowString reports whether every 3-character window of s is plausible.
// Strings shorter than 3 characters are always allowed.
func (f *Filter) AllowString(s string) bool {
	if f == nil {
		return true
	}
	for i := 0; i+3 <= len(s); i++ {
		if !f.Allow(s[i], s[i+1], s[i+2]) {
			return false
		}
	}
	return true
}

// Validate checks the filter against a corpus of known-good identifiers and
// fails if any of them would have been pruned.
func (f *Filter) Validate(corpus []string) error {
	for _, name := range corpus {
		if !f.AllowString(name) {
			return errors.Wrap(ErrPrunes, name)
		}
	}
	return nil
}
