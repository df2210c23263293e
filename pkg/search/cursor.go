package search

import (
	"github.com/pkg/errors"

	"github.com/ykhdr/crack-fnv/pkg/charset"
)

var ErrLengthRange = errors.New("invalid length range")

// Cursor is the enumerator's odometer: a vector of per-position alphabet
// indices plus the current candidate length. It fully determines the next
// candidate, so a shard can be checkpointed and resumed from the exact point
// of interruption. The exported, XML-tagged fields are the serialized form.
//
// Positions covered by the fixed prefix never move; the remaining positions
// count through their alphabets like a mixed-radix number, last position
// fastest, carrying leftward on overflow. When the carry passes the first
// mutable position the cursor steps to the next length, and past MaxLength
// it is exhausted.
type Cursor struct {
	Rules     charset.Rules `xml:"Rules"`
	Prefix    string        `xml:"Prefix,omitempty"`
	MinLength int           `xml:"MinLength"`
	MaxLength int           `xml:"MaxLength"`
	Length    int           `xml:"Length"`
	Indices   []int         `xml:"Indices>I"`
}

// NewCursor positions a cursor at the first candidate of the range. The
// prefix counts toward candidate length; a prefix at least MinLength long is
// itself the first candidate.
func NewCursor(rules charset.Rules, prefix string, minLen, maxLen int) (*Cursor, error) {
	if minLen < 1 || maxLen < minLen {
		return nil, errors.Wrapf(ErrLengthRange, "min %d max %d", minLen, maxLen)
	}
	if len(prefix) > maxLen {
		return nil, errors.Wrapf(ErrLengthRange, "prefix %q longer than max %d", prefix, maxLen)
	}
	start := minLen
	if start < len(prefix) {
		start = len(prefix)
	}
	return &Cursor{
		Rules:     rules,
		Prefix:    prefix,
		MinLength: minLen,
		MaxLength: maxLen,
		Length:    start,
		Indices:   make([]int, start-len(prefix)),
	}, nil
}

// Exhausted reports whether the cursor has moved past the last candidate.
func (c *Cursor) Exhausted() bool {
	return c.Length > c.MaxLength
}

// Candidate appends the current candidate to buf and returns it.
func (c *Cursor) Candidate(buf []byte) []byte {
	buf = append(buf, c.Prefix...)
	for i, idx := range c.Indices {
		buf = append(buf, charset.Alphabet(c.Rules, len(c.Prefix)+i)[idx])
	}
	return buf
}

// Advance moves the cursor to the next candidate in lexicographic order.
func (c *Cursor) Advance() {
	for pos := len(c.Indices) - 1; pos >= 0; pos-- {
		alpha := charset.Alphabet(c.Rules, len(c.Prefix)+pos)
		if c.Indices[pos]+1 < len(alpha) {
			c.Indices[pos]++
			return
		}
		c.Indices[pos] = 0
	}
	c.Length++
	if c.Length <= c.MaxLength {
		c.Indices = make([]int, c.Length-len(c.Prefix))
	}
}

// Clone returns an independent snapshot of the cursor.
func (c *Cursor) Clone() *Cursor {
	indices := make([]int, len(c.Indices))
	copy(indices, c.Indices)
	cp := *c
	cp.Indices = indices
	return &cp
}
