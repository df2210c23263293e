package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOnesBitmap() []byte {
	raw := make([]byte, (TableSize+7)/8)
	for i := range raw {
		raw[i] = 0xFF
	}
	return raw
}

func TestFromBitmapTooSmall(t *testing.T) {
	_, err := FromBitmap(make([]byte, 16))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBitmapSize)
}

func TestNilFilterAllowsEverything(t *testing.T) {
	var f *Filter
	assert.True(t, f.Allow('q', 'x', 'z'))
	assert.True(t, f.AllowString("qxzqxz"))
}

func TestAllOnesAllowsEverything(t *testing.T) {
	f, err := FromBitmap(allOnesBitmap())
	require.NoError(t, err)
	assert.True(t, f.AllowString("play_music"))
	assert.True(t, f.Allow('q', 'q', 'q'))
}

func TestClearedBitBlocksTrigram(t *testing.T) {
	raw := allOnesBitmap()
	i := index('q', 'x', 'z')
	raw[i/8] &^= 1 << (i % 8)
	f, err := FromBitmap(raw)
	require.NoError(t, err)
	assert.False(t, f.Allow('q', 'x', 'z'))
	assert.False(t, f.AllowString("aqxzb"))
	assert.True(t, f.AllowString("qx")) // too short to carry a window
}

func TestIndexCaseFolded(t *testing.T) {
	assert.Equal(t, index('a', 'b', 'c'), index('A', 'B', 'C'))
}

func TestValidateAgainstKnownCorpus(t *testing.T) {
	corpus := []string{"test", "play_music", "explosion_large"}

	f, err := FromBitmap(allOnesBitmap())
	require.NoError(t, err)
	require.NoError(t, f.Validate(corpus))

	raw := allOnesBitmap()
	i := index('m', 'u', 's')
	raw[i/8] &^= 1 << (i % 8)
	f, err = FromBitmap(raw)
	require.NoError(t, err)
	err = f.Validate(corpus)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrunes)
	assert.Contains(t, err.Error(), "play_music")
}
