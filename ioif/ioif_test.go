package ioif_test

import (
	"bytes"
	"testing"

	"github.com/ngageoint/six-library-sub016/ioif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferHandleReadWriteSeek(t *testing.T) {
	h := ioif.NewGrowableBuffer()

	require.NoError(t, ioif.WriteFull(h, []byte("HELLOWORLD")))

	size, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	_, err = h.Seek(0, ioif.Set)
	require.NoError(t, err)

	out := make([]byte, 10)
	require.NoError(t, ioif.ReadFull(h, out))
	assert.Equal(t, "HELLOWORLD", string(out))
}

func TestBufferHandleReadOnlyRejectsWrite(t *testing.T) {
	h := ioif.NewBufferHandle([]byte("abc"), false)
	_, err := h.Write([]byte("x"))
	assert.Error(t, err)
}

func TestStreamAdapterNotSeekable(t *testing.T) {
	a := ioif.NewStreamAdapter(bytes.NewReader([]byte("abc")), nil, nil, nil)
	assert.False(t, a.CanSeek())
	_, err := a.Seek(0, ioif.Set)
	assert.Error(t, err)
}

func TestStreamAdapterReadWrite(t *testing.T) {
	var buf bytes.Buffer
	a := ioif.NewStreamAdapter(bytes.NewReader([]byte("IN")), &buf, nil, nil)

	out := make([]byte, 2)
	require.NoError(t, ioif.ReadFull(a, out))
	assert.Equal(t, "IN", string(out))

	require.NoError(t, ioif.WriteFull(a, []byte("OUT")))
	assert.Equal(t, "OUT", buf.String())
}
