package field_test

import (
	"testing"

	"github.com/ngageoint/six-library-sub016/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetString(t *testing.T) {
	f, err := field.New(10, field.BCSA)
	require.NoError(t, err)

	require.NoError(t, f.SetString("HELLO"))
	assert.Equal(t, "HELLO", f.GetString())
	assert.Equal(t, "HELLO     ", string(f.GetRawBytes()))
}

func TestSetStringTooWide(t *testing.T) {
	f, err := field.New(4, field.BCSA)
	require.NoError(t, err)

	err = f.SetString("TOOWIDE")
	assert.Error(t, err)
}

func TestSetGetInteger(t *testing.T) {
	f, err := field.New(5, field.BCSN)
	require.NoError(t, err)

	require.NoError(t, f.SetInteger(42))
	assert.Equal(t, "00042", string(f.GetRawBytes()))

	v, err := f.GetInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestBinaryIntegerBigEndian(t *testing.T) {
	f, err := field.New(4, field.Binary)
	require.NoError(t, err)

	require.NoError(t, f.SetBytes([]byte{0x00, 0x00, 0x01, 0x00}))
	v, err := f.GetUnsigned()
	require.NoError(t, err)
	assert.Equal(t, uint64(256), v)
}

func TestUnsetBlank(t *testing.T) {
	f, err := field.New(3, field.BCSN)
	require.NoError(t, err)
	assert.True(t, f.IsUnset())

	require.NoError(t, f.SetInteger(1))
	assert.False(t, f.IsUnset())
}

func TestWrongClassRejected(t *testing.T) {
	f, err := field.New(3, field.BCSN)
	require.NoError(t, err)

	err = f.SetString("abc")
	assert.Error(t, err)
}
