package nitf_test

import (
	"testing"

	nitf "github.com/ngageoint/six-library-sub016"
	"github.com/ngageoint/six-library-sub016/ioif"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T) *record.Record {
	t.Helper()
	rec, err := record.New(record.Version21)
	require.NoError(t, err)

	require.NoError(t, rec.Header.Title.SetString("A TEST FILE"))
	require.NoError(t, rec.Header.OriginatingStation.SetString("STATION01"))

	text, err := record.NewTextSubheader(record.Version21)
	require.NoError(t, err)
	text.TextID = "TEXT0001"
	text.Format = "STA"
	seg := &record.Segment{Kind: record.KindText, Text: text, Data: []byte("hello nitf")}
	rec.Texts = append(rec.Texts, seg)

	return rec
}

func TestWriteParseRoundTrip(t *testing.T) {
	rec := newTestRecord(t)

	buf := ioif.NewGrowableBuffer()
	require.NoError(t, nitf.Write(buf, rec, nitf.WriteOptions{}))

	in := ioif.NewBufferHandle(buf.Bytes(), false)
	got, err := nitf.Parse(in, nitf.ParseOptions{Strict: true})
	require.NoError(t, err)

	assert.Equal(t, "A TEST FILE", got.Header.Title.GetString())
	require.Len(t, got.Texts, 1)
	assert.Equal(t, "TEXT0001", got.Texts[0].Text.TextID)
	assert.Equal(t, []byte("hello nitf"), got.Texts[0].Data)
}

func TestWriteParseRoundTripEmptyRecord(t *testing.T) {
	rec, err := record.New(record.Version21)
	require.NoError(t, err)

	buf := ioif.NewGrowableBuffer()
	require.NoError(t, nitf.Write(buf, rec, nitf.WriteOptions{}))

	in := ioif.NewBufferHandle(buf.Bytes(), false)
	got, err := nitf.Parse(in, nitf.ParseOptions{Strict: true})
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Texts)
}
