package tre_test

import (
	"strings"
	"testing"

	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/tre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIATGARoundTrip(t *testing.T) {
	d := tre.PIATGADescriptor()

	values := []string{
		strings.Repeat(" ", 15),
		"TARGET1        ",
		"US",
		"CAT01",
		strings.Repeat(" ", 15),
		"WGS",
		"SOME TARGET NAME HERE               ",
		"050",
	}
	raw := strings.Join(values, "")
	require.Len(t, raw, 96)

	inst, err := tre.Decode(d, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "PIATGA", inst.Tag())
	assert.False(t, inst.Malformed())
	assert.Equal(t, 96, inst.Len())

	pct := inst.Get("PERCOVER")
	require.NotNil(t, pct)
	v, err := pct.GetInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)

	assert.Equal(t, raw, string(tre.Encode(inst)))
}

func TestRegistryFallbackGeneric(t *testing.T) {
	r := tre.NewRegistry()
	tre.RegisterBuiltins(r)

	inst, err := tre.DecodeTRE(r, "ZZZZZZ", make([]byte, 10), false)
	require.NoError(t, err)
	assert.False(t, inst.Malformed())
	assert.Equal(t, 10, inst.Len())
}

func TestRegistryStrictUnknown(t *testing.T) {
	r := tre.NewRegistry()
	_, err := tre.DecodeTRE(r, "ZZZZZZ", make([]byte, 10), true)
	assert.Error(t, err)
}

func TestRegistryLengthMismatchMalformed(t *testing.T) {
	r := tre.NewRegistry()
	tre.RegisterBuiltins(r)

	inst, err := tre.DecodeTRE(r, "PIATGA", make([]byte, 10), false)
	assert.Error(t, err)
	require.NotNil(t, inst)
	assert.True(t, inst.Malformed())
}

func TestLoopAndArrayIndexRewrite(t *testing.T) {
	b := tre.NewBuilder("LOOPTR", "")
	b.Add(
		tre.Simple(tre.FieldSpec{Class: field.BCSN, Length: 2, Key: "COUNT"}),
		tre.Loop(tre.CountSource{Kind: tre.CountPriorField, FieldName: "COUNT"},
			tre.Simple(tre.FieldSpec{Class: field.BCSA, Length: 4, Key: "ITEM"}),
		),
	)
	d, err := b.Build()
	require.NoError(t, err)

	raw := "02" + "AAAA" + "BBBB"
	inst, err := tre.Decode(d, []byte(raw))
	require.NoError(t, err)

	keys := inst.Keys()
	assert.Equal(t, []string{"COUNT", "ITEM[0]", "ITEM[1]"}, keys)

	rewritten := inst.RewrittenKeys()
	assert.Equal(t, []string{"COUNT", "ITEM_0", "ITEM_1"}, rewritten)

	assert.Equal(t, "AAAA", inst.Get("ITEM[0]").GetString())
	assert.Equal(t, "BBBB", inst.Get("ITEM[1]").GetString())
}
