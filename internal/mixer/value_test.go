package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

func testItems(labels ...string) []Item {
	items := make([]Item, len(labels))
	for i, l := range labels {
		items[i] = Item{Index: i, Label: l}
	}
	return items
}

func TestScalarValue(t *testing.T) {
	var v ScalarValue[int]
	assert.False(t, v.Bound())
	assert.Equal(t, 0, v.Handle())

	require.NoError(t, v.bind(12, 40))
	assert.True(t, v.Bound())
	assert.Equal(t, 12, v.Handle())
	assert.Equal(t, 40, v.Get())

	v.Set(-3)
	assert.Equal(t, -3, v.Get())
	assert.Equal(t, 12, v.Handle())
}

func TestScalarValueBindTwice(t *testing.T) {
	var v ScalarValue[bool]
	require.NoError(t, v.bind(1, true))

	err := v.bind(2, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryInternal))
	assert.Equal(t, 1, v.Handle())
	assert.True(t, v.Get())
}

func TestEnumeratedValueBeforeDiscovery(t *testing.T) {
	var v EnumeratedValue
	assert.Equal(t, NotAvailable, v.Get())

	err := v.Set("Off")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotPopulated))
}

func TestEnumeratedValueSet(t *testing.T) {
	var v EnumeratedValue
	require.NoError(t, v.bind(7, 1, testItems("Off", "PCM 1", "PCM 2")))
	assert.Equal(t, "PCM 1", v.Get())

	require.NoError(t, v.Set("PCM 2"))
	assert.Equal(t, "PCM 2", v.Get())
	assert.Equal(t, 2, v.Index())
	assert.Equal(t, []string{"Off", "PCM 1", "PCM 2"}, v.Labels())
}

func TestEnumeratedValueRejectsUnknownLabel(t *testing.T) {
	var v EnumeratedValue
	require.NoError(t, v.bind(7, 0, testItems("Off", "PCM 1")))

	err := v.Set("PCM 9")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryInvalidEnumValue))

	assert.Equal(t, "Off", v.Get())
	assert.Len(t, v.Items(), 2)
}

func TestEnumeratedValueItemsAreCopied(t *testing.T) {
	items := testItems("Off", "PCM 1")
	var v EnumeratedValue
	require.NoError(t, v.bind(3, 0, items))

	items[0].Label = "mutated"
	got := v.Items()
	got[1].Label = "mutated"

	assert.Equal(t, []string{"Off", "PCM 1"}, v.Labels())
}

func TestEnumeratedValueSparseIndices(t *testing.T) {
	var v EnumeratedValue
	require.NoError(t, v.bind(3, 4, []Item{{Index: 2, Label: "A"}, {Index: 4, Label: "B"}}))
	assert.Equal(t, "B", v.Get())

	require.NoError(t, v.Set("A"))
	assert.Equal(t, 2, v.Index())
}
