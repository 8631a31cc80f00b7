package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "123 main st", Normalize("  123   Main   ST "))
	assert.Equal(t, "", Normalize("   "))
}

func TestFromCSV_Valid(t *testing.T) {
	csv := "name,address\nAlice,123 Main St\nBob,456 Oak Ave\n"
	addrs, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, addrs, 2)
	assert.Equal(t, 1, addrs[0].Row)
	assert.Equal(t, "123 Main St", addrs[0].Text)
	assert.Equal(t, 2, addrs[1].Row)
	assert.Equal(t, "456 Oak Ave", addrs[1].Text)
	assert.False(t, addrs[0].Resolved())
}

func TestFromCSV_HeaderCaseInsensitive(t *testing.T) {
	addrs, err := FromCSV(strings.NewReader("Address\n123 Main St\n"))
	require.NoError(t, err)
	require.Len(t, addrs, 1)
}

func TestFromCSV_SkipsBlankRows(t *testing.T) {
	csv := "address\n123 Main St\n\n   \n456 Oak Ave\n"
	addrs, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, 2, addrs[1].Row)
}

func TestFromCSV_Errors(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		_, err := FromCSV(strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("missing address column", func(t *testing.T) {
		_, err := FromCSV(strings.NewReader("name,city\nAlice,Seattle\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing "address" column`)
	})

	t.Run("duplicate after normalization", func(t *testing.T) {
		csv := "address\n123 Main St\n123  MAIN  st\n"
		_, err := FromCSV(strings.NewReader(csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate address")
	})

	t.Run("header only", func(t *testing.T) {
		_, err := FromCSV(strings.NewReader("address\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no addresses")
	})
}

func TestFromCSV_VariableFieldCounts(t *testing.T) {
	csv := "name,address\nAlice,123 Main St\nshortrow\nBob,456 Oak Ave\n"
	addrs, err := FromCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, addrs, 2)
}
