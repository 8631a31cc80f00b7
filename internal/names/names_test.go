package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeams_FirstCycle(t *testing.T) {
	got := Teams(3)
	assert.Equal(t, []string{"Team Alpha", "Team Bravo", "Team Charlie"}, got)
}

func TestTeams_CyclesPast26(t *testing.T) {
	got := Teams(28)
	require.Len(t, got, 28)
	assert.Equal(t, "Team Zulu", got[25])
	assert.Equal(t, "Team Alpha 2", got[26])
	assert.Equal(t, "Team Bravo 2", got[27])
}

func TestTeams_ZeroCount(t *testing.T) {
	assert.Empty(t, Teams(0))
}

func TestTeams_AllUnique(t *testing.T) {
	got := Teams(80)
	seen := map[string]bool{}
	for _, n := range got {
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
	}
}
