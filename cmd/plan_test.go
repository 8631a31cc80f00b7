package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir, which needs a Go 1.24+ toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// stubNominatim answers every query with coordinates derived from the
// address text, so distinct addresses land in distinct places.
func stubNominatim(t *testing.T) *httptest.Server {
	t.Helper()
	coords := map[string][2]float64{
		"100 North St": {47.70, -122.30},
		"101 North St": {47.71, -122.31},
		"200 South St": {47.40, -122.30},
		"201 South St": {47.41, -122.31},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		c, ok := coords[q]
		if !ok {
			w.Write([]byte(`[]`))
			return
		}
		fmt.Fprintf(w, `[{"lat":"%f","lon":"%f","display_name":"%s"}]`, c[0], c[1], q)
	}))
}

func TestPlanCommand_EndToEnd(t *testing.T) {
	srv := stubNominatim(t)
	defer srv.Close()

	workDir := t.TempDir()
	chdir(t, workDir)
	t.Setenv("PICKUP_GEOCODE_BASE_URL", srv.URL)
	t.Setenv("PICKUP_GEOCODE_REQUESTS_PER_SEC", "1000")
	t.Setenv("PICKUP_GEOCODE_CACHE_PATH", filepath.Join(workDir, "cache.db"))
	t.Setenv("PICKUP_LOG_LEVEL", "error")

	roster := "address\n100 North St\n101 North St\n200 South St\n201 South St\n"
	rosterPath := filepath.Join(workDir, "roster.csv")
	require.NoError(t, os.WriteFile(rosterPath, []byte(roster), 0o644))

	outDir := filepath.Join(workDir, "out")
	rootCmd.SetArgs([]string{
		"plan",
		"--addresses", rosterPath,
		"--teams", "2",
		"--seed", "42",
		"--output-dir", outDir,
		"--no-map",
	})
	require.NoError(t, rootCmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Teams: 2")
	assert.Contains(t, out, "Addresses: 4")
	assert.Contains(t, out, "Team Alpha")
	assert.Contains(t, out, "Team Bravo")
	for _, addr := range []string{"100 North St", "101 North St", "200 South St", "201 South St"} {
		assert.Contains(t, out, addr)
	}
}

func TestPlanCommand_CapacityPrecheck(t *testing.T) {
	workDir := t.TempDir()
	chdir(t, workDir)
	t.Setenv("PICKUP_LOG_LEVEL", "error")

	roster := "address\n"
	for i := 0; i < 20; i++ {
		roster += fmt.Sprintf("%d Main St\n", 100+i)
	}
	rosterPath := filepath.Join(workDir, "roster.csv")
	require.NoError(t, os.WriteFile(rosterPath, []byte(roster), 0o644))

	// 20 addresses, 2 teams x 8 capacity = 16 slots; over the 80% buffer.
	rootCmd.SetArgs([]string{
		"plan",
		"--addresses", rosterPath,
		"--teams", "2",
		"--max-per-team", "8",
		"--no-map",
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safe capacity")
}
