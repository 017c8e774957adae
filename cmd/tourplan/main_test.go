package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	fs := flag.NewFlagSet("tourplan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var out bytes.Buffer
	err := run(context.Background(), fs, append([]string{"-env", filepath.Join(t.TempDir(), "none.env")}, args...), &out)
	return out.String(), err
}

func TestRun_Costs(t *testing.T) {
	dir := t.TempDir()
	costs := filepath.Join(dir, "costs.json")
	require.NoError(t, os.WriteFile(costs, []byte(`[[0,1000,1414,1000],[1000,0,1000,1414],[1414,1000,0,1000],[1000,1414,1000,0]]`), 0o600))

	out, err := runArgs(t, "-costs", costs)
	require.NoError(t, err)
	require.Equal(t, "Objective: 4000\n"+
		"Route (exact, optimal):\n"+
		"  0. #0\n"+
		"  1. #1 +1000\n"+
		"  2. #2 +1000\n"+
		"  3. #3 +1000\n"+
		"  4. #0 +1000\n"+
		"Route distance: 4000\n", out)

	out, err = runArgs(t, "-costs", costs, "-strategy", "heuristic", "-depot", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Objective: 4000")
	require.Contains(t, out, "  0. #1\n")
}

func TestRun_ConfigRoute(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tourplan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
provider:
  kind: haversine
  mode: driving
cache:
  kind: memory
route:
  locations:
    - {name: depot, lat: 0, lng: 0}
    - {name: east, lat: 0, lng: 0.01}
    - {name: north, lat: 0.01, lng: 0.01}
`), 0o600))
	xlsx := filepath.Join(dir, "route.xlsx")

	out, err := runArgs(t, "-config", cfgPath, "-xlsx", xlsx)
	require.NoError(t, err)
	require.Contains(t, out, "Route (exact, optimal):")
	require.Contains(t, out, "0. depot (0.000000, 0.000000)")
	require.Contains(t, out, "Google Maps: https://www.google.com/maps/dir/?api=1")

	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestRun_Errors(t *testing.T) {
	_, err := runArgs(t)
	require.ErrorContains(t, err, "no locations")

	_, err = runArgs(t, "-strategy", "random")
	require.Error(t, err)

	_, err = runArgs(t, "-costs", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = runArgs(t, "-exact-threshold", "40")
	require.Error(t, err)
}
