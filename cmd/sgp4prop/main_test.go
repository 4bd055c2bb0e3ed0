package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) ([][]string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	return records, nil
}

func TestStateCommand(t *testing.T) {
	records, err := run(t, "state", "--offset", "0,90")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "ISS (ZARYA)", records[1][0])
	assert.Equal(t, "90.000000", records[2][2])
}

func TestStateCommandInvalidOffset(t *testing.T) {
	_, err := run(t, "state", "--offset", "soon")
	assert.Error(t, err)
}

func TestEphemerisCommand(t *testing.T) {
	catalog := issTLE + "\n" + `1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994
2 25544  51.6369  94.7823 0002558 120.7586  15.7840 15.49587957510533`
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	records, err := run(t, "ephemeris", "--tle-file", path,
		"--start", "2025-05-18T09:00:00Z", "--stop", "2025-05-18T09:10:00Z", "--step", "5m")
	require.NoError(t, err)
	require.Len(t, records, 1+2*3)
	assert.Equal(t, "ISS (ZARYA)", records[1][0])
	assert.Equal(t, "2025-05-18T09:10:00Z", records[3][1])
	assert.Equal(t, "25544", records[4][0])
}

func TestEphemerisCommandEnvironment(t *testing.T) {
	t.Setenv("SGP4PROP_STEP", "30m")
	records, err := run(t, "ephemeris", "--duration", "1h")
	require.NoError(t, err)
	assert.Len(t, records, 1+3)
}

func TestEphemerisCommandEmptyCatalog(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty omm array", "[]"},
		{"empty tle file", ""},
		{"blank lines", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := run(t, "ephemeris", "--tle-file", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no element sets")

			_, err = run(t, "state", "--tle-file", path)
			assert.Error(t, err)
		})
	}
}

func TestStateCommandOffsetsFromEnvironment(t *testing.T) {
	t.Setenv("SGP4PROP_OFFSET", "0,90, 180")
	records, err := run(t, "state")
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "90.000000", records[2][2])
	assert.Equal(t, "180.000000", records[3][2])
}

func TestParseOffsets(t *testing.T) {
	offsets, err := parseOffsets([]string{"0,1.5", "-30"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, -30}, offsets)

	_, err = parseOffsets([]string{","})
	assert.Error(t, err)
}
