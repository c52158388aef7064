package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocales_FromConfig(t *testing.T) {
	stdout, _, err := runCLI(t, "--config", writeConfig(t, "http://localhost:1"), "locales")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Code          Name", lines[0])
	assert.Equal(t, "E08000003     Manchester", lines[2])
	assert.Equal(t, "E09000012     Hackney", lines[3])
}

func TestLocales_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	stdout, _, err := runCLI(t, "--config", path, "locales")
	require.NoError(t, err)
	for _, l := range epc.MajorCities {
		assert.Contains(t, stdout, l.Code+"     "+l.Name+"\n")
	}
}
