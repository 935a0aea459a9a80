package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		path []string
	}{
		{[]string{"merge"}},
		{[]string{"metadata", "clean"}},
		{[]string{"metadata", "stats"}},
		{[]string{"split"}},
		{[]string{"spectrum"}},
		{[]string{"runs", "status"}},
		{[]string{"runs", "clear"}},
		{[]string{"runs", "export"}},
		{[]string{"runs", "migrate"}},
		{[]string{"mcp"}},
		{[]string{"version"}},
	}
	for _, tt := range tests {
		t.Run(tt.path[len(tt.path)-1], func(t *testing.T) {
			found, rest, err := rootCmd.Find(tt.path)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.Equal(t, tt.path[len(tt.path)-1], found.Name())
		})
	}
}

func TestCommandFlags(t *testing.T) {
	for _, name := range []string{"building-dir", "results-dir", "metadata", "workers", "run-backend", "color", "profile"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.NotNil(t, mergeCmd.Flags().Lookup("table-format"))
	assert.NotNil(t, metadataStatsCmd.Flags().Lookup("cluster"))
	assert.NotNil(t, splitCmd.Flags().Lookup("seed"))

	tv := runsMigrateCmd.Flags().Lookup("target-version")
	require.NotNil(t, tv)
	assert.Equal(t, "-1", tv.DefValue)
}

func TestSpectrumRequiresOneBuilding(t *testing.T) {
	assert.Error(t, spectrumCmd.Args(spectrumCmd, nil))
	assert.NoError(t, spectrumCmd.Args(spectrumCmd, []string{"100"}))
}
