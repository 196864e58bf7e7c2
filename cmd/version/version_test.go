package version

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseSeries(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "major and minor only",
			version:  "0.47.0",
			expected: "0.47",
		},
		{
			name:     "major, minor, and patch version",
			version:  "1.2.3",
			expected: "1.2",
		},
		{
			name:     "prerelease",
			version:  "v2.0.1-rc1",
			expected: "2.0",
		},
		{
			name:     "not a version",
			version:  "dev",
			expected: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := releaseSeries(tt.version)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("releaseSeries() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersionCmdShort(t *testing.T) {
	var buf bytes.Buffer
	VersionCmd.SetOut(&buf)
	VersionCmd.SetArgs([]string{"--short"})
	t.Cleanup(func() { short = false })

	require.NoError(t, VersionCmd.Execute())
	assert.Equal(t, Version+"\n", buf.String())
}
