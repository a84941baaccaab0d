package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtLeastWarn(t *testing.T) {
	tests := map[string]string{
		"trace": "warn",
		"debug": "warn",
		"info":  "warn",
		"INFO":  "warn",
		"warn":  "warn",
		"error": "error",
		"bogus": "warn",
	}
	for in, want := range tests {
		assert.Equal(t, want, atLeastWarn(in), in)
	}
}

func TestIsTerminalWriter(t *testing.T) {
	assert.False(t, isTerminalWriter(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminalWriter(f))
}
