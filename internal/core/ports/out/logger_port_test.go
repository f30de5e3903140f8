package out

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("info")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, level)

	_, err = ParseLogLevel("trace")
	assert.Error(t, err)
}
