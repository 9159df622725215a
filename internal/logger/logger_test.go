package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	tests := []struct {
		name        string
		level       string
		expectError bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "upper case", level: "WARN"},
		{name: "unknown level", level: "verbose", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, Logger)
		})
	}
}

func TestInit_SetsLevel(t *testing.T) {
	t.Cleanup(func() { Logger = zap.NewNop() })

	require.NoError(t, Init("warn"))

	assert.False(t, Logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zap.WarnLevel))
}
