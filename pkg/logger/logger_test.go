package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, INFO, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}

func Test_toZapLevel(t *testing.T) {
	require.Equal(t, zapcore.WarnLevel, toZapLevel(WARNING))
	require.Equal(t, zapcore.FatalLevel, toZapLevel(SILENCE))
}
