package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCodeThroughChain(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := fmt.Errorf("analyze: %w", Wrap(CodeWeatherError, "failed to fetch weather data", cause))

	require.True(t, IsCode(err, CodeWeatherError))
	require.False(t, IsCode(err, CodeLocationNotFound))
	require.Equal(t, CodeWeatherError, CodeOf(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "analyze: failed to fetch weather data: dial tcp: timeout", err.Error())
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(CodeSunTimesMissing, "sunrise/sunset information unavailable", nil)
	require.Equal(t, "sunrise/sunset information unavailable", err.Error())
	require.Empty(t, CodeOf(errors.New("plain")))
}
