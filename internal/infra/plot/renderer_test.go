package plot

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

func TestRenderProducesPNG(t *testing.T) {
	sunrise := time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC)
	d, err := uvexposure.NewDaylightWindow(sunrise, sunrise.Add(14*time.Hour))
	require.NoError(t, err)
	curve := uvexposure.NewCurve(d, 8, uvexposure.CurveConfig{})

	img, err := NewRenderer(4, 2).Render(curve.SampleDay(d), time.FixedZone("CEST", 2*60*60))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	require.Greater(t, cfg.Width, cfg.Height)
}

func TestRenderRejectsEmptySamples(t *testing.T) {
	_, err := NewRenderer(0, 0).Render(nil, nil)
	require.Error(t, err)
}
