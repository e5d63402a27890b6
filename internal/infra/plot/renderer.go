package plot

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

// Renderer draws UV curves as PNG line charts.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer builds a renderer producing images of the given size in inches.
func NewRenderer(widthInches, heightInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 8
	}
	if heightInches <= 0 {
		heightInches = 4
	}
	return &Renderer{
		width:  vg.Length(widthInches) * vg.Inch,
		height: vg.Length(heightInches) * vg.Inch,
	}
}

// Render plots the samples with local HH:MM ticks and returns PNG bytes.
func (r *Renderer) Render(samples []uvexposure.Sample, loc *time.Location) ([]byte, error) {
	if len(samples) == 0 {
		return nil, errors.New("no samples to plot")
	}
	if loc == nil {
		loc = time.UTC
	}

	p := gplot.New()
	p.Title.Text = "UV index throughout the day"
	p.X.Label.Text = "Time of day"
	p.Y.Label.Text = "UV index"
	p.X.Tick.Marker = gplot.TimeTicks{Format: "15:04", Time: gplot.UnixTimeIn(loc)}
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(samples))
	for i, s := range samples {
		points[i].X = float64(s.Time.Unix())
		points[i].Y = s.Value
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("build uv line: %w", err)
	}
	p.Add(line)
	p.Legend.Add("UV index", line)

	writer, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("prepare png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
