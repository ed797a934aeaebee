package plot

import (
	"bytes"
	"image/color"
	"strings"

	"edareport/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Graph keys, the stable addresses the renderer uses for images.
const (
	KeyHistAndBox = "hist_and_boxplot"
	KeyBarPlot    = "bar_plot"
	KeyHeatmap    = "correlation_heatmap"
	KeyRegression = "regression_plot"
)

// sampleThreshold is the row count above which scatter rendering draws a
// deterministic sample instead of every point. Correlation coefficients are
// always computed on the full data, never on the sample.
const sampleThreshold = 50000

// sampleSeed fixes the scatter subsample across runs.
const sampleSeed = 417

// namedColors maps the graph-color names accepted in configuration.
var namedColors = map[string]color.Color{
	"cyan":      color.RGBA{R: 0x00, G: 0xbc, B: 0xd4, A: 0xff},
	"orangered": color.RGBA{R: 0xff, G: 0x45, B: 0x00, A: 0xff},
	"blue":      color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"green":     color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"red":       color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"purple":    color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"orange":    color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"teal":      color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	"black":     color.RGBA{A: 0xff},
}

// Renderer produces the report's PNG graphs.
type Renderer struct {
	color color.Color
}

// NewRenderer creates a renderer using the named graph color. Unknown names
// fall back to cyan.
func NewRenderer(colorName string) *Renderer {
	c, ok := namedColors[strings.ToLower(colorName)]
	if !ok {
		c = namedColors["cyan"]
	}
	return &Renderer{color: c}
}

// encodePNG renders a single plot to PNG bytes.
func encodePNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, errors.Wrap(err, "encoding graph")
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding graph")
	}
	return buf.Bytes(), nil
}

// encodeTiledPNG renders a row of plots side by side into one PNG.
func encodeTiledPNG(plots []*plot.Plot, w, h vg.Length) ([]byte, error) {
	img := vgimg.New(w, h)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	row := make([][]*plot.Plot, 1)
	row[0] = plots
	canvases := plot.Align(row, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding graph")
	}
	return buf.Bytes(), nil
}
