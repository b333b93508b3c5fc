// Package render draws chart views as PNG or SVG images with go-chart.
//
// Time axes become time series, linear axes continuous series. Ordinal axes
// have no continuous x range, so the first layer with data is drawn as a bar
// chart with one bar per x value. Stacked layers are drawn with cumulative y
// values; non-numeric y values are skipped.
//
//	view, err := c.Update(batch)
//	if err != nil {
//	    return err
//	}
//	err = render.PNG(w, view, render.WithSize(800, 300))
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/arloliu/vizstream/chart"
	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/internal/options"
	"github.com/arloliu/vizstream/palette"
	"github.com/arloliu/vizstream/series"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat parses "png" or "svg", case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownFormat, name)
	}
}

// FormatOf picks the format from a file name extension, PNG by default.
func FormatOf(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return FormatSVG
	}

	return FormatPNG
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}

	return gochart.PNG
}

// Config holds the image settings.
type Config struct {
	width  int
	height int
	title  string
	legend bool
}

// Option configures rendering.
type Option = options.Option[*Config]

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return options.New(func(c *Config) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid image size %dx%d", width, height)
		}
		c.width, c.height = width, height

		return nil
	})
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return options.NoError(func(c *Config) {
		c.title = title
	})
}

// WithLegend draws a legend below line charts.
func WithLegend(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.legend = enabled
	})
}

// Renderer is satisfied by go-chart's Chart and BarChart.
type Renderer interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

var (
	_ Renderer = (*gochart.Chart)(nil)
	_ Renderer = (*gochart.BarChart)(nil)
)

// Chart converts a view into a go-chart renderer.
//
// Returns:
//   - Renderer: *gochart.Chart for continuous axes, *gochart.BarChart for ordinal axes
//   - error: errs.ErrNoData when no visible series has a drawable point,
//     or an invalid option
func Chart(v chart.View, opts ...Option) (Renderer, error) {
	cfg := &Config{width: gochart.DefaultChartWidth, height: gochart.DefaultChartHeight}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if v.Axis.Scale == format.ScaleOrdinal {
		return barChart(v, cfg)
	}

	return lineChart(v, cfg)
}

// Write renders v in the given format to w.
func Write(w io.Writer, f Format, v chart.View, opts ...Option) error {
	r, err := Chart(v, opts...)
	if err != nil {
		return err
	}

	return r.Render(f.provider(), w)
}

// PNG renders v as a PNG image.
func PNG(w io.Writer, v chart.View, opts ...Option) error {
	return Write(w, FormatPNG, v, opts...)
}

// SVG renders v as an SVG document.
func SVG(w io.Writer, v chart.View, opts ...Option) error {
	return Write(w, FormatSVG, v, opts...)
}

func lineChart(v chart.View, cfg *Config) (*gochart.Chart, error) {
	c := &gochart.Chart{
		Title:  cfg.title,
		Width:  cfg.width,
		Height: cfg.height,
		XAxis:  gochart.XAxis{Name: v.X},
	}

	for _, layer := range v.Layers {
		if c.YAxis.Name == "" {
			c.YAxis.Name = layer.Y
		}
		stack := make(map[float64]float64)
		for _, s := range layer.Series {
			xs, ys := xy(s.Points, layer.Stacked(), stack)
			if len(xs) == 0 {
				continue
			}

			style := seriesStyle(layer.Type, s.Color)
			if v.Axis.Scale == format.ScaleTime {
				times := make([]time.Time, len(xs))
				for i, x := range xs {
					times[i] = time.UnixMilli(int64(x)).UTC()
				}
				c.Series = append(c.Series, gochart.TimeSeries{Name: s.Name, Style: style, XValues: times, YValues: ys})

				continue
			}
			c.Series = append(c.Series, gochart.ContinuousSeries{Name: s.Name, Style: style, XValues: xs, YValues: ys})
		}
	}

	if len(c.Series) == 0 {
		return nil, errs.ErrNoData
	}
	if cfg.legend {
		c.Elements = []gochart.Renderable{gochart.Legend(c)}
	}

	return c, nil
}

func barChart(v chart.View, cfg *Config) (*gochart.BarChart, error) {
	for _, layer := range v.Layers {
		var bars []gochart.Value
		for _, s := range layer.Series {
			style := gochart.Style{FillColor: color(s.Color, 255), StrokeColor: color(s.Color, 255)}
			for _, p := range s.Points {
				y, ok := p.YFloat()
				if !ok {
					continue
				}
				label := series.CategoryKey(p.X)
				if len(layer.Series) > 1 {
					label = s.Name + " " + label
				}
				bars = append(bars, gochart.Value{Label: label, Value: y, Style: style})
			}
		}
		if len(bars) == 0 {
			continue
		}

		return &gochart.BarChart{
			Title:  cfg.title,
			Width:  cfg.width,
			Height: cfg.height,
			Bars:   bars,
		}, nil
	}

	return nil, errs.ErrNoData
}

// xy extracts the numeric points of a continuous series. With stacked set,
// each y is added to the running total of its x in stack.
func xy(points []series.Point, stacked bool, stack map[float64]float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		y, ok := p.YFloat()
		if !ok {
			continue
		}
		x := p.XFloat()
		if stacked {
			stack[x] += y
			y = stack[x]
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	return xs, ys
}

func seriesStyle(kind, token string) gochart.Style {
	c := color(token, 255)
	switch kind {
	case chart.TypeScatter:
		return gochart.Style{StrokeWidth: gochart.Disabled, DotColor: c, DotWidth: 3}
	case chart.TypeArea, chart.TypeSparkArea:
		return gochart.Style{StrokeColor: c, FillColor: color(token, 96)}
	case chart.TypeBar, chart.TypeSparkBar:
		return gochart.Style{StrokeColor: c, StrokeWidth: 4}
	default:
		return gochart.Style{StrokeColor: c}
	}
}

// color converts a palette token. Tokens that are not hex colors yield the
// zero color, which go-chart replaces with its default series colors.
func color(token string, alpha uint8) drawing.Color {
	r, g, b, err := palette.RGB(token)
	if err != nil {
		return drawing.Color{}
	}

	return drawing.Color{R: r, G: g, B: b, A: alpha}
}
