package chart

import (
	"github.com/arloliu/vizstream/series"
)

// View is a render-ready description of one snapshot.
type View struct {
	Family     Family
	Generation uint64
	X          string
	Axis       series.AxisState
	Layers     []Layer
	// Horizontal is set when any bar layer is oriented to the left; bars of
	// all layers are then drawn horizontally.
	Horizontal bool

	legend []LegendEntry
}

// Layer holds the visible series of one chart spec.
type Layer struct {
	Chart       int
	Type        string
	Y           string
	Mode        series.Mode
	Orientation string
	Series      []SeriesView
}

// Stacked reports whether the series of the layer are stacked.
func (l Layer) Stacked() bool {
	return l.Mode == series.ModeStacked
}

// SeriesView is one visible series with its assigned color.
type SeriesView struct {
	Name   string
	Color  string
	Points []series.Point
}

// LegendEntry is one legend item. Hidden entries stay listed so a legend
// can toggle them back on.
type LegendEntry struct {
	Name   string
	Color  string
	Hidden bool
}

// NewView builds the view of snap. Series for which hidden returns true are
// left out of the layers but kept in the legend with Hidden set; their
// buffers stay in snap. A nil hidden keeps every series.
func NewView(family Family, cfg series.Config, snap *series.Snapshot, hidden func(string) bool) View {
	v := View{
		Family:     family,
		Generation: snap.Generation,
		X:          cfg.X,
		Axis:       snap.Axis,
	}

	seen := make(map[string]struct{})
	for _, cs := range snap.Charts() {
		layer := Layer{
			Chart:       cs.Index,
			Type:        cs.Spec.Type,
			Y:           cs.Spec.Y,
			Mode:        cs.Spec.Mode,
			Orientation: cs.Spec.Orientation,
		}
		for _, name := range cs.Series() {
			color, _ := cs.Color(name)
			off := hidden != nil && hidden(name)
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				v.legend = append(v.legend, LegendEntry{Name: name, Color: color, Hidden: off})
			}
			if off {
				continue
			}
			layer.Series = append(layer.Series, SeriesView{
				Name:   name,
				Color:  color,
				Points: snap.Buffer(series.SeriesKey{Chart: cs.Index, Name: name}),
			})
		}

		if isBar(layer.Type) && layer.Orientation == "left" {
			v.Horizontal = true
		}
		v.Layers = append(v.Layers, layer)
	}

	return v
}

// Legend returns every series name across layers in layer order, each once,
// paired with its color and hidden state.
func (v View) Legend() []LegendEntry {
	return v.legend
}

func isBar(kind string) bool {
	return kind == TypeBar || kind == TypeSparkBar
}
