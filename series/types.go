package series

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/arloliu/vizstream/format"
)

// Metadata describes the columns of a batch. Names and Types are positionally
// aligned.
type Metadata struct {
	Names []string           `json:"names" yaml:"names"`
	Types []format.ScaleKind `json:"types" yaml:"types"`
}

// Index returns the position of name, or -1.
func (m Metadata) Index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}

	return -1
}

// Row is one record, positionally aligned to Metadata.Names.
type Row []any

// Batch is one update delivered by the caller.
type Batch struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Rows     []Row    `json:"data" yaml:"data"`
}

// Point is one buffered sample of a series.
//
// On continuous axes X is a float64 (Unix milliseconds for time axes). On
// ordinal axes X keeps its comparable scalar form.
type Point struct {
	X        any    `json:"x"`
	Y        any    `json:"y"`
	Category any    `json:"category,omitempty"`
	Series   string `json:"series"`
	YField   string `json:"yField"`
}

// XFloat returns X as a float64 for continuous axes.
func (p Point) XFloat() float64 {
	f, _ := toFloat(p.X)
	return f
}

// YFloat returns Y as a float64 and whether Y is numeric.
func (p Point) YFloat() (float64, bool) {
	return toFloat(p.Y)
}

// SeriesKey identifies a series buffer. Buffers are scoped to their chart.
type SeriesKey struct {
	Chart int    `json:"chart"`
	Name  string `json:"name"`
}

func (k SeriesKey) String() string {
	return strconv.Itoa(k.Chart) + "/" + k.Name
}

// Domain is a closed numeric interval.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Union returns the smallest domain covering d and o.
func (d Domain) Union(o Domain) Domain {
	return Domain{Min: math.Min(d.Min, o.Min), Max: math.Max(d.Max, o.Max)}
}

// AxisState is the x axis as seen by renderers.
type AxisState struct {
	Scale     format.ScaleKind `json:"scale"`
	Domain    Domain           `json:"domain"`
	HasDomain bool             `json:"hasDomain"`
}

// CategoryKey returns the string form of a category value, used as series
// name and color key.
func CategoryKey(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case json.Number:
		return val.String()
	}

	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return fmt.Sprint(v)
}

// toFloat converts the numeric scalar kinds to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ToFloat is the exported form of the numeric conversion used for buffered
// values; variants use it for value ranges.
func ToFloat(v any) (float64, bool) {
	return toFloat(v)
}

// ContinuousX converts an x value on a continuous axis to its float form.
// Time values become Unix milliseconds; on time axes RFC 3339 strings are
// accepted as well.
func ContinuousX(v any, scale format.ScaleKind) (float64, bool) {
	if t, ok := v.(time.Time); ok {
		return float64(t.UnixMilli()), true
	}
	if f, ok := toFloat(v); ok {
		return f, !math.IsNaN(f)
	}
	if s, ok := v.(string); ok && scale == format.ScaleTime {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, false
		}

		return float64(t.UnixMilli()), true
	}

	return 0, false
}

// scalar normalizes a value into a comparable form: numbers become float64,
// strings, bools and nil pass through, everything else is stringified.
func scalar(v any) any {
	switch val := v.(type) {
	case nil, string, bool, float64:
		return val
	case time.Time:
		return float64(val.UnixMilli())
	}
	if f, ok := toFloat(v); ok {
		return f
	}

	return CategoryKey(v)
}
