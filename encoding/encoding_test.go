package encoding

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/endian"
)

// =============================================================================
// Delta
// =============================================================================

func TestDelta_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
	}{
		{"single", []int64{1_700_000_000_000}},
		{"regular", []int64{1000, 2000, 3000, 4000, 5000}},
		{"irregular", []int64{10, 13, 7, 7, 100, -50}},
		{"negative start", []int64{-5, -4, -2}},
		{"extremes", []int64{math.MinInt64 / 2, 0, math.MaxInt64 / 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewDeltaEncoder()
			defer enc.Finish()
			enc.WriteSlice(tt.values)
			require.Equal(t, len(tt.values), enc.Len())

			got, ok := NewDeltaDecoder().Slice(enc.Bytes(), enc.Len())
			require.True(t, ok)
			require.Equal(t, tt.values, got)
		})
	}
}

func TestDelta_RegularIntervalsAreCompact(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()

	for i := range int64(100) {
		enc.Write(1_700_000_000_000 + i*1000)
	}

	// 6 bytes first value, 2 bytes first delta, 1 byte per remaining point
	require.LessOrEqual(t, enc.Size(), 8+98)
}

func TestDelta_Runs(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]int64{100, 200, 300})
	split := enc.Size()
	enc.Reset()
	enc.WriteSlice([]int64{5, 6})

	dec := NewDeltaDecoder()
	first, ok := dec.Slice(enc.Bytes()[:split], 3)
	require.True(t, ok)
	require.Equal(t, []int64{100, 200, 300}, first)

	second, ok := dec.Slice(enc.Bytes()[split:], 2)
	require.True(t, ok)
	require.Equal(t, []int64{5, 6}, second)
	require.Equal(t, 5, enc.Len())
}

func TestDelta_At(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]int64{10, 20, 35, 35})

	dec := NewDeltaDecoder()
	for i, want := range []int64{10, 20, 35, 35} {
		got, ok := dec.At(enc.Bytes(), i, 4)
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := dec.At(enc.Bytes(), 4, 4)
	require.False(t, ok)
	_, ok = dec.At(enc.Bytes(), -1, 4)
	require.False(t, ok)
	_, ok = dec.At(nil, 0, 1)
	require.False(t, ok)
}

func TestDelta_Truncated(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]int64{1, 2, 3})

	got, ok := NewDeltaDecoder().Slice(enc.Bytes()[:2], 3)
	require.False(t, ok)
	require.Equal(t, []int64{1, 2}, got)
}

// =============================================================================
// Raw float
// =============================================================================

func TestFloatRaw_RoundTrip(t *testing.T) {
	values := []float64{0, -1.5, math.Inf(1), math.MaxFloat64, 42}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		enc := NewFloatRawEncoder(engine)
		enc.Write(values[0])
		enc.WriteSlice(values[1:])
		require.Equal(t, 5, enc.Len())
		require.Equal(t, 40, enc.Size())

		dec := NewFloatRawDecoder(engine)
		require.Equal(t, values, slices.Collect(dec.All(enc.Bytes(), enc.Len())))

		v, ok := dec.At(enc.Bytes(), 4, 5)
		require.True(t, ok)
		require.Equal(t, 42.0, v)
		_, ok = dec.At(enc.Bytes(), 5, 5)
		require.False(t, ok)

		enc.Finish()
	}
}

func TestFloatRaw_NaN(t *testing.T) {
	enc := NewFloatRawEncoder(endian.GetLittleEndianEngine())
	defer enc.Finish()
	enc.Write(math.NaN())

	v, ok := NewFloatRawDecoder(endian.GetLittleEndianEngine()).At(enc.Bytes(), 0, 1)
	require.True(t, ok)
	require.True(t, math.IsNaN(v))
}

func TestFloatRaw_ByteOrderMatters(t *testing.T) {
	enc := NewFloatRawEncoder(endian.GetBigEndianEngine())
	defer enc.Finish()
	enc.Write(1.0)

	v, _ := NewFloatRawDecoder(endian.GetLittleEndianEngine()).At(enc.Bytes(), 0, 1)
	require.NotEqual(t, 1.0, v)
}

func TestFloatRaw_WriteAfterFinishPanics(t *testing.T) {
	enc := NewFloatRawEncoder(endian.GetLittleEndianEngine())
	enc.Finish()

	require.Panics(t, func() { enc.Write(1) })
}

// =============================================================================
// VarString
// =============================================================================

func TestVarString_RoundTrip(t *testing.T) {
	texts := []string{"", "mon", "日本", strings.Repeat("x", 300)}

	enc := NewVarStringEncoder()
	defer enc.Finish()
	require.NoError(t, enc.WriteSlice(texts))
	require.Equal(t, 4, enc.Len())

	dec := NewVarStringDecoder()
	require.Equal(t, texts, slices.Collect(dec.All(enc.Bytes(), enc.Len())))

	got, n, err := dec.Decode(enc.Bytes(), 4)
	require.NoError(t, err)
	require.Equal(t, texts, got)
	require.Equal(t, enc.Size(), n)

	s, ok := dec.At(enc.Bytes(), 2, 4)
	require.True(t, ok)
	require.Equal(t, "日本", s)
	_, ok = dec.At(enc.Bytes(), 4, 4)
	require.False(t, ok)
}

func TestVarString_TooLong(t *testing.T) {
	enc := NewVarStringEncoder()
	defer enc.Finish()

	require.Error(t, enc.Write(strings.Repeat("x", MaxTextLength+1)))
	require.Error(t, enc.WriteSlice([]string{"ok", strings.Repeat("x", MaxTextLength+1)}))
	require.Zero(t, enc.Len(), "failed writes leave no data")
	require.Zero(t, enc.Size())
}

func TestVarString_Truncated(t *testing.T) {
	enc := NewVarStringEncoder()
	defer enc.Finish()
	require.NoError(t, enc.WriteSlice([]string{"alpha", "beta"}))

	_, _, err := NewVarStringDecoder().Decode(enc.Bytes()[:8], 2)
	require.Error(t, err)

	require.Equal(t, []string{"alpha"}, slices.Collect(NewVarStringDecoder().All(enc.Bytes()[:8], 2)))
}

func BenchmarkDeltaEncoder(b *testing.B) {
	values := make([]int64, 1000)
	for i := range values {
		values[i] = 1_700_000_000_000 + int64(i)*1000
	}

	for b.Loop() {
		enc := NewDeltaEncoder()
		enc.WriteSlice(values)
		enc.Finish()
	}
}
