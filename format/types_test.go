package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScaleKind(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ScaleKind
	}{
		{"linear", "linear", ScaleLinear},
		{"ordinal", "ordinal", ScaleOrdinal},
		{"upper case", "LINEAR", ScaleLinear},
		{"time", "time", ScaleTime},
		{"timestamp falls back to time", "timestamp", ScaleTime},
		{"empty falls back to time", "", ScaleTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScaleKind(tt.in))
		})
	}
}

func TestScaleKind_Continuous(t *testing.T) {
	assert.True(t, ScaleLinear.Continuous())
	assert.True(t, ScaleTime.Continuous())
	assert.False(t, ScaleOrdinal.Continuous())
}

func TestScaleKind_Text(t *testing.T) {
	data, err := ScaleOrdinal.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "ordinal", string(data))

	var kind ScaleKind
	require.NoError(t, kind.UnmarshalText([]byte("linear")))
	require.Equal(t, ScaleLinear, kind)

	_, err = ScaleKind(0).MarshalText()
	require.Error(t, err)
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"zstd", CompressionZstd},
		{"S2", CompressionS2},
		{"lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "Unknown", got.String())
		})
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
}
