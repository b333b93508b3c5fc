package compress

import (
	"bytes"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vizstream/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func repetitivePayload(n int) []byte {
	return bytes.Repeat([]byte("series=eu color=#4F46E5 "), n)
}

func randomPayload(t testing.TB, n int) []byte {
	t.Helper()

	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "x")
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0), "y")
	require.ErrorContains(t, err, "invalid y compression")

	_, err = GetCodec(format.CompressionType(99))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"small":      []byte("mon"),
		"repetitive": repetitivePayload(200),
		"random":     randomPayload(t, 4096),
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored, ct.String())
	}
}

func TestCodecs_Shrink(t *testing.T) {
	data := repetitivePayload(500)

	for _, ct := range allTypes[1:] {
		codec, _ := GetCodec(ct)
		_, stats, err := Measure(codec, ct, data)
		require.NoError(t, err)
		require.Equal(t, ct, stats.Algorithm)
		require.Less(t, stats.CompressionRatio(), 0.5, ct.String())
		require.Greater(t, stats.SpaceSavings(), 50.0)
	}
}

func TestCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa}

	for _, ct := range allTypes[1:] {
		codec, _ := GetCodec(ct)
		_, err := codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestLZ4_StoresIncompressible(t *testing.T) {
	data := randomPayload(t, 256)

	compressed, err := NewLZ4Compressor().Compress(data)
	require.NoError(t, err)
	require.LessOrEqual(t, len(compressed), len(data)+3)

	_, err = NewLZ4Compressor().Decompress(compressed[:len(compressed)-1])
	require.Error(t, err)
}

func TestNoOp_SharesMemory(t *testing.T) {
	data := []byte("abc")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestCompressionStats(t *testing.T) {
	require.Zero(t, CompressionStats{}.CompressionRatio())

	s := CompressionStats{OriginalSize: 200, CompressedSize: 50}
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
}

func TestCodecs_ConcurrentUse(t *testing.T) {
	data := repetitivePayload(100)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c, err := codec.Compress(data)
				if err == nil {
					var d []byte
					d, err = codec.Decompress(c)
					if err == nil && !bytes.Equal(d, data) {
						err = bytes.ErrTooLarge
					}
				}
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err, ct.String())
		}
	}
}

func BenchmarkCodecs_Compress(b *testing.B) {
	data := repetitivePayload(1000)

	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}
