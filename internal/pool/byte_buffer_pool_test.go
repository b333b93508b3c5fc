package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 128, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("frame"))
	n, err := bb.Write([]byte("-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("frame-1"), bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		assert.Equal(t, 64, bb.Cap())
	})

	t.Run("grows by default step", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("abcd"))
		bb.Grow(16)
		assert.GreaterOrEqual(t, bb.Cap(), 4+PayloadBufferDefaultSize)
		assert.Equal(t, []byte("abcd"), bb.Bytes())
	})

	t.Run("grows to required size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(PayloadBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), PayloadBufferDefaultSize*3)
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	// nil and oversized buffers are ignored
	p.Put(nil)
	p.Put(NewByteBuffer(1024))
}

func TestDefaultPools(t *testing.T) {
	payload := GetPayloadBuffer()
	require.NotNil(t, payload)
	PutPayloadBuffer(payload)

	frame := GetFrameBuffer()
	require.NotNil(t, frame)
	PutFrameBuffer(frame)
}
