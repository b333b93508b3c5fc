package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type windowConfig struct {
	MaxLength int
	Name      string
	Append    bool
}

func (c *windowConfig) setMaxLength(n int) error {
	if n < 0 {
		return errors.New("max length cannot be negative")
	}
	c.MaxLength = n

	return nil
}

func withMaxLength(n int) Option[*windowConfig] {
	return New(func(c *windowConfig) error { return c.setMaxLength(n) })
}

func withName(name string) Option[*windowConfig] {
	return NoError(func(c *windowConfig) { c.Name = name })
}

func withAppend(v bool) Option[*windowConfig] {
	return NoError(func(c *windowConfig) { c.Append = v })
}

func TestOption_New(t *testing.T) {
	t.Run("applies value", func(t *testing.T) {
		cfg := &windowConfig{}
		require.NoError(t, withMaxLength(30).apply(cfg))
		require.Equal(t, 30, cfg.MaxLength)
	})

	t.Run("propagates error", func(t *testing.T) {
		cfg := &windowConfig{}
		err := withMaxLength(-1).apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &windowConfig{}
	require.NoError(t, withName("cpu").apply(cfg))
	require.Equal(t, "cpu", cfg.Name)
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &windowConfig{}
		err := Apply(cfg, withName("a"), withMaxLength(5), withName("b"))
		require.NoError(t, err)
		require.Equal(t, "b", cfg.Name)
		require.Equal(t, 5, cfg.MaxLength)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &windowConfig{}
		err := Apply(cfg, withMaxLength(5), withMaxLength(-1), withName("skipped"))
		require.Error(t, err)
		require.Equal(t, 5, cfg.MaxLength)
		require.Empty(t, cfg.Name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &windowConfig{}
		require.NoError(t, Apply(cfg, nil, withAppend(true)))
		require.True(t, cfg.Append)
	})

	t.Run("empty", func(t *testing.T) {
		cfg := &windowConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, windowConfig{}, *cfg)
	})
}

func TestJoin(t *testing.T) {
	preset := Join(withMaxLength(10), withAppend(true))

	cfg := &windowConfig{}
	require.NoError(t, Apply[*windowConfig](cfg, preset, withName("joined")))
	require.Equal(t, windowConfig{MaxLength: 10, Name: "joined", Append: true}, *cfg)

	failing := Join(withMaxLength(-3))
	require.Error(t, Apply[*windowConfig](&windowConfig{}, failing))
}
