package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
x: ts
maxLength: 2
charts:
  - type: line
    y: latency
    colorField: region
    colorPalette: ["#111111", "#222222"]
`

const testBatches = `{"metadata":{"names":["ts","latency","region"],"types":["time","linear","ordinal"]},"data":[[1000,1.5,"eu"],[2000,2.5,"us"]]}

{"metadata":{"names":["ts","latency","region"],"types":["time","linear","ordinal"]},"data":[[3000,3,"eu"],[4000,4,"eu"]]}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()

	var items []T
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var item T
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &item))
		items = append(items, item)
	}

	return items
}

func TestReplay_Summaries(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chart.yaml", testConfig)

	out, _, err := execute(t, testBatches, "replay", "--config", cfg, "--top", "1")
	require.NoError(t, err)

	summaries := decodeLines[batchSummary](t, out)
	require.Len(t, summaries, 2)

	first := summaries[0]
	require.Equal(t, uint64(1), first.Batch)
	require.Equal(t, 2, first.Rows)
	require.Equal(t, "accumulating", first.Phase)
	require.Equal(t, map[string]int{"0/eu": 1, "0/us": 1}, first.Series)
	require.Equal(t, map[string]string{"eu": "#111111", "us": "#222222"}, first.Colors)
	require.NotNil(t, first.Domain)
	require.Nil(t, first.Frame)

	last := summaries[1]
	require.Equal(t, map[string]int{"0/eu": 2, "0/us": 1}, last.Series, "window of 2 keeps the newest points")
	require.Equal(t, 2000.0, last.Domain.Min)
	require.Equal(t, 4000.0, last.Domain.Max)
	require.Len(t, last.Top, 1)
	require.Equal(t, "eu", last.Top[0].Name)
}

func TestReplay_FramesAndInspect(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chart.yaml", testConfig)
	input := writeFile(t, dir, "batches.jsonl", testBatches)
	frames := filepath.Join(dir, "frames")

	out, stderr, err := execute(t, "", "replay", "-c", cfg, "-i", input,
		"--frames", "--compression", "zstd", "--out-dir", frames, "--metrics")
	require.NoError(t, err)
	require.Contains(t, stderr, `vizstream_batches_total{component="replay",status="success"} 2`)
	require.Contains(t, stderr, "vizstream_frame_size_bytes_count")

	summaries := decodeLines[batchSummary](t, out)
	require.Len(t, summaries, 2)
	require.NotNil(t, summaries[1].Frame)
	require.Positive(t, summaries[1].Frame.Bytes)
	require.FileExists(t, summaries[1].Frame.Path)

	out, _, err = execute(t, "", "inspect", summaries[1].Frame.Path)
	require.NoError(t, err)

	var f inspectedFrame
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	require.Equal(t, "time", f.Scale)
	require.Equal(t, "Zstd", f.Compression)
	require.False(t, f.Collision)
	require.Len(t, f.Series, 2)
	require.Equal(t, "eu", f.Series[0].Name)
	require.Equal(t, "#111111", f.Series[0].Color)
	require.Equal(t, []float64{3000, 4000}, f.Series[0].X)
	require.Equal(t, []any{3.0, 4.0}, f.Series[0].Y)
}

func TestReplay_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chart.yaml", testConfig)

	_, _, err := execute(t, "", "replay")
	require.Error(t, err, "config is required")

	_, _, err = execute(t, "{not json}\n", "replay", "-c", cfg)
	require.ErrorContains(t, err, "line 1")

	bad := `{"metadata":{"names":["ts","other"],"types":["time","linear"]},"data":[[1,2]]}`
	_, _, err = execute(t, bad, "replay", "-c", cfg)
	require.ErrorContains(t, err, "batch 1")

	_, _, err = execute(t, testBatches, "replay", "-c", cfg, "--frames", "--compression", "brotli")
	require.Error(t, err)

	_, _, err = execute(t, testBatches, "replay", "-c", cfg, "--log-level", "loud")
	require.ErrorContains(t, err, "invalid log level")

	_, _, err = execute(t, testBatches, "replay", "-c", cfg, "--family", "inline")
	require.Error(t, err, "line charts are not inline charts")
}

func TestInspect_Invalid(t *testing.T) {
	_, _, err := execute(t, "garbage", "inspect")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chart.yaml", testConfig)
	input := writeFile(t, dir, "batches.jsonl", testBatches)
	output := filepath.Join(dir, "chart.svg")

	_, _, err := execute(t, "", "render", "-c", cfg, "-i", input, "-o", output, "--width", "400", "--height", "200")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")

	out, _, err := execute(t, testBatches, "render", "-c", cfg, "--format", "png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "\x89PNG"))

	_, _, err = execute(t, testBatches, "render", "-c", cfg, "--format", "gif")
	require.Error(t, err)
}
