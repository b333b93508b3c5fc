package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/arloliu/vizstream/series"
)

// maxLineSize bounds a single JSON batch line.
const maxLineSize = 16 << 20

// openInput opens path, or stdin for "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	return f, nil
}

// newLimiter returns a limiter admitting perSecond batches, or nil for no limit.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// readBatches decodes one batch per non-empty line and hands it to fn,
// pacing deliveries with limiter when set.
func readBatches(ctx context.Context, r io.Reader, limiter *rate.Limiter, fn func(n int, batch series.Batch) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	n := 0
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var batch series.Batch
		if err := json.Unmarshal(data, &batch); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		n++
		if err := fn(n, batch); err != nil {
			return fmt.Errorf("batch %d (line %d): %w", n, line, err)
		}
	}

	return scanner.Err()
}
