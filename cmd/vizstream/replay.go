package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/arloliu/vizstream/chart"
	"github.com/arloliu/vizstream/format"
	"github.com/arloliu/vizstream/frame"
	"github.com/arloliu/vizstream/promstats"
	"github.com/arloliu/vizstream/series"
)

type replayOptions struct {
	config      string
	input       string
	family      string
	rate        float64
	compression string
	frames      bool
	outDir      string
	bigEndian   bool
	metrics     bool
	topK        int
	topWindow   int
}

type batchSummary struct {
	Batch      uint64                 `json:"batch"`
	Generation uint64                 `json:"generation"`
	Rows       int                    `json:"rows"`
	Phase      string                 `json:"phase"`
	Series     map[string]int         `json:"series"`
	Domain     *series.Domain         `json:"domain,omitempty"`
	Colors     map[string]string      `json:"colors"`
	Top        []series.CategoryCount `json:"top,omitempty"`
	Frame      *frameSummary          `json:"frame,omitempty"`
}

type frameSummary struct {
	Bytes  int     `json:"bytes"`
	XRatio float64 `json:"xRatio"`
	YRatio float64 `json:"yRatio"`
	Path   string  `json:"path,omitempty"`
}

func newReplayCmd(global *globalOptions) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed recorded batches through a chart engine",
		Long: `replay reads one JSON batch per line ({"metadata":{...},"data":[[...]]}),
merges every batch into the engine and prints one JSON summary per batch.
With --frames each snapshot is also encoded as a render frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd, global, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.config, "config", "c", "", "Chart configuration file (YAML or JSON)")
	flags.StringVarP(&opts.input, "input", "i", "-", "Batch file, one JSON batch per line (- for stdin)")
	flags.StringVar(&opts.family, "family", "basic", "Chart family: basic or inline")
	flags.Float64Var(&opts.rate, "rate", 0, "Maximum batches per second (0 for no limit)")
	flags.StringVar(&opts.compression, "compression", "none", "Frame payload compression: none, zstd, s2, lz4")
	flags.BoolVar(&opts.frames, "frames", false, "Encode a render frame after every batch")
	flags.StringVar(&opts.outDir, "out-dir", "", "Write frames to this directory as frame-NNNNNN.bin")
	flags.BoolVar(&opts.bigEndian, "big-endian", false, "Write big-endian frames")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print collected metrics when done")
	flags.IntVar(&opts.topK, "top", 0, "Report the top N categories (0 to disable)")
	flags.IntVar(&opts.topWindow, "top-window", 10, "Sliding window of --top in batches")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runReplay(cmd *cobra.Command, global *globalOptions, opts *replayOptions) error {
	logger, err := global.logger()
	if err != nil {
		return err
	}

	cfg, err := series.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	family, err := chart.ParseFamily(opts.family)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	stats, err := promstats.New(reg)
	if err != nil {
		return err
	}
	metrics := stats.Component("replay")

	engineOpts := []series.EngineOption{series.WithLogger(logger), series.WithMetrics(metrics)}
	if opts.topK > 0 {
		engineOpts = append(engineOpts, series.WithTopCategories(opts.topK, opts.topWindow))
	}
	c, err := chart.New(family, cfg, engineOpts...)
	if err != nil {
		return err
	}

	var encoder *frame.Encoder
	if opts.frames || opts.outDir != "" {
		encoder, err = newFrameEncoder(opts.compression, opts.bigEndian)
		if err != nil {
			return err
		}
		if opts.outDir != "" {
			if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
				return err
			}
		}
	}

	in, err := openInput(opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	err = readBatches(cmd.Context(), in, newLimiter(opts.rate), func(n int, batch series.Batch) error {
		if _, err := c.Update(batch); err != nil {
			return err
		}

		snap := c.Engine().Snapshot()
		summary := summarize(uint64(n), len(batch.Rows), snap)
		if opts.topK > 0 {
			summary.Top = c.Engine().TopCategories()
		}

		if encoder != nil {
			data, err := encoder.Encode(snap)
			if err != nil {
				return err
			}
			metrics.RecordFrame(len(data))

			st := encoder.Stats()
			summary.Frame = &frameSummary{
				Bytes:  len(data),
				XRatio: st.X.CompressionRatio(),
				YRatio: st.Y.CompressionRatio(),
			}
			if opts.outDir != "" {
				path := filepath.Join(opts.outDir, fmt.Sprintf("frame-%06d.bin", n))
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				summary.Frame.Path = path
			}
		}

		return enc.Encode(summary)
	})
	if err != nil {
		return err
	}

	if opts.metrics {
		return printMetrics(cmd, reg)
	}

	return nil
}

func newFrameEncoder(compression string, bigEndian bool) (*frame.Encoder, error) {
	ct, err := format.ParseCompressionType(compression)
	if err != nil {
		return nil, err
	}

	opts := []frame.EncoderOption{frame.WithCompression(ct)}
	if bigEndian {
		opts = append(opts, frame.WithBigEndian())
	}

	return frame.NewEncoder(opts...)
}

func summarize(n uint64, rows int, snap *series.Snapshot) batchSummary {
	s := batchSummary{
		Batch:      n,
		Generation: snap.Generation,
		Rows:       rows,
		Phase:      snap.Phase.String(),
		Series:     make(map[string]int, snap.SeriesCount()),
		Colors:     make(map[string]string),
	}
	for _, key := range snap.Keys() {
		s.Series[key.String()] = len(snap.Buffer(key))
	}
	for _, cs := range snap.Charts() {
		for name, color := range cs.Colors() {
			s.Colors[name] = color
		}
	}
	if snap.Axis.HasDomain {
		d := snap.Axis.Domain
		s.Domain = &d
	}

	return s
}

func printMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("%s=%q,", lp.GetName(), lp.GetValue())
			}
			if labels != "" {
				labels = "{" + labels[:len(labels)-1] + "}"
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(out, "%s_count%s %d\n%s_sum%s %g\n", mf.GetName(), labels, h.GetSampleCount(),
					mf.GetName(), labels, h.GetSampleSum())
			}
		}
	}

	return nil
}
