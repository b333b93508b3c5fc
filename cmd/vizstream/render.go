package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/vizstream/chart"
	"github.com/arloliu/vizstream/render"
	"github.com/arloliu/vizstream/series"
)

type renderOptions struct {
	config string
	input  string
	output string
	family string
	format string
	title  string
	width  int
	height int
	legend bool
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay batches and render the final chart as PNG or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, global, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.config, "config", "c", "", "Chart configuration file (YAML or JSON)")
	flags.StringVarP(&opts.input, "input", "i", "-", "Batch file, one JSON batch per line (- for stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "Image file (default: stdout)")
	flags.StringVar(&opts.family, "family", "basic", "Chart family: basic or inline")
	flags.StringVar(&opts.format, "format", "", "Image format: png or svg (default: from --output extension)")
	flags.StringVar(&opts.title, "title", "", "Chart title")
	flags.IntVar(&opts.width, "width", 1024, "Image width in pixels")
	flags.IntVar(&opts.height, "height", 400, "Image height in pixels")
	flags.BoolVar(&opts.legend, "legend", false, "Draw a legend")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runRender(cmd *cobra.Command, global *globalOptions, opts *renderOptions) error {
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

	imgFormat := render.FormatOf(opts.output)
	if opts.format != "" {
		if imgFormat, err = render.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	c, err := chart.New(family, cfg, series.WithLogger(logger))
	if err != nil {
		return err
	}

	in, err := openInput(opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	err = readBatches(cmd.Context(), in, nil, func(_ int, batch series.Batch) error {
		_, err := c.Update(batch)
		return err
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = render.Write(&buf, imgFormat, c.View(),
		render.WithSize(opts.width, opts.height),
		render.WithTitle(opts.title),
		render.WithLegend(opts.legend || cfg.Legend),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if opts.output == "" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	return os.WriteFile(opts.output, buf.Bytes(), 0o644)
}
