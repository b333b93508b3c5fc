package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/vizstream/frame"
	"github.com/arloliu/vizstream/series"
)

type inspectedSeries struct {
	ID     string    `json:"id"`
	Chart  int       `json:"chart"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	X      []float64 `json:"x,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Y      []any     `json:"y"`
}

type inspectedFrame struct {
	Generation  uint64            `json:"generation"`
	Scale       string            `json:"scale"`
	Compression string            `json:"compression"`
	BigEndian   bool              `json:"bigEndian"`
	Collision   bool              `json:"collision"`
	Domain      *series.Domain    `json:"domain,omitempty"`
	Series      []inspectedSeries `json:"series"`
}

func newInspectCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "inspect [frame.bin]",
		Short: "Decode a render frame and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			in, err := openInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read frame: %w", err)
			}

			f, err := frame.Decode(data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}

			return enc.Encode(describeFrame(f))
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func describeFrame(f *frame.Frame) inspectedFrame {
	out := inspectedFrame{
		Generation:  f.Generation(),
		Scale:       f.Scale().String(),
		Compression: f.Header.Flag.CompressionType().String(),
		BigEndian:   f.Header.Flag.IsBigEndian(),
		Collision:   f.Header.Flag.HasCollision(),
		Series:      make([]inspectedSeries, 0, len(f.Series)),
	}
	if d, ok := f.Domain(); ok {
		out.Domain = &d
	}

	for _, s := range f.Series {
		out.Series = append(out.Series, inspectedSeries{
			ID:     fmt.Sprintf("%016x", s.ID),
			Chart:  s.Chart,
			Name:   s.Name,
			Color:  s.Color,
			X:      s.X,
			Labels: s.Labels,
			Y:      s.YValues(),
		})
	}

	return out
}
