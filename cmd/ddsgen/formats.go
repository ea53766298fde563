package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds"
	"github.com/woozymasta/dds/internal/fixture"
)

func formatsCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "List the supported output formats",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tFILE\tDX10\tPAYLOAD(4x4)")
			for _, f := range dds.Formats() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%d\n",
					f, fixture.FileName(f, false), f.NeedsDX10(), f.PayloadSize(fixture.Width, fixture.Height))
			}
			return tw.Flush()
		},
	}
}
