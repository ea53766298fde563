package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds"
)

type inspectReport struct {
	File              string `json:"file"`
	Format            string `json:"format"`
	Label             string `json:"label"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	Flags             uint32 `json:"flags"`
	PitchOrLinearSize uint32 `json:"pitch_or_linear_size"`
	MipMapCount       uint32 `json:"mip_map_count"`
	FourCC            string `json:"fourcc,omitempty"`
	DXGIFormat        uint32 `json:"dxgi_format,omitempty"`
	EDDS              bool   `json:"edds,omitempty"`
	Block             string `json:"block,omitempty"`
	PayloadSize       int    `json:"payload_size"`
}

func inspectCmd(out io.Writer) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the headers of DDS or EDDS files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of text", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("inspect: no files given")
			}

			reports := make([]inspectReport, 0, len(paths))
			for _, path := range paths {
				f, err := dds.ReadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				reports = append(reports, newInspectReport(path, f))
			}

			if asJSON {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			for _, r := range reports {
				printReport(out, r)
			}
			return nil
		},
	}
}

func newInspectReport(path string, f *dds.File) inspectReport {
	r := inspectReport{
		File:              path,
		Format:            f.Format.String(),
		Label:             f.FormatLabel,
		Width:             f.Width,
		Height:            f.Height,
		Flags:             f.Flags,
		PitchOrLinearSize: f.PitchOrLinearSize,
		MipMapCount:       f.MipMapCount,
		DXGIFormat:        f.DXGIFormat,
		EDDS:              f.EDDS,
		Block:             f.BlockMagic,
		PayloadSize:       len(f.Payload),
	}
	if f.PixelFormat.FourCC != 0 {
		r.FourCC = fmt.Sprintf("0x%08x", f.PixelFormat.FourCC)
	}
	return r
}

func printReport(w io.Writer, r inspectReport) {
	_, _ = fmt.Fprintf(w, "%s\n", r.File)
	_, _ = fmt.Fprintf(w, "  format:  %s (%s)\n", r.Format, r.Label)
	_, _ = fmt.Fprintf(w, "  size:    %dx%d\n", r.Width, r.Height)
	_, _ = fmt.Fprintf(w, "  flags:   0x%08x\n", r.Flags)
	_, _ = fmt.Fprintf(w, "  pitch:   %d\n", r.PitchOrLinearSize)
	_, _ = fmt.Fprintf(w, "  mips:    %d\n", r.MipMapCount)
	if r.DXGIFormat != 0 {
		_, _ = fmt.Fprintf(w, "  dxgi:    %d\n", r.DXGIFormat)
	}
	if r.EDDS {
		_, _ = fmt.Fprintf(w, "  edds:    %s block\n", r.Block)
	}
	_, _ = fmt.Fprintf(w, "  payload: %d bytes\n", r.PayloadSize)
}
