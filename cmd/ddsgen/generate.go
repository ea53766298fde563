package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds/internal/fixture"
)

func generateCmd(logOut io.Writer) *cli.Command {
	var (
		configPath string
		outDir     string
		manifest   string
		formats    []string
		edds       bool
		noCompress bool
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Write the fixture image in every (or the selected) format",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", Destination: &configPath},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory (default PluginData)", Destination: &outDir},
			&cli.StringSliceFlag{Name: "format", Aliases: []string{"f"}, Usage: "format name, repeatable or comma separated", Destination: &formats},
			&cli.BoolFlag{Name: "edds", Usage: "also write Enfusion .edds copies", Destination: &edds},
			&cli.BoolFlag{Name: "no-compress", Usage: "store EDDS payloads uncompressed", Destination: &noCompress},
			&cli.StringFlag{Name: "manifest", Usage: "write a JSON manifest of generated files", Destination: &manifest},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(logOut, cmd)

			cfg := fixture.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = fixture.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if outDir != "" {
				cfg.OutputDir = outDir
			}
			if len(formats) > 0 {
				cfg.Formats = formats
			}
			if edds {
				cfg.EDDS = true
			}
			if noCompress {
				cfg.Compress = false
			}
			if manifest != "" {
				cfg.Manifest = manifest
			}

			results, err := fixture.Generate(ctx, cfg, log)
			if err != nil {
				return err
			}
			log.Info("done", "files", len(results), "dir", cfg.OutputDir)
			return nil
		},
	}
}
