// roseconv converts ROSE Online map directories into a heightmap image,
// a zone dump and a tilemap description.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/rose-conv/internal/config"
	"github.com/Faultbox/rose-conv/internal/logger"
	"github.com/Faultbox/rose-conv/internal/worldmap"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("config loaded",
		zap.String("out_dir", cfg.Output.Dir),
		zap.String("raster_format", cfg.Output.RasterFormat),
		zap.Bool("strict", cfg.Map.Strict),
		zap.Bool("progress", cfg.Map.Progress),
	)

	command := args[0]
	args = args[1:]

	var code int
	switch command {
	case "map":
		code = cmdMap(cfg, args)
	case "info":
		code = cmdInfo(args)
	case "config":
		code = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}

	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`roseconv - ROSE Online map converter

Usage:
  roseconv [flags] <command> [args]

Commands:
  map <map_dir>          Stitch a map into <name>.png, <name>.json and <name>_tilemap.json
  info <map_dir>         Show the tile grid of a map without converting it
  config [save [path]]   Print the effective config, or save it

Flags:
  -config <file>         Config file (default ./config.yaml or user config dir)
  -o <dir>               Output directory (default ./out/)
  -format <fmt>          Heightmap format: png, bmp, tiff
  -strict                Fail when tilemap references are out of range
  -quiet                 Only log warnings and hide the progress bar
  -debug                 Enable debug logging

Examples:
  roseconv map 3DDATA/MAPS/JUNON/JDT01
  roseconv -o ./maps -format tiff map 3DDATA/MAPS/JUNON/JD01
  roseconv info 3DDATA/MAPS/JUNON/JDT01`)
}

func cmdMap(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: roseconv map <map_dir>")
		return 1
	}
	mapDir := args[0]

	format, err := worldmap.ParseRasterFormat(cfg.Output.RasterFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	exp := worldmap.NewExporter(worldmap.Options{
		OutDir: cfg.Output.Dir,
		Format: format,
		Strict: cfg.Map.Strict,
	}, logger.Named("map"))

	var bar *progressbar.ProgressBar
	if cfg.Map.Progress {
		bar = newProgressBar(filepath.Base(filepath.Clean(mapDir)))
		exp.Progress = func(done, total int) {
			if bar.GetMax() != total {
				bar.ChangeMax(total)
			}
			_ = bar.Set(done)
		}
	}

	res, err := exp.Export(mapDir)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		logger.Error("map conversion failed", zap.String("dir", mapDir), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error occurred: %v\n", err)
		return 1
	}

	logger.Info("map converted",
		zap.String("map", res.MapName),
		zap.String("size", fmt.Sprintf("%dx%d", res.Layout.Width, res.Layout.Height)),
		zap.Float32("min_height", res.Extremes.Min),
		zap.Float32("max_height", res.Extremes.Max),
	)
	for _, path := range res.Artifacts {
		fmt.Println(path)
	}
	return 0
}

func newProgressBar(mapName string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("stitching "+mapName),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func cmdInfo(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: roseconv info <map_dir>")
		return 1
	}

	scan, err := worldmap.ScanCoordinates(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	layout := worldmap.NewLayout(scan.Bounds)
	b := scan.Bounds

	fmt.Printf("Map:        %s\n", filepath.Base(filepath.Clean(args[0])))
	fmt.Printf("Tiles:      %d\n", len(scan.Coordinates))
	fmt.Printf("X range:    %d..%d\n", b.MinX, b.MaxX)
	fmt.Printf("Y range:    %d..%d\n", b.MinY, b.MaxY)
	fmt.Printf("Heightmap:  %dx%d\n", layout.Width, layout.Height)
	fmt.Printf("Tilemap:    %dx%d\n", layout.TilesX, layout.TilesY)

	if missing := scan.Missing(); len(missing) > 0 {
		logger.Warn("bounding rectangle has gaps", zap.Int("missing", len(missing)))
		fmt.Println()
		fmt.Printf("Missing tiles (%d):\n", len(missing))
		for _, c := range missing {
			fmt.Printf("  %s\n", c)
		}
	}
	return 0
}

func cmdConfig(cfg *config.Config, args []string) int {
	if len(args) == 0 {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Print(string(data))
		return 0
	}

	if args[0] != "save" {
		fmt.Fprintln(os.Stderr, "Usage: roseconv config [save [path]]")
		return 1
	}

	var path string
	var err error
	if len(args) > 1 {
		path = args[1]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Config saved to %s\n", path)
	return 0
}
