package worldmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options controls a map export.
type Options struct {
	OutDir string
	Format RasterFormat
	// Strict fails the export when the tilemap references textures or
	// catalog entries that do not exist. Otherwise they are logged.
	Strict bool
}

// Exporter converts a map directory into a heightmap image, a zone dump
// and a tilemap description.
type Exporter struct {
	opts Options
	log  *zap.Logger

	// Progress, if set, is called after every tile read.
	Progress func(done, total int)
}

// NewExporter creates an exporter. A nil logger disables logging.
func NewExporter(opts Options, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	return &Exporter{opts: opts, log: log}
}

// Result describes a completed export.
type Result struct {
	MapName   string
	Layout    Layout
	Extremes  Extremes
	Artifacts []string // written paths: image, zone dump, tilemap
}

type artifact struct {
	label string
	path  string
	data  []byte
}

// Export converts the map in mapDir. The map name is the directory's base
// name. Either all three artifacts are written or none are.
func (e *Exporter) Export(mapDir string) (*Result, error) {
	info, err := os.Stat(mapDir)
	if err != nil {
		return nil, fmt.Errorf("opening map directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, mapDir)
	}

	mapName := filepath.Base(filepath.Clean(mapDir))
	e.log.Info("loading map", zap.String("dir", mapDir), zap.String("map", mapName))

	scan, err := ScanCoordinates(mapDir)
	if err != nil {
		return nil, err
	}
	if missing := scan.Missing(); len(missing) > 0 {
		e.log.Warn("bounding rectangle has gaps", zap.Int("missing", len(missing)))
	}

	layout := NewLayout(scan.Bounds)
	e.log.Debug("computed layout",
		zap.Int("tiles", len(scan.Coordinates)),
		zap.Int("min_x", layout.Bounds.MinX),
		zap.Int("max_x", layout.Bounds.MaxX),
		zap.Int("min_y", layout.Bounds.MinY),
		zap.Int("max_y", layout.Bounds.MaxY),
		zap.Int("width", layout.Width),
		zap.Int("height", layout.Height),
		zap.Int("tiles_x", layout.TilesX),
		zap.Int("tiles_y", layout.TilesY),
	)

	dir := NewDirSource(scan)
	var src TileSource = dir
	if e.Progress != nil {
		total := 2 * len(layout.Coordinates())
		src = &progressSource{TileSource: dir, total: total, fn: e.Progress}
	}

	heights, ext, err := AssembleHeightField(layout, src)
	if err != nil {
		return nil, fmt.Errorf("assembling height field: %w", err)
	}
	tiles, err := AssembleTileIndexField(layout, src)
	if err != nil {
		return nil, fmt.Errorf("assembling tile index field: %w", err)
	}
	e.log.Debug("elevation range", zap.Float32("min", ext.Min), zap.Float32("max", ext.Max))

	img, err := RasterizeHeightField(heights, ext)
	if err != nil {
		return nil, err
	}
	if ext.Span() == 0 {
		e.log.Warn("flat height field", zap.Float32("height", ext.Min), zap.Uint8("level", FlatFieldLevel))
	}

	zone, err := dir.Zone(mapName)
	if err != nil {
		return nil, err
	}

	tilemap := MergeZone(zone, tiles)
	if err := tilemap.Validate(); err != nil {
		if e.opts.Strict {
			return nil, fmt.Errorf("validating tilemap: %w", err)
		}
		for _, verr := range multierr.Errors(err) {
			e.log.Warn("tilemap reference out of range", zap.Error(verr))
		}
	}

	imgBuf := new(bytes.Buffer)
	if err := e.opts.Format.Encode(imgBuf, img); err != nil {
		return nil, fmt.Errorf("encoding heightmap: %w", err)
	}
	zoneJSON, err := json.MarshalIndent(zone, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding zone: %w", err)
	}
	tilemapJSON, err := json.MarshalIndent(tilemap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tilemap: %w", err)
	}

	artifacts := []artifact{
		{"saving heightmap", filepath.Join(e.opts.OutDir, mapName+e.opts.Format.Extension()), imgBuf.Bytes()},
		{"dumping ZON file", filepath.Join(e.opts.OutDir, mapName+".json"), zoneJSON},
		{"saving tilemap file", filepath.Join(e.opts.OutDir, mapName+"_tilemap.json"), tilemapJSON},
	}
	for _, a := range artifacts {
		e.log.Info(a.label, zap.String("path", a.path))
	}

	if err := writeAll(e.opts.OutDir, artifacts); err != nil {
		return nil, err
	}

	result := &Result{MapName: mapName, Layout: layout, Extremes: ext}
	for _, a := range artifacts {
		result.Artifacts = append(result.Artifacts, a.path)
	}
	return result, nil
}

// writeAll stages every artifact in a temp file next to its target, moves
// existing targets aside, then renames the staged files into place. On
// failure the new files are removed and the previous targets restored.
func writeAll(outDir string, artifacts []artifact) (err error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	staged := make([]string, 0, len(artifacts))
	backups := make(map[string]string) // target -> moved-aside copy
	var renamed []string
	defer func() {
		if err == nil {
			for _, b := range backups {
				os.Remove(b)
			}
			return
		}
		for _, p := range staged {
			os.Remove(p)
		}
		for _, p := range renamed {
			os.Remove(p)
		}
		for target, b := range backups {
			os.Rename(b, target)
		}
	}()

	for _, a := range artifacts {
		tmp, err := stage(filepath.Dir(a.path), filepath.Base(a.path), a.data)
		if tmp != "" {
			staged = append(staged, tmp)
		}
		if err != nil {
			return err
		}
	}

	for _, a := range artifacts {
		backup, err := moveAside(a.path)
		if err != nil {
			return err
		}
		if backup != "" {
			backups[a.path] = backup
		}
	}

	for i, a := range artifacts {
		if err := os.Rename(staged[i], a.path); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		renamed = append(renamed, a.path)
	}
	return nil
}

// moveAside renames an existing file at path to a temp name in the same
// directory and returns that name. Directories are left in place.
func moveAside(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return "", nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.bak")
	if err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	backup := f.Name()
	f.Close()

	if err := os.Rename(path, backup); err != nil {
		os.Remove(backup)
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return backup, nil
}

func stage(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", name, err)
	}

	_, werr := f.Write(data)
	err = multierr.Combine(werr, f.Chmod(0644), f.Close())
	if err != nil {
		return f.Name(), fmt.Errorf("staging %s: %w", name, err)
	}
	return f.Name(), nil
}
