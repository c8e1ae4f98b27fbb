package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagOutDir = flag.String("o", "", "Directory to output converted files")
	flagFormat = flag.String("format", "", "Heightmap image format (png, bmp, tiff)")
	flagStrict = flag.Bool("strict", false, "Fail when tilemap references are out of range")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagQuiet  = flag.Bool("quiet", false, "Only log warnings and hide the progress bar")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagOutDir != "" {
		cfg.Output.Dir = *flagOutDir
	}
	if *flagFormat != "" {
		cfg.Output.RasterFormat = *flagFormat
	}
	if *flagStrict {
		cfg.Map.Strict = true
	}
	if *flagQuiet {
		cfg.Logging.Level = "warn"
		cfg.Map.Progress = false
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
}
