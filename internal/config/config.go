// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Map     MapConfig     `yaml:"map"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls where and how artifacts are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	RasterFormat string `yaml:"raster_format"` // png, bmp or tiff
}

// MapConfig holds map conversion settings.
type MapConfig struct {
	Strict   bool `yaml:"strict"`   // fail on out-of-range texture or catalog references
	Progress bool `yaml:"progress"` // show a progress bar while stitching
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:          "./out/",
			RasterFormat: "png",
		},
		Map: MapConfig{
			Strict:   false,
			Progress: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
