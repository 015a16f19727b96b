// Package config holds the station configuration: a single immutable value
// assembled once at startup and passed explicitly to every component.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Config is the full configuration surface of the label station. Values are
// fixed for the lifetime of the process; nothing re-reads them at runtime.
// The JSON schema is flat so a partial config file can override any subset
// of the defaults.
type Config struct {
	// Serial input.
	PortOverride string `json:"port_override"` // empty = autodetect
	BaudRate     int    `json:"baud_rate"`
	ReadTimeout  string `json:"read_timeout"` // duration string like "100ms"
	Terminator   string `json:"terminator"`
	MaxPending   int    `json:"max_pending"` // framer cap in bytes

	// Identifier and label geometry.
	Prefix      string `json:"prefix"`
	LabelWidth  int    `json:"label_width"`
	LabelHeight int    `json:"label_height"`
	Margin      int    `json:"margin"`

	// Header text. Font paths are optional; when empty the embedded
	// Liberation Sans faces are used.
	HeaderLine1     string `json:"header_line1"`
	HeaderLine2     string `json:"header_line2"`
	HeaderOffset    int    `json:"header_offset"` // line2 vertical offset below line1
	HeaderSize1     int    `json:"header_size1"`  // bold face, px
	HeaderSize2     int    `json:"header_size2"`  // regular face, px
	FontBoldPath    string `json:"font_bold_path"`
	FontRegularPath string `json:"font_regular_path"`

	// Logo artwork.
	LogoPrimaryPath  string `json:"logo_primary_path"`
	LogoPrimaryWidth int    `json:"logo_primary_width"`
	LogoWEEEPath     string `json:"logo_weee_path"`
	LogoWEEEWidth    int    `json:"logo_weee_width"`
	LogoCEPath       string `json:"logo_ce_path"`
	LogoCEWidth      int    `json:"logo_ce_width"`
	LogoPairGap      int    `json:"logo_pair_gap"`

	// Barcode raster parameters.
	ModuleWidth int `json:"module_width"` // px per Code 128 module
	BarHeight   int `json:"bar_height"`   // px
	QuietZone   int `json:"quiet_zone"`   // modules each side
	CaptionSize int `json:"caption_size"` // px
	CaptionGap  int `json:"caption_gap"`  // px between bars and caption
	CaptionPad  int `json:"caption_pad"`  // px below caption

	// Output.
	OutputDir string `json:"output_dir"`
	OutputDPI int    `json:"output_dpi"`

	// Logging.
	LogLevel string `json:"log_level"`
}

// Default returns the built-in configuration. The geometry matches the
// production sticker: 543x248 px at 300 DPI with a 16 px margin.
func Default() Config {
	return Config{
		PortOverride: "",
		BaudRate:     115200,
		ReadTimeout:  "100ms",
		Terminator:   "\r",
		MaxPending:   64 * 1024,

		Prefix:      "UK",
		LabelWidth:  543,
		LabelHeight: 248,
		Margin:      16,

		HeaderLine1:  "UBIQOD KEY",
		HeaderLine2:  "P/N : SKPF000252",
		HeaderOffset: 38,
		HeaderSize1:  30,
		HeaderSize2:  26,

		LogoPrimaryPath:  "img/taqt.png",
		LogoPrimaryWidth: 190,
		LogoWEEEPath:     "img/WEEE.png",
		LogoWEEEWidth:    70,
		LogoCEPath:       "img/CE.png",
		LogoCEWidth:      80,
		LogoPairGap:      4,

		ModuleWidth: 3,
		BarHeight:   60,
		QuietZone:   2,
		CaptionSize: 24,
		CaptionGap:  4,
		CaptionPad:  8,

		OutputDir: "barcodes",
		OutputDPI: 300,

		LogLevel: "info",
	}
}

// Load reads a JSON config file and overlays it onto the defaults. Fields
// omitted from the file retain their default values, so partial configs are
// safe. The file must have a .json extension and stay under 1MB.
func Load(path string) (Config, error) {
	cfg := Default()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", c.BaudRate)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout %q: %w", c.ReadTimeout, err)
	}
	if c.Terminator == "" {
		return fmt.Errorf("terminator must not be empty")
	}
	if c.MaxPending <= 0 {
		return fmt.Errorf("max_pending must be positive, got %d", c.MaxPending)
	}
	if c.LabelWidth <= 0 || c.LabelHeight <= 0 {
		return fmt.Errorf("label dimensions must be positive, got %dx%d", c.LabelWidth, c.LabelHeight)
	}
	if c.Margin < 0 || 2*c.Margin >= c.LabelWidth || 2*c.Margin >= c.LabelHeight {
		return fmt.Errorf("margin %d does not fit label %dx%d", c.Margin, c.LabelWidth, c.LabelHeight)
	}
	if c.ModuleWidth <= 0 || c.BarHeight <= 0 || c.QuietZone < 0 {
		return fmt.Errorf("invalid barcode parameters: module_width=%d bar_height=%d quiet_zone=%d",
			c.ModuleWidth, c.BarHeight, c.QuietZone)
	}
	if c.CaptionSize <= 0 || c.HeaderSize1 <= 0 || c.HeaderSize2 <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.OutputDPI <= 0 {
		return fmt.Errorf("output_dpi must be positive, got %d", c.OutputDPI)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// GetReadTimeout parses and returns the ReadTimeout as a time.Duration.
// Validate rejects unparseable values before any caller reaches this, so the
// parse can only fail on a config that skipped validation; that case falls
// back to the default 100ms poll window rather than returning a zero timeout.
func (c Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

// TerminatorBytes returns the line terminator as a byte sequence.
func (c Config) TerminatorBytes() []byte {
	return []byte(c.Terminator)
}
