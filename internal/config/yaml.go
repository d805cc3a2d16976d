// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"spectrum/internal/log"
)

var logger = log.For("Config")

// Config represents the application configuration, loaded from YAML.
type Config struct {
	Debug       bool              `yaml:"debug"`
	LogLevel    string            `yaml:"log_level"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Buttons     ButtonsConfig     `yaml:"buttons"`
	Sources     SourcesConfig     `yaml:"sources"`
	Display     DisplayConfig     `yaml:"display"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Recording   RecordingConfig   `yaml:"recording"`
}

type AcquisitionConfig struct {
	InitialSource string        `yaml:"initial_source"` // hall, analog, sine or ekg.
	SingleShot    bool          `yaml:"single_shot"`    // Stop after every completed buffer.
	StartupDelay  time.Duration `yaml:"startup_delay"`  // Welcome window before sampling starts.
}

// ButtonsConfig selects where the acquisition and source button edges come
// from. Pin names are periph.io names on Linux boards.
type ButtonsConfig struct {
	Driver         string `yaml:"driver"`
	AcquisitionPin string `yaml:"acquisition_pin"`
	SourcePin      string `yaml:"source_pin"`
}

type SourcesConfig struct {
	Analog   AnalogConfig   `yaml:"analog"`
	Magnetic MagneticConfig `yaml:"magnetic"`
	SineWAV  string         `yaml:"sine_wav"` // Optional WAV replacing the synthesized sine table.
	EKGWAV   string         `yaml:"ekg_wav"`  // Optional WAV replacing the synthesized EKG table.
}

type AnalogConfig struct {
	Driver       string  `yaml:"driver"`
	Device       int     `yaml:"device"`        // PortAudio input device index, -1 for default.
	SimFrequency float64 `yaml:"sim_frequency"` // Tone of the simulated input in Hz.
}

type MagneticConfig struct {
	Driver   string `yaml:"driver"`
	I2CBus   string `yaml:"i2c_bus"`
	I2CAddr  uint16 `yaml:"i2c_addr"`
	Register uint8  `yaml:"register"`
}

type DisplayConfig struct {
	Sinks         []string `yaml:"sinks"`
	WebSocketAddr string   `yaml:"websocket_addr"`
	UDPAddr       string   `yaml:"udp_addr"` // Target of the binary spectrum datagrams.
	Snapshot      string   `yaml:"snapshot"` // PNG written by the panel sink on every present.
}

// DiagnosticsConfig mirrors the log to a serial port when SerialPort is set.
type DiagnosticsConfig struct {
	SerialPort string `yaml:"serial_port"`
	BaudRate   uint   `yaml:"baud_rate"`
}

// RecordingConfig controls the per-cycle WAV capture.
type RecordingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
	BitDepth  int    `yaml:"bit_depth"`
}

// LoadConfig loads configuration from the YAML file at path. If path is empty
// it looks for config.yaml in the working directory and falls back to the
// built-in defaults. Environment overrides are applied last, then the result
// is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field that has a closed set of values or a range.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level %q is not a known level", c.LogLevel))
	}

	if !slices.Contains(SourceNames, strings.ToLower(c.Acquisition.InitialSource)) {
		errs = append(errs, fmt.Errorf("acquisition.initial_source %q must be one of %v",
			c.Acquisition.InitialSource, SourceNames))
	}
	if c.Acquisition.StartupDelay < 0 {
		errs = append(errs, errors.New("acquisition.startup_delay must not be negative"))
	}

	switch c.Buttons.Driver {
	case ButtonsNone, ButtonsKeyboard:
	case ButtonsPeriph:
		if c.Buttons.AcquisitionPin == "" || c.Buttons.SourcePin == "" {
			errs = append(errs, errors.New("buttons: both pins must be set for the periph driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("buttons.driver %q is not supported", c.Buttons.Driver))
	}

	switch c.Sources.Analog.Driver {
	case AnalogSimulated, AnalogPortAudio, AnalogADC:
	default:
		errs = append(errs, fmt.Errorf("sources.analog.driver %q is not supported", c.Sources.Analog.Driver))
	}
	if f := c.Sources.Analog.SimFrequency; f <= 0 || f >= MaxSimFrequency {
		errs = append(errs, fmt.Errorf("sources.analog.sim_frequency %.2f must be in (0, %.0f)", f, MaxSimFrequency))
	}

	switch c.Sources.Magnetic.Driver {
	case MagneticSimulated:
	case MagneticI2C:
		if c.Sources.Magnetic.I2CAddr > 0x7f {
			errs = append(errs, fmt.Errorf("sources.magnetic.i2c_addr %#x is not a 7-bit address", c.Sources.Magnetic.I2CAddr))
		}
	default:
		errs = append(errs, fmt.Errorf("sources.magnetic.driver %q is not supported", c.Sources.Magnetic.Driver))
	}

	seen := make(map[string]bool, len(c.Display.Sinks))
	for _, s := range c.Display.Sinks {
		switch s {
		case SinkLog, SinkTUI, SinkWebSocket, SinkPanel, SinkUDP:
		default:
			errs = append(errs, fmt.Errorf("display.sinks: unknown sink %q", s))
		}
		if seen[s] {
			errs = append(errs, fmt.Errorf("display.sinks: %q listed twice", s))
		}
		seen[s] = true
	}
	if seen[SinkWebSocket] && !strings.Contains(c.Display.WebSocketAddr, ":") {
		errs = append(errs, fmt.Errorf("display.websocket_addr %q appears invalid (missing port?)", c.Display.WebSocketAddr))
	}
	if seen[SinkUDP] && !strings.Contains(c.Display.UDPAddr, ":") {
		errs = append(errs, fmt.Errorf("display.udp_addr %q appears invalid (missing port?)", c.Display.UDPAddr))
	}
	if c.Buttons.Driver == ButtonsNone && !seen[SinkTUI] {
		errs = append(errs, fmt.Errorf("buttons.driver %q needs the %q sink, otherwise acquisition can never start",
			ButtonsNone, SinkTUI))
	}
	if seen[SinkTUI] && c.Buttons.Driver == ButtonsPeriph {
		logger.Warnf("terminal keys and periph buttons will both drive the controller")
	}

	if c.Diagnostics.SerialPort != "" && c.Diagnostics.BaudRate == 0 {
		errs = append(errs, errors.New("diagnostics.baud_rate must be set when serial_port is"))
	}

	if c.Recording.Enabled {
		switch c.Recording.BitDepth {
		case 8, 16, 24, 32:
		default:
			errs = append(errs, fmt.Errorf("recording.bit_depth %d must be 8, 16, 24 or 32", c.Recording.BitDepth))
		}
		if c.Recording.OutputDir == "" {
			errs = append(errs, errors.New("recording.output_dir must be set when recording is enabled"))
		}
	}

	return errors.Join(errs...)
}

// applyEnvOverrides applies the ENV_* variables on top of the file values.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("ENV_DEBUG"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Debug = b
			logger.Infof("overriding debug from env: %v", b)
		}
	}

	if val, ok := os.LookupEnv("ENV_LOG_LEVEL"); ok {
		c.LogLevel = val
		logger.Infof("overriding log_level from env: %s", val)
	}

	if val, ok := os.LookupEnv("ENV_WS_ADDR"); ok {
		c.Display.WebSocketAddr = val
		logger.Infof("overriding display.websocket_addr from env: %s", val)
	}

	if val, ok := os.LookupEnv("ENV_SERIAL_PORT"); ok {
		c.Diagnostics.SerialPort = val
		logger.Infof("overriding diagnostics.serial_port from env: %s", val)
	}
}
