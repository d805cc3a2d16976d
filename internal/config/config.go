// SPDX-License-Identifier: MIT
package config

import "time"

// Defaults for everything the YAML file may leave out. Acquisition timing,
// buffer size, window and debounce are fixed by the firmware and are not
// configuration; they live with the packages that use them.
const (
	DefaultLogLevel       = "info"
	DefaultInitialSource  = "analog"
	DefaultStartupDelay   = time.Second
	DefaultButtonDriver   = ButtonsKeyboard
	DefaultAcquisitionPin = "GPIO13"
	DefaultSourcePin      = "GPIO12"
	DefaultAnalogDriver   = AnalogSimulated
	DefaultAnalogDevice   = -1 // PortAudio default input device
	DefaultSimFrequency   = 5.0
	DefaultMagneticDriver = MagneticSimulated
	DefaultI2CBus         = "1"
	DefaultI2CAddr        = 0x36
	DefaultI2CRegister    = 0x0C
	DefaultWebSocketAddr  = ":8080"
	DefaultUDPAddr        = "127.0.0.1:9090"
	DefaultBaudRate       = 115200
	DefaultOutputDir      = "./recordings"
	DefaultBitDepth       = 16

	// The simulated analog tone must stay below the 500 Hz Nyquist limit of
	// the 1000 Hz default sample rate.
	MaxSimFrequency = 500.0
)

// Button drivers.
const (
	ButtonsNone     = "none"
	ButtonsPeriph   = "periph"
	ButtonsKeyboard = "keyboard"
)

// Analog reader drivers.
const (
	AnalogSimulated = "simulated"
	AnalogPortAudio = "portaudio"
	AnalogADC       = "adc"
)

// Magnetic reader drivers.
const (
	MagneticSimulated = "simulated"
	MagneticI2C       = "i2c"
)

// Presentation sinks.
const (
	SinkLog       = "log"
	SinkTUI       = "tui"
	SinkWebSocket = "websocket"
	SinkPanel     = "panel"
	SinkUDP       = "udp"
)

// Source names accepted by acquisition.initial_source and --source.
var SourceNames = []string{"hall", "analog", "sine", "ekg"}

// Default returns the built-in configuration used when no file is found.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Acquisition: AcquisitionConfig{
			InitialSource: DefaultInitialSource,
			StartupDelay:  DefaultStartupDelay,
		},
		Buttons: ButtonsConfig{
			Driver:         DefaultButtonDriver,
			AcquisitionPin: DefaultAcquisitionPin,
			SourcePin:      DefaultSourcePin,
		},
		Sources: SourcesConfig{
			Analog: AnalogConfig{
				Driver:       DefaultAnalogDriver,
				Device:       DefaultAnalogDevice,
				SimFrequency: DefaultSimFrequency,
			},
			Magnetic: MagneticConfig{
				Driver:   DefaultMagneticDriver,
				I2CBus:   DefaultI2CBus,
				I2CAddr:  DefaultI2CAddr,
				Register: DefaultI2CRegister,
			},
		},
		Display: DisplayConfig{
			Sinks:         []string{SinkLog},
			WebSocketAddr: DefaultWebSocketAddr,
			UDPAddr:       DefaultUDPAddr,
		},
		Diagnostics: DiagnosticsConfig{
			BaudRate: DefaultBaudRate,
		},
		Recording: RecordingConfig{
			OutputDir: DefaultOutputDir,
			BitDepth:  DefaultBitDepth,
		},
	}
}
