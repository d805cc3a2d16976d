// SPDX-License-Identifier: MIT
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"spectrum/internal/acquisition"
	"spectrum/internal/audio"
	"spectrum/internal/board"
	"spectrum/internal/buffer"
	"spectrum/internal/clock"
	"spectrum/internal/config"
	"spectrum/internal/display"
	"spectrum/internal/input"
	"spectrum/internal/log"
	"spectrum/internal/source"
	"spectrum/internal/transport"
	"spectrum/internal/transport/udp"
	"spectrum/internal/tui"
)

// Panel resolution of the reference TFT.
const (
	PanelWidth  = 480
	PanelHeight = 320
)

var ErrADCHost = errors.New("the adc analog driver is only available in the tinygo build")

// resources collects what Run must release on the way out, in reverse order.
type resources struct {
	closers []func() error
}

func (r *resources) add(name string, fn func() error) {
	r.closers = append(r.closers, func() error {
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	})
}

func (r *resources) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}
}

// sinks is the result of buildSinks. tui is nil unless the terminal display
// was requested.
type sinks struct {
	all display.Multi
	tui *tui.Sink
}

// watchButtons starts the configured edge producer. The terminal display
// reads the keyboard itself, so the line-based key driver stays off while it
// runs.
func watchButtons(ctx context.Context, cfg *config.Config, clk clock.Clock, buttons input.Buttons, keys io.Reader, withTUI bool) error {
	switch cfg.Buttons.Driver {
	case config.ButtonsPeriph:
		return board.WatchButtons(ctx, clk, buttons, cfg.Buttons.AcquisitionPin, cfg.Buttons.SourcePin)
	case config.ButtonsKeyboard:
		if withTUI {
			return nil
		}
		log.Infof("keyboard buttons: a<enter> start/stop, s<enter> next source")
		go func() {
			if err := board.WatchKeys(ctx, keys, clk, buttons); err != nil {
				log.Warnf("keyboard: %v", err)
			}
		}()
	}
	return nil
}

// Run wires the configured hardware, sources and displays to an acquisition
// engine and runs it until ctx is cancelled, the terminal display is closed
// or the engine fails.
func Run(ctx context.Context, cfg *config.Config) error {
	var res resources
	defer res.close()

	out, err := buildSinks(cfg, &res)
	if err != nil {
		return err
	}
	if out.tui != nil {
		prev := log.Writer()
		log.SetOutput(out.tui)
		res.add("log", func() error { log.SetOutput(prev); return nil })
	}

	if port := cfg.Diagnostics.SerialPort; port != "" {
		c, err := board.MirrorLog(port, cfg.Diagnostics.BaudRate)
		if err != nil {
			return err
		}
		res.add("serial", c.Close)
	}

	clk := clock.NewSystem()
	buttons := input.NewButtons()

	if cfg.Buttons.Driver == config.ButtonsPeriph || cfg.Sources.Magnetic.Driver == config.MagneticI2C {
		if err := board.Init(); err != nil {
			return err
		}
	}

	bank, err := buildBank(cfg, clk, &res)
	if err != nil {
		return err
	}

	engine, err := acquisition.NewEngine(clk, bank, buttons, out.all, acquisition.Options{
		SingleShot:   cfg.Acquisition.SingleShot,
		StartupDelay: cfg.Acquisition.StartupDelay,
	})
	if err != nil {
		return err
	}

	if cfg.Recording.Enabled {
		rec, err := audio.NewRecorder(cfg.Recording.OutputDir, cfg.Recording.BitDepth)
		if err != nil {
			return err
		}
		engine.AddObserver(rec)
		log.Infof("recording cycles to %s", cfg.Recording.OutputDir)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := watchButtons(ctx, cfg, clk, buttons, os.Stdin, out.tui != nil); err != nil {
		return err
	}

	if out.tui == nil {
		return engine.Run(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- engine.Run(ctx)
		cancel()
	}()
	uiErr := tui.Run(ctx, tui.NewModel(out.tui, buttons, clk))
	cancel()
	if err := <-errc; err != nil {
		return err
	}
	return uiErr
}

func buildSinks(cfg *config.Config, res *resources) (sinks, error) {
	var out sinks
	for _, name := range cfg.Display.Sinks {
		switch name {
		case config.SinkLog:
			out.all = append(out.all, display.NewTransportSink(transport.NewLoggingTransport(), display.DefaultBatch))

		case config.SinkWebSocket:
			ws, err := transport.NewWebSocketTransport(cfg.Display.WebSocketAddr)
			if err != nil {
				return out, err
			}
			res.add("websocket", ws.Close)
			out.all = append(out.all, display.NewTransportSink(ws, display.DefaultBatch))

		case config.SinkPanel:
			fb := display.NewFramebuffer(PanelWidth, PanelHeight, cfg.Display.Snapshot)
			out.all = append(out.all, display.NewPanel(fb, buffer.Size, buffer.Size/2, acquisition.DefaultSampleRate))

		case config.SinkUDP:
			sender, err := udp.NewSender(cfg.Display.UDPAddr)
			if err != nil {
				return out, err
			}
			pub := udp.NewPublisher(sender, buffer.Size/2)
			res.add("udp", pub.Close)
			out.all = append(out.all, pub)

		case config.SinkTUI:
			out.tui = tui.NewSink(buffer.Size, buffer.Size/2)
			out.all = append(out.all, out.tui)

		default:
			return out, fmt.Errorf("unknown display %q", name)
		}
	}
	return out, nil
}

func buildBank(cfg *config.Config, clk clock.Clock, res *resources) (*source.Bank, error) {
	hall, err := magneticReader(cfg.Sources.Magnetic, clk, res)
	if err != nil {
		return nil, err
	}
	analog, err := analogReader(cfg.Sources.Analog, clk, res)
	if err != nil {
		return nil, err
	}
	sine, ekg, err := source.Tables(cfg.Sources.SineWAV, cfg.Sources.EKGWAV)
	if err != nil {
		return nil, err
	}
	initial, err := source.ParseID(cfg.Acquisition.InitialSource)
	if err != nil {
		return nil, err
	}
	return source.NewBank(source.NewMagnetic(hall), source.NewAnalog(analog), sine, ekg, initial, clk.Now())
}

func magneticReader(c config.MagneticConfig, clk clock.Clock, res *resources) (source.RawReader, error) {
	switch c.Driver {
	case config.MagneticSimulated:
		return source.SimulatedMagnetic(clk), nil
	case config.MagneticI2C:
		m, err := board.OpenMagnetic(c.I2CBus, c.I2CAddr, c.Register)
		if err != nil {
			return nil, err
		}
		res.add("i2c", m.Close)
		return m, nil
	default:
		return nil, fmt.Errorf("unknown magnetic driver %q", c.Driver)
	}
}

func analogReader(c config.AnalogConfig, clk clock.Clock, res *resources) (source.RawReader, error) {
	switch c.Driver {
	case config.AnalogSimulated:
		return source.SimulatedAnalog(clk, c.SimFrequency), nil
	case config.AnalogPortAudio:
		if err := audio.Initialize(); err != nil {
			return nil, err
		}
		res.add("portaudio", audio.Terminate)
		li, err := audio.NewLineIn(c.Device)
		if err != nil {
			return nil, err
		}
		if err := li.Start(); err != nil {
			return nil, err
		}
		res.add("line-in", li.Stop)
		return li, nil
	case config.AnalogADC:
		return nil, ErrADCHost
	default:
		return nil, fmt.Errorf("unknown analog driver %q", c.Driver)
	}
}
