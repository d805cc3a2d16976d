// SPDX-License-Identifier: MIT
//go:build tinygo && esp32

package main

import (
	"context"

	"spectrum/internal/acquisition"
	"spectrum/internal/board"
	"spectrum/internal/buffer"
	"spectrum/internal/clock"
	"spectrum/internal/display"
	"spectrum/internal/input"
	"spectrum/internal/log"
	"spectrum/internal/source"
)

// main runs the firmware build: ADC signal pin, interrupt buttons and the
// TFT panel. There is no configuration file; the board wiring is fixed.
func main() {
	clk := clock.NewSystem()
	buttons := input.NewButtons()
	if err := board.WatchButtons(clk, buttons); err != nil {
		log.Fatalf("buttons: %v", err)
	}

	sine, ekg, err := source.Tables("", "")
	if err != nil {
		log.Fatalf("%v", err)
	}
	// The ESP32 hall sensor is not exposed by the machine package; the
	// magnetic source shares the signal pin.
	adc := board.NewADC()
	bank, err := source.NewBank(source.NewMagnetic(adc), source.NewAnalog(adc), sine, ekg, source.Analog, clk.Now())
	if err != nil {
		log.Fatalf("%v", err)
	}

	panel := display.NewPanel(board.NewDisplay(), buffer.Size, buffer.Size/2, acquisition.DefaultSampleRate)

	engine, err := acquisition.NewEngine(clk, bank, buttons, panel, acquisition.Options{
		StartupDelay: acquisition.WelcomeDelay,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
