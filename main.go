// SPDX-License-Identifier: MIT
//go:build !tinygo

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spectrum/cmd"
	"spectrum/internal/log"
	"spectrum/pkg/build"
)

// main runs the host build: YAML configuration, simulated or periph.io
// hardware, and any mix of log, terminal, browser and panel displays.
func main() {
	if err := build.Initialize(); err != nil {
		log.Warnf("development build: %v", err)
	}
	log.Infof("%s", build.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
