package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-svision/svision"
	"github.com/valerio/go-svision/svision/audio"
	"github.com/valerio/go-svision/svision/backend"
	"github.com/valerio/go-svision/svision/backend/headless"
	"github.com/valerio/go-svision/svision/backend/terminal"
	"github.com/valerio/go-svision/svision/cpu"
	"github.com/valerio/go-svision/svision/input"
	"github.com/valerio/go-svision/svision/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "svision"
	app.Description = "A Watara Supervision emulator"
	app.Usage = "svision [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Display scale factor",
			Value: 2,
		},
		cli.BoolFlag{
			Name:  "no-audio",
			Usage: "Disable host audio output",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	// No instruction core is bundled; a 65C02 core implementing cpu.Core
	// plugs in here. The nop core keeps the board running for bring-up.
	core := &cpu.NopCore{}

	emu, err := svision.NewWithFile(romPath, core)
	if err != nil {
		return err
	}

	var be backend.Backend
	var limiter timing.Limiter
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}
		be = headless.New(frames)
		limiter = timing.NewNoOpLimiter()
	} else {
		be = terminal.New()
		limiter = timing.NewFixedLimiter(timing.FramesPerSecond)
	}

	manager := input.NewManager(emu.Bus().Joypad)

	running := true
	config := backend.Config{
		Title:        "svision",
		Scale:        c.Int("scale"),
		InputManager: manager,
		OnQuit:       func() { running = false },
	}

	if err := be.Init(config); err != nil {
		return err
	}
	defer be.Cleanup()

	if !c.Bool("no-audio") && !c.Bool("headless") {
		player, err := audio.NewPlayer(emu.APU())
		if err != nil {
			slog.Warn("Audio output unavailable", "error", err)
		} else {
			player.Start()
			defer player.Close()
		}
	}

	for running {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}
		if err := be.Update(emu.GetCurrentFrame()); err != nil {
			return err
		}
		limiter.WaitForNextFrame()
	}

	return nil
}
