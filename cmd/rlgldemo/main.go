// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rlgldemo draws a short immediate mode scene with one of the rlgl
// backends and saves the last frame as PNG.
//
//	rlgldemo -backend pica -output top.png
//	rlgldemo -backend wgpu -texture brick.bmp -frames 60
//
// The pica backend also renders the bottom screen, saved next to the
// output with a _bottom suffix.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/rlgl"
)

func main() {
	var (
		backendName = flag.String("backend", "pica", "backend: pica, wgpu or opengl")
		width       = flag.Int("width", 400, "framebuffer width")
		height      = flag.Int("height", 240, "framebuffer height")
		frames      = flag.Int("frames", 1, "frames to render")
		workers     = flag.Int("workers", 1, "pica raster goroutines, 0 for one per CPU")
		texture     = flag.String("texture", "", "BMP or PNG image to texture the quad with")
		output      = flag.String("output", "rlgldemo.png", "output file")
		logFile     = flag.String("logfile", "", "write logs to this file, rotated")
		logLevel    = flag.String("loglevel", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	log, closeLog := newLogger(*logFile, *logLevel)
	defer closeLog()
	rlgl.SetLogger(log)

	if err := run(log, options{
		backend: *backendName, width: *width, height: *height, frames: *frames,
		workers: *workers, texture: *texture, output: *output,
	}); err != nil {
		log.Error("rlgldemo: failed", "error", err)
		fmt.Fprintf(os.Stderr, "rlgldemo: %v\n", err)
		os.Exit(1)
	}
}

// options are the command line settings of one run.
type options struct {
	backend       string
	width, height int
	frames        int
	workers       int
	texture       string
	output        string
}

func run(log *slog.Logger, o options) error {
	t, err := openTarget(o)
	if err != nil {
		return err
	}
	defer t.close()

	ctx, err := rlgl.New(o.width, o.height, rlgl.WithBackend(t.backend), rlgl.WithLogger(log))
	if err != nil {
		return err
	}
	defer ctx.Close()

	tex, err := sceneTexture(ctx, o.texture)
	if err != nil {
		return err
	}

	for i := 0; i < max(o.frames, 1); i++ {
		ctx.BeginFrame()
		drawScene(ctx, tex, i)
		if t.hasBottom {
			ctx.SetCurrentScreen(rlgl.ScreenBottom)
			drawStatus(ctx, i)
			ctx.SetCurrentScreen(rlgl.ScreenTop)
		}
		if err := ctx.EndFrame(); err != nil {
			return err
		}
	}

	if err := savePNG(o.output, t.snapshot(rlgl.ScreenTop)); err != nil {
		return err
	}
	if t.hasBottom {
		if err := savePNG(suffixed(o.output, "_bottom"), t.snapshot(rlgl.ScreenBottom)); err != nil {
			return err
		}
	}
	log.Info("rlgldemo: saved", "output", o.output, "backend", ctx.Backend().Name(), "stats", ctx.Stats())
	return nil
}

// suffixed inserts suffix before the extension of path.
func suffixed(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func savePNG(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image to save to %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
