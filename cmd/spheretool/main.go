// spheretool renders the textured sphere without a window: to files, as
// mesh statistics, or over a WebSocket server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/config"
	"github.com/Faultbox/texsphere/internal/engine/mesh"
	"github.com/Faultbox/texsphere/internal/engine/scene"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/internal/export"
	"github.com/Faultbox/texsphere/internal/logger"
	"github.com/Faultbox/texsphere/internal/server"
)

// degenerateEpsilon is the normal length below which a face counts as
// zero-area in mesh statistics.
const degenerateEpsilon = 1e-6

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "help", "-h", "--help":
		printUsage()
		return
	case "render", "mesh", "serve", "config":
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := config.ParseArgs(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "render":
		err = cmdRender(cfg)
	case "mesh":
		err = cmdMesh(cfg)
	case "serve":
		err = cmdServe(cfg)
	case "config":
		err = cmdConfig(cfg)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spheretool - textured sphere software renderer

Usage:
  spheretool <command> [options]

Commands:
  render    Render one frame: PNG with -texture, SVG outlines without
  mesh      Print vertex and face counts for the configured sphere
  serve     Serve renders over WebSocket (/ws) and HTTP (/frame.png, /frame.svg)
  config    Write the effective configuration (to -out, or the user config dir)

Options:
  -config <file>     YAML config (default: ./texsphere.yaml, then user config dir)
  -width, -height    Viewport size
  -distance, -rotx, -roty
                     Camera orbit distance, pitch and yaw in degrees
  -radius, -lat, -lon
                     Sphere radius and tessellation
  -texture <file>    PNG, JPEG, GIF, BMP, TIFF, WebP or TGA image
  -out <file>        Output file (render: default timestamped name;
                     config: default user config dir)
  -addr <host:port>  Listen address (serve)
  -debug             Debug logging

Examples:
  spheretool render -texture earth.jpg -out earth.png
  spheretool render -lat 8 -lon 16 -rotx 30 -out wire.svg
  spheretool mesh -lat 32 -lon 64
  spheretool serve -addr :8080 -texture earth.jpg
  spheretool config -lat 32 -lon 64 -out texsphere.yaml`)
}

func loadTexture(cfg *config.Config) (*texture.Texture, error) {
	if cfg.Render.Texture == "" {
		return nil, nil
	}
	tex, err := texture.Load(cfg.Render.Texture, cfg.Render.TextureMaxSize)
	if err != nil {
		return nil, err
	}
	logger.Info("texture loaded",
		zap.String("path", cfg.Render.Texture),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

func cmdRender(cfg *config.Config) error {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	tex, err := loadTexture(cfg)
	if err != nil {
		return err
	}

	sc := scene.New(opts)
	sc.SetTexture(tex)
	out, err := sc.Update(cfg.SceneParams(), cfg.Viewport.Width, cfg.Viewport.Height)
	if err != nil {
		return err
	}

	path := cfg.Render.Output
	if path == "" {
		path, err = export.NewCapturer("", "sphere").Capture(out)
	} else {
		err = export.Save(path, out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%s, %dx%d)\n", path, out.Mode, out.Width, out.Height)
	fmt.Printf("Faces: %d drawn, %d culled, %d degenerate\n", out.Stats.Drawn, out.Stats.Culled, out.Stats.Degenerate)
	return nil
}

func cmdMesh(cfg *config.Config) error {
	m, err := mesh.BuildSphere(cfg.Sphere.Radius, cfg.Sphere.LatDivisions, cfg.Sphere.LonDivisions)
	if err != nil {
		return err
	}

	fmt.Printf("Radius:     %g\n", cfg.Sphere.Radius)
	fmt.Printf("Divisions:  %d lat x %d lon\n", cfg.Sphere.LatDivisions, cfg.Sphere.LonDivisions)
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	fmt.Printf("Faces:      %d\n", m.FaceCount())
	fmt.Printf("Degenerate: %d\n", m.DegenerateFaces(degenerateEpsilon))
	fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	return nil
}

func cmdServe(cfg *config.Config) error {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	tex, err := loadTexture(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		MaxViewport:  cfg.Server.MaxViewport,
		MaxDivisions: cfg.Server.MaxDivisions,
		WriteTimeout: cfg.Server.WriteTimeout,
		Render:       opts,
		Params:       cfg.SceneParams(),
		Width:        cfg.Viewport.Width,
		Height:       cfg.Viewport.Height,
	}, tex)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

func cmdConfig(cfg *config.Config) error {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	out := *cfg
	out.Render.Output = "" // the -out flag names the config file here
	out.Render.Background = config.FormatColor(opts.Background)
	out.Render.Stroke = config.FormatColor(opts.Stroke)

	path := cfg.Render.Output
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.FileName)
		err = out.Save()
	} else {
		err = out.SaveTo(path)
	}
	if err != nil {
		return err
	}

	// Read it back the way the next run will.
	if _, err := config.LoadFile(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
