package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/config"
	"github.com/Faultbox/texsphere/internal/engine/control"
	"github.com/Faultbox/texsphere/internal/engine/input"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/engine/scene"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/internal/engine/window"
	"github.com/Faultbox/texsphere/internal/export"
	"github.com/Faultbox/texsphere/internal/logger"
)

// idleDelay is how long the loop sleeps when nothing changed.
const idleDelay = 10 * time.Millisecond

// App is the viewer state. Everything except the file dialog runs on the
// main thread.
type App struct {
	cfg      *config.Config
	win      *window.Window
	input    *input.Input
	scene    *scene.Scene
	controls *control.Controls
	capturer *export.Capturer
	bg       color.RGBA

	texture    *texture.Texture // loaded texture, kept while toggled off
	textured   bool
	dirty      bool
	lastOutput renderer.Output

	dialogOpen  bool
	pendingPath chan string
}

// NewApp opens the window and loads the configured texture, if any.
func NewApp(cfg *config.Config) (*App, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}

	win, err := window.New(window.Config{
		Title:  "texsphere",
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	app := &App{
		cfg:         cfg,
		win:         win,
		input:       input.New(),
		scene:       scene.New(opts),
		controls:    control.New(cfg.SceneParams()),
		capturer:    export.NewCapturer(cfg.Render.CaptureDir, "sphere"),
		bg:          opts.Background,
		dirty:       true,
		pendingPath: make(chan string, 1),
	}

	if cfg.Render.Texture != "" {
		if err := app.loadTexture(cfg.Render.Texture); err != nil {
			logger.Warn("texture not loaded, starting in wireframe", zap.Error(err))
		}
	}
	return app, nil
}

// Close releases the window.
func (app *App) Close() {
	app.win.Close()
}

// Run processes input and re-renders until the window is closed.
func (app *App) Run() {
	for {
		if app.input.Update() {
			return
		}
		for _, e := range app.input.Events() {
			app.handle(e)
		}

		select {
		case path := <-app.pendingPath:
			app.dialogOpen = false
			if path != "" {
				if err := app.loadTexture(path); err != nil {
					logger.Error("failed to load texture", zap.String("path", path), zap.Error(err))
				}
			}
		default:
		}

		if !app.dirty {
			time.Sleep(idleDelay)
			continue
		}
		app.dirty = false
		app.update()
	}
}

func (app *App) handle(e input.Event) {
	c := app.controls
	switch e.Type {
	case input.EventWindowResize:
		app.dirty = true
	case input.EventDrag:
		app.dirty = c.Drag(e.DX, e.DY) || app.dirty
	case input.EventWheel:
		app.dirty = c.Wheel(e.Wheel) || app.dirty
	case input.EventAction:
		switch e.Action {
		case control.ActionOpenTexture:
			app.openTextureDialog()
		case control.ActionToggleTexture:
			app.toggleTexture()
		case control.ActionCapture:
			app.capture()
		default:
			app.dirty = c.Apply(e.Action) || app.dirty
		}
	}
}

// update runs one synchronous scene update and presents it.
func (app *App) update() {
	width, height := app.win.GetSize()
	out, err := app.scene.Update(app.controls.Params, width, height)
	if err != nil {
		logger.Warn("update rejected", zap.Error(err))
		return
	}
	if out.Mode == renderer.ModeNone {
		return
	}
	app.lastOutput = out

	if err := app.win.Present(out, app.bg); err != nil {
		logger.Error("present failed", zap.Error(err))
	}
	app.updateTitle()
}

func (app *App) updateTitle() {
	p := app.controls.Params
	mode := "wireframe"
	if app.textured {
		mode = "textured"
	}
	app.win.SetTitle(fmt.Sprintf("texsphere - %s - d=%.2f rx=%.0f ry=%.0f r=%.2f %dx%d",
		mode, p.Orbit.Distance, p.Orbit.Pitch, p.Orbit.Yaw, p.Radius, p.LatDivisions, p.LonDivisions))
}

func (app *App) loadTexture(path string) error {
	tex, err := texture.Load(path, app.cfg.Render.TextureMaxSize)
	if err != nil {
		return err
	}
	app.texture = tex
	app.textured = true
	app.scene.SetTexture(tex)
	app.dirty = true
	logger.Info("texture loaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return nil
}

func (app *App) toggleTexture() {
	if app.texture == nil {
		logger.Info("no texture loaded, press O to open one")
		return
	}
	app.textured = !app.textured
	if app.textured {
		app.scene.SetTexture(app.texture)
	} else {
		app.scene.SetTexture(nil)
	}
	app.dirty = true
}

// openTextureDialog shows a native file dialog. The result is picked up by
// Run on the main thread.
func (app *App) openTextureDialog() {
	if app.dialogOpen {
		return
	}
	app.dialogOpen = true

	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp", "tga").
			Filter("All Files", "*").
			Title("Open Texture").
			Load()

		if err != nil && err != dialog.ErrCancelled {
			logger.Error("file dialog failed", zap.Error(err))
		}
		app.pendingPath <- filename
	}()
}

func (app *App) capture() {
	if app.lastOutput.Mode == renderer.ModeNone {
		return
	}
	name, err := app.capturer.Capture(app.lastOutput)
	if err != nil {
		logger.Error("capture failed", zap.Error(err))
		return
	}
	logger.Info("capture saved", zap.String("file", name))
}
