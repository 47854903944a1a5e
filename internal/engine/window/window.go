// Package window handles the SDL2 window and presents rasterizer output
// through the SDL2 2D renderer.
package window

import (
	"fmt"
	"image/color"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/engine/framebuffer"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps the SDL2 window, its renderer, and a streaming texture
// sized to the last presented frame.
type Window struct {
	config      Config
	sdlWindow   *sdl.Window
	sdlRenderer *sdl.Renderer

	frame  *sdl.Texture
	frameW int
	frameH int
}

// New creates a new resizable window.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.sdlRenderer, err = sdl.CreateRenderer(w.sdlWindow, -1, flags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.frame != nil {
		w.frame.Destroy()
	}
	if w.sdlRenderer != nil {
		w.sdlRenderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// GetSize returns the drawable size in pixels.
func (w *Window) GetSize() (int, int) {
	width, height, err := w.sdlRenderer.GetOutputSize()
	if err != nil {
		width, height = w.sdlWindow.GetSize()
	}
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Present shows a render: a textured frame is uploaded and stretched to
// the window, outlines are stroked over bg.
func (w *Window) Present(out renderer.Output, bg color.RGBA) error {
	switch out.Mode {
	case renderer.ModeTextured:
		return w.presentFrame(out.Frame)
	default:
		return w.presentOutlines(out, bg)
	}
}

func (w *Window) presentFrame(fb *framebuffer.FrameBuffer) error {
	width, height := fb.Size()
	if err := w.ensureFrameTexture(width, height); err != nil {
		return err
	}

	pixels, pitch, err := w.frame.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking frame texture: %w", err)
	}
	src := fb.Pix()
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		s := y * fb.Stride()
		copy(pixels[y*pitch:y*pitch+rowBytes], src[s:s+rowBytes])
	}
	w.frame.Unlock()

	if err := w.sdlRenderer.Clear(); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}
	if err := w.sdlRenderer.Copy(w.frame, nil, nil); err != nil {
		return fmt.Errorf("copying frame: %w", err)
	}
	w.sdlRenderer.Present()
	return nil
}

// ensureFrameTexture recreates the streaming texture if the frame size
// changed. ABGR8888 matches RGBA byte order on little-endian hosts.
func (w *Window) ensureFrameTexture(width, height int) error {
	if w.frame != nil && w.frameW == width && w.frameH == height {
		return nil
	}
	if w.frame != nil {
		w.frame.Destroy()
		w.frame = nil
	}

	tex, err := w.sdlRenderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		int32(width),
		int32(height),
	)
	if err != nil {
		return fmt.Errorf("creating frame texture: %w", err)
	}
	if err := tex.SetBlendMode(sdl.BLENDMODE_NONE); err != nil {
		logger.Warn("failed to disable frame blending", zap.Error(err))
	}

	w.frame, w.frameW, w.frameH = tex, width, height
	return nil
}

// presentOutlines strokes each outline as a closed polyline. SDL lines are
// always one pixel wide.
func (w *Window) presentOutlines(out renderer.Output, bg color.RGBA) error {
	r := w.sdlRenderer
	if err := r.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := r.Clear(); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}

	_ = r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	s := out.Stroke
	if err := r.SetDrawColor(s.R, s.G, s.B, s.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	points := make([]sdl.Point, 4)
	for _, o := range out.Outlines {
		points[0] = sdl.Point{X: int32(o.A.X), Y: int32(o.A.Y)}
		points[1] = sdl.Point{X: int32(o.B.X), Y: int32(o.B.Y)}
		points[2] = sdl.Point{X: int32(o.C.X), Y: int32(o.C.Y)}
		points[3] = points[0]
		if err := r.DrawLines(points); err != nil {
			return fmt.Errorf("drawing outline: %w", err)
		}
	}

	r.Present()
	return nil
}
