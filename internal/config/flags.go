package config

import (
	"flag"
	"strconv"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Viewport width")
	flagHeight  = flag.Int("height", 0, "Viewport height")
	flagTexture = flag.String("texture", "", "Texture image file")
	flagOut     = flag.String("out", "", "Output file for headless renders")
	flagLat     = flag.Int("lat", 0, "Latitude divisions")
	flagLon     = flag.Int("lon", 0, "Longitude divisions")
	flagAddr    = flag.String("addr", "", "Server listen address")

	// Zero is a meaningful angle, so these track whether they were given.
	flagDistance optionalFloat
	flagRotX     optionalFloat
	flagRotY     optionalFloat
	flagRadius   optionalFloat
)

func init() {
	flag.Var(&flagDistance, "distance", "Camera distance from the origin")
	flag.Var(&flagRotX, "rotx", "Camera pitch in degrees")
	flag.Var(&flagRotY, "roty", "Camera yaw in degrees")
	flag.Var(&flagRadius, "radius", "Sphere radius")
}

// optionalFloat is a float flag that remembers whether it was set.
type optionalFloat struct {
	value float32
	set   bool
}

func (o *optionalFloat) String() string {
	if o == nil || !o.set {
		return ""
	}
	return strconv.FormatFloat(float64(o.value), 'g', -1, 32)
}

func (o *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	o.value, o.set = float32(v), true
	return nil
}

func (o *optionalFloat) apply(dst *float32) {
	if o.set {
		*dst = o.value
	}
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ParseArgs parses args (without the program name) into the same flags.
// Used by subcommand hosts that consume os.Args[1] themselves.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Viewport.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewport.Height = *flagHeight
	}
	if *flagTexture != "" {
		cfg.Render.Texture = *flagTexture
	}
	if *flagOut != "" {
		cfg.Render.Output = *flagOut
	}
	flagDistance.apply(&cfg.Camera.Distance)
	flagRotX.apply(&cfg.Camera.RotateX)
	flagRotY.apply(&cfg.Camera.RotateY)
	flagRadius.apply(&cfg.Sphere.Radius)
	if *flagLat != 0 {
		cfg.Sphere.LatDivisions = *flagLat
	}
	if *flagLon != 0 {
		cfg.Sphere.LonDivisions = *flagLon
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
}
