// Package config handles texsphere configuration loading and management.
package config

import "time"

// Config holds all texsphere settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Sphere   SphereConfig   `yaml:"sphere"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the output size in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds the orbit position and projection settings.
// Angles are in degrees.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	RotateX  float32 `yaml:"rotate_x"` // pitch
	RotateY  float32 `yaml:"rotate_y"` // yaw
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// SphereConfig holds the mesh parameters.
type SphereConfig struct {
	Radius       float32 `yaml:"radius"`
	LatDivisions int     `yaml:"lat_divisions"`
	LonDivisions int     `yaml:"lon_divisions"`
}

// RenderConfig holds rasterizer and output settings.
// Colors are "#rrggbb" or "#rrggbbaa".
type RenderConfig struct {
	Texture        string  `yaml:"texture"`          // Texture file; empty renders wireframe
	TextureMaxSize int     `yaml:"texture_max_size"` // Larger textures are downscaled; 0 keeps size
	Background     string  `yaml:"background"`
	Stroke         string  `yaml:"stroke"`
	StrokeWidth    float32 `yaml:"stroke_width"`
	Output         string  `yaml:"output"`      // Headless output path; empty picks a timestamped name
	CaptureDir     string  `yaml:"capture_dir"` // Where viewer captures go
}

// ServerConfig holds the render server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MaxViewport  int           `yaml:"max_viewport"`  // Largest accepted width or height
	MaxDivisions int           `yaml:"max_divisions"` // Largest accepted lat or lon
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
		},
		Camera: CameraConfig{
			Distance: 5,
			RotateX:  20,
			RotateY:  30,
			FOV:      45,
			Near:     0.1,
			Far:      100,
		},
		Sphere: SphereConfig{
			Radius:       1.5,
			LatDivisions: 16,
			LonDivisions: 32,
		},
		Render: RenderConfig{
			TextureMaxSize: 2048,
			Background:     "#000000",
			Stroke:         "#808080",
			StrokeWidth:    1,
			CaptureDir:     "captures",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxViewport:  4096,
			MaxDivisions: 512,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
