// Package config handles engine configuration
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/flashrecord/flashgif/internal/compressor"
)

type Config struct {
	TargetMB       float64
	Quality        string
	InitColors     int
	MinColors      int
	MinFPS         float64
	TargetFPS      float64 // temporal subsampling target
	InputFPS       float64 // declared capture rate
	PreserveTiming bool
	MaxIterations  int
	MaxMemoryMB    float64
	Seed           int
	Dither         bool
	Workers        int
	KeepThreshold  float64
	Extensions     []string // frame files picked up by the CLI
}

func Load() *Config {
	return &Config{
		TargetMB:       getEnvFloat("FLASHGIF_TARGET_MB", compressor.DefaultTargetMB),
		Quality:        getEnv("FLASHGIF_QUALITY", string(compressor.PresetBalanced)),
		InitColors:     getEnvInt("FLASHGIF_INIT_COLORS", compressor.DefaultInitColors),
		MinColors:      getEnvInt("FLASHGIF_MIN_COLORS", compressor.DefaultMinColors),
		MinFPS:         getEnvFloat("FLASHGIF_MIN_FPS", compressor.DefaultMinFPS),
		TargetFPS:      getEnvFloat("FLASHGIF_TARGET_FPS", compressor.DefaultTargetFPS),
		InputFPS:       getEnvFloat("FLASHGIF_INPUT_FPS", 10),
		PreserveTiming: getEnvBool("FLASHGIF_PRESERVE_TIMING", true),
		MaxIterations:  getEnvInt("FLASHGIF_MAX_ITERATIONS", compressor.DefaultMaxIterations),
		MaxMemoryMB:    getEnvFloat("FLASHGIF_MAX_MEMORY_MB", 1024),
		Seed:           getEnvInt("FLASHGIF_SEED", 1234),
		Dither:         getEnvBool("FLASHGIF_DITHER", true),
		Workers:        getEnvInt("FLASHGIF_WORKERS", runtime.GOMAXPROCS(0)),
		KeepThreshold:  getEnvFloat("FLASHGIF_KEEP_THRESHOLD", 0.25),
		Extensions:     getEnvList("FLASHGIF_EXTENSIONS", []string{".png", ".jpg", ".jpeg", ".gif"}),
	}
}

// Options converts the configuration into compressor options.
func (c *Config) Options() compressor.Options {
	opts := compressor.DefaultOptions()
	opts.TargetBytes = int64(c.TargetMB * compressor.BytesPerMB)
	opts.Preset = compressor.ParsePreset(c.Quality)
	opts.InitColors = c.InitColors
	opts.MinColors = c.MinColors
	opts.MinFPS = c.MinFPS
	opts.TargetFPS = c.TargetFPS
	opts.PreserveTiming = c.PreserveTiming
	opts.MaxIterations = c.MaxIterations
	opts.MaxMemoryMB = c.MaxMemoryMB
	opts.Seed = uint64(c.Seed)
	opts.Dither = c.Dither
	opts.Workers = c.Workers
	opts.Selector.Threshold = c.KeepThreshold
	return opts
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
