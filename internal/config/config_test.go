package config

import (
	"os"
	"runtime"
	"testing"

	"github.com/flashrecord/flashgif/internal/compressor"
)

var envVars = []string{
	"FLASHGIF_TARGET_MB", "FLASHGIF_QUALITY", "FLASHGIF_INIT_COLORS", "FLASHGIF_MIN_COLORS",
	"FLASHGIF_MIN_FPS", "FLASHGIF_TARGET_FPS", "FLASHGIF_INPUT_FPS", "FLASHGIF_PRESERVE_TIMING",
	"FLASHGIF_MAX_ITERATIONS", "FLASHGIF_MAX_MEMORY_MB", "FLASHGIF_SEED", "FLASHGIF_DITHER",
	"FLASHGIF_WORKERS", "FLASHGIF_KEEP_THRESHOLD", "FLASHGIF_EXTENSIONS",
}

func TestLoad(t *testing.T) {
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	if cfg.TargetMB != 10 {
		t.Errorf("TargetMB = %f, want %f", cfg.TargetMB, 10.0)
	}
	if cfg.Quality != "balanced" {
		t.Errorf("Quality = %q, want %q", cfg.Quality, "balanced")
	}
	if cfg.InitColors != 256 {
		t.Errorf("InitColors = %d, want %d", cfg.InitColors, 256)
	}
	if cfg.MinColors != 16 {
		t.Errorf("MinColors = %d, want %d", cfg.MinColors, 16)
	}
	if cfg.MinFPS != 4 {
		t.Errorf("MinFPS = %f, want %f", cfg.MinFPS, 4.0)
	}
	if cfg.TargetFPS != 8 {
		t.Errorf("TargetFPS = %f, want %f", cfg.TargetFPS, 8.0)
	}
	if cfg.InputFPS != 10 {
		t.Errorf("InputFPS = %f, want %f", cfg.InputFPS, 10.0)
	}
	if !cfg.PreserveTiming {
		t.Error("PreserveTiming should default to true")
	}
	if cfg.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want %d", cfg.MaxIterations, 5)
	}
	if cfg.MaxMemoryMB != 1024 {
		t.Errorf("MaxMemoryMB = %f, want %f", cfg.MaxMemoryMB, 1024.0)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Seed = %d, want %d", cfg.Seed, 1234)
	}
	if !cfg.Dither {
		t.Error("Dither should default to true")
	}
	if cfg.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS", cfg.Workers)
	}
	if cfg.KeepThreshold != 0.25 {
		t.Errorf("KeepThreshold = %f, want %f", cfg.KeepThreshold, 0.25)
	}
	if len(cfg.Extensions) != 4 {
		t.Errorf("Extensions = %v, want 4 defaults", cfg.Extensions)
	}
}

func TestLoadWithEnv(t *testing.T) {
	os.Setenv("FLASHGIF_TARGET_MB", "2.5")
	os.Setenv("FLASHGIF_QUALITY", "compact")
	os.Setenv("FLASHGIF_INIT_COLORS", "128")
	os.Setenv("FLASHGIF_PRESERVE_TIMING", "false")
	os.Setenv("FLASHGIF_SEED", "7")
	os.Setenv("FLASHGIF_EXTENSIONS", ".png, .bmp")
	defer func() {
		for _, v := range envVars {
			os.Unsetenv(v)
		}
	}()

	cfg := Load()

	if cfg.TargetMB != 2.5 {
		t.Errorf("TargetMB = %f, want %f", cfg.TargetMB, 2.5)
	}
	if cfg.Quality != "compact" {
		t.Errorf("Quality = %q, want %q", cfg.Quality, "compact")
	}
	if cfg.InitColors != 128 {
		t.Errorf("InitColors = %d, want %d", cfg.InitColors, 128)
	}
	if cfg.PreserveTiming {
		t.Error("PreserveTiming should be false")
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want %d", cfg.Seed, 7)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".bmp" {
		t.Errorf("Extensions = %v, want [.png .bmp]", cfg.Extensions)
	}
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		TargetMB:       1,
		Quality:        "high",
		InitColors:     64,
		MinColors:      8,
		MinFPS:         3,
		TargetFPS:      6,
		PreserveTiming: false,
		MaxIterations:  7,
		MaxMemoryMB:    512,
		Seed:           99,
		Dither:         false,
		Workers:        2,
		KeepThreshold:  0.5,
	}

	opts := cfg.Options()

	if opts.TargetBytes != compressor.BytesPerMB {
		t.Errorf("TargetBytes = %d, want %d", opts.TargetBytes, compressor.BytesPerMB)
	}
	if opts.Preset != compressor.PresetHigh {
		t.Errorf("Preset = %q, want %q", opts.Preset, compressor.PresetHigh)
	}
	if opts.InitColors != 64 || opts.MinColors != 8 {
		t.Errorf("colors = %d/%d, want 64/8", opts.InitColors, opts.MinColors)
	}
	if opts.Seed != 99 {
		t.Errorf("Seed = %d, want %d", opts.Seed, 99)
	}
	if opts.Dither || opts.PreserveTiming {
		t.Error("Dither and PreserveTiming should be false")
	}
	if opts.Selector.Threshold != 0.5 {
		t.Errorf("Selector.Threshold = %f, want %f", opts.Selector.Threshold, 0.5)
	}
	if opts.Selector.KeepFloor != 0.6 {
		t.Errorf("Selector.KeepFloor = %f, want %f", opts.Selector.KeepFloor, 0.6)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	os.Setenv("TEST_STRING", "hello")
	defer os.Unsetenv("TEST_STRING")
	if v := getEnv("TEST_STRING", "default"); v != "hello" {
		t.Errorf("getEnv = %q, want %q", v, "hello")
	}
	if v := getEnv("NONEXISTENT", "default"); v != "default" {
		t.Errorf("getEnv = %q, want %q", v, "default")
	}

	os.Setenv("TEST_INT_INVALID", "not-a-number")
	defer os.Unsetenv("TEST_INT_INVALID")
	if v := getEnvInt("TEST_INT_INVALID", 100); v != 100 {
		t.Errorf("getEnvInt with invalid = %d, want %d", v, 100)
	}

	os.Setenv("TEST_FLOAT", "3.14")
	defer os.Unsetenv("TEST_FLOAT")
	if v := getEnvFloat("TEST_FLOAT", 0.0); v != 3.14 {
		t.Errorf("getEnvFloat = %f, want %f", v, 3.14)
	}

	os.Setenv("TEST_BOOL_ONE", "1")
	defer os.Unsetenv("TEST_BOOL_ONE")
	if !getEnvBool("TEST_BOOL_ONE", false) {
		t.Error("getEnvBool should return true for '1'")
	}
	if !getEnvBool("NONEXISTENT", true) {
		t.Error("getEnvBool should return default true")
	}
}
